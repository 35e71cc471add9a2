// Package tools exposes the ToneLang notation parser and the Live path
// resolver as MCP tools. Every handler is thin glue: decode arguments,
// call into notation/ or live/, forward the result into host API calls.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tonelang-ai/tonelang-go/config"
	"github.com/tonelang-ai/tonelang-go/live"
	"github.com/tonelang-ai/tonelang-go/llm"
	"github.com/tonelang-ai/tonelang-go/metrics"
)

const serverInstructions = `tonelang-mcp lets you compose music in the connected DAW session.

Core concepts:
- ToneLang: compact notation for notes, chords and rests across parallel
  voices. Example: "C3:v80 D3/2 R/2 [E3 G3 B3]:v90*2". Voices split on ";"
  and each starts at beat 0.
- Paths: objects are addressed with compact slash paths: t0 (track 0),
  rt1 (return track 1), m (master), d0 (device), c0 (chain), rc0 (return
  chain), pC1 (drum pad at note C1). Example: t0/d0/pC1/c0/d0 walks into a
  nested drum rack.

Rules of engagement:
1) Orient with read_track before writing: it lists devices, chains and
   drum pads so you can build valid paths.
2) Write music with write_clip. If the notation is rejected you get the
   exact expected tokens and position - fix the text and retry.
3) Read music back with read_clip; it returns both notes and ToneLang.
4) delete accepts comma-separated batches. Bad entries are skipped and
   reported, the rest proceed.
5) fix_notation repairs rejected ToneLang when you cannot work out the
   correction from the diagnostic yourself.`

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp     *mcp.Server
	client  live.Client
	cfg     *config.Config
	metrics *metrics.ToolMetrics
	llm     *llm.ProviderFactory
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(cfg *config.Config, client live.Client) *Server {
	srv := &Server{
		client:  client,
		cfg:     cfg,
		metrics: metrics.NewToolMetrics(),
		llm:     llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey),
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    cfg.ServerName,
				Version: cfg.Version,
			},
			&mcp.ServerOptions{Instructions: serverInstructions},
		),
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	s.registerWriteClipTool()
	s.registerReadClipTool()
	s.registerReadTrackTool()
	s.registerDeleteTool()
	s.registerFixNotationTool()
}

// decodeArgs unmarshals tool arguments into a typed struct.
func decodeArgs(req *mcp.CallToolRequest, v any) error {
	raw, err := json.Marshal(req.Params.Arguments)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// textResult wraps a payload as a JSON text content result.
func textResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

// errorResult reports a user-facing failure without killing the session.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
