package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tonelang-ai/tonelang-go/llm"
	"github.com/tonelang-ai/tonelang-go/notation"
	"github.com/tonelang-ai/tonelang-go/prompt"
)

type fixNotationArgs struct {
	Notation string `json:"notation"`
	Model    string `json:"model,omitempty"`
	Provider string `json:"provider,omitempty"`
}

func (s *Server) registerFixNotationTool() {
	s.mcp.AddTool(&mcp.Tool{
		Name: "fix_notation",
		Description: "Repair rejected ToneLang notation. Runs the parser, feeds its diagnostic (expected tokens " +
			"and failure position) to an LLM together with the grammar, and re-validates the answer. " +
			"Already-valid notation comes back unchanged.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"notation": {
					"type": "string",
					"description": "ToneLang source to validate and, if needed, repair"
				},
				"model": {
					"type": "string",
					"description": "Optional model override, e.g. \"gpt-4o-mini\" or \"gemini-2.0-flash\""
				},
				"provider": {
					"type": "string",
					"description": "Optional provider override: \"openai\" or \"gemini\""
				}
			},
			"required": ["notation"]
		}`),
	}, s.handleFixNotation)
}

func (s *Server) handleFixNotation(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args fixNotationArgs
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}
	return s.fixNotation(ctx, args)
}

func (s *Server) fixNotation(ctx context.Context, args fixNotationArgs) (*mcp.CallToolResult, error) {
	if args.Notation == "" {
		return nil, fmt.Errorf("fix_notation: notation is required")
	}

	span := s.metrics.StartToolCall(ctx, "fix_notation", uuid.NewString())
	defer span.Finish()
	ctx = span.Context()

	voices, parseErr := notation.Parse(args.Notation)
	if parseErr == nil {
		return textResult(map[string]any{
			"valid":      true,
			"corrected":  false,
			"notation":   args.Notation,
			"voiceCount": len(voices),
		})
	}

	corrected, err := s.correctNotation(ctx, args, parseErr)
	if err != nil {
		return errorResult(fmt.Sprintf("fix_notation: %v", err)), nil
	}

	voices, err = notation.Parse(corrected)
	if err != nil {
		return errorResult(fmt.Sprintf(
			"fix_notation: correction still invalid: %v\noriginal error: %v\nattempt: %s",
			err, parseErr, corrected)), nil
	}

	log.Printf("✅ fix_notation: repaired notation, %d voices", len(voices))
	return textResult(map[string]any{
		"valid":      true,
		"corrected":  true,
		"notation":   corrected,
		"voiceCount": len(voices),
		"parseError": parseErr.Error(),
	})
}

// correctNotation asks the configured provider for a repaired version,
// steering generation with the ToneLang grammar.
func (s *Server) correctNotation(ctx context.Context, args fixNotationArgs, parseErr error) (string, error) {
	model := args.Model
	if model == "" {
		model = llm.DefaultCorrectionModel
	}
	provider, err := s.llm.GetProvider(ctx, model, args.Provider)
	if err != nil {
		return "", err
	}

	builder := prompt.NewCorrectionPromptBuilder()
	resp, err := provider.Generate(ctx, &llm.GenerationRequest{
		Model:      model,
		System:     builder.BuildSystemPrompt(),
		Input:      builder.BuildUserPrompt(args.Notation, parseErr),
		CFGGrammar: llm.GetToneLangCFG(),
	})
	if err != nil {
		return "", fmt.Errorf("correction request failed: %w", err)
	}
	return strings.TrimSpace(resp.Output), nil
}
