package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tonelang-ai/tonelang-go/live"
	"github.com/tonelang-ai/tonelang-go/notation"
)

type readTrackArgs struct {
	TrackIndex int `json:"trackIndex"`
}

// deviceSummary mirrors the nesting of the host object graph so callers
// can read valid paths straight off the response.
type deviceSummary struct {
	Path     string         `json:"path"`
	Name     string         `json:"name,omitempty"`
	Chains   []chainSummary `json:"chains,omitempty"`
	DrumPads []padSummary   `json:"drumPads,omitempty"`
	Returns  []chainSummary `json:"returnChains,omitempty"`
}

type chainSummary struct {
	Path    string          `json:"path"`
	Name    string          `json:"name,omitempty"`
	Devices []deviceSummary `json:"devices,omitempty"`
}

type padSummary struct {
	Path   string         `json:"path"`
	Note   string         `json:"note"`
	Name   string         `json:"name,omitempty"`
	Chains []chainSummary `json:"chains,omitempty"`
}

func (s *Server) registerReadTrackTool() {
	s.mcp.AddTool(&mcp.Tool{
		Name: "read_track",
		Description: "Describe a track's device layout, including rack chains and drum pads, with a ready-to-use " +
			"compact path for every object (t0/d0, t0/d0/pC1/c0/d0, ...). Call this before addressing devices by path.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"trackIndex": {
					"type": "integer",
					"description": "0-based track index"
				}
			},
			"required": ["trackIndex"]
		}`),
	}, s.handleReadTrack)
}

func (s *Server) handleReadTrack(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args readTrackArgs
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}
	return s.readTrack(ctx, args)
}

func (s *Server) readTrack(ctx context.Context, args readTrackArgs) (*mcp.CallToolResult, error) {
	span := s.metrics.StartToolCall(ctx, "read_track", uuid.NewString())
	defer span.Finish()

	trackPath := fmt.Sprintf("t%d", args.TrackIndex)
	resolved, err := live.Resolve(s.client, trackPath)
	if err != nil {
		return errorResult(fmt.Sprintf("read_track: %v", err)), nil
	}

	payload := map[string]any{
		"path":    trackPath,
		"name":    stringProp(resolved.Object, "name"),
		"devices": s.describeDevices(resolved.Object, trackPath),
	}
	return textResult(payload)
}

func (s *Server) describeDevices(parent live.Object, prefix string) []deviceSummary {
	raw, err := parent.Get("devices")
	devices, ok := raw.([]live.Object)
	if err != nil || !ok {
		return nil
	}
	out := make([]deviceSummary, 0, len(devices))
	for i, dev := range devices {
		path := fmt.Sprintf("%s/d%d", prefix, i)
		summary := deviceSummary{
			Path: path,
			Name: stringProp(dev, "name"),
		}
		summary.Chains = s.describeChains(dev, path, "chains", "c")
		summary.Returns = s.describeChains(dev, path, "return_chains", "rc")
		summary.DrumPads = s.describePads(dev, path)
		out = append(out, summary)
	}
	return out
}

func (s *Server) describeChains(parent live.Object, prefix, prop, code string) []chainSummary {
	raw, err := parent.Get(prop)
	chains, ok := raw.([]live.Object)
	if err != nil || !ok {
		return nil
	}
	out := make([]chainSummary, 0, len(chains))
	for i, chain := range chains {
		path := fmt.Sprintf("%s/%s%d", prefix, code, i)
		out = append(out, chainSummary{
			Path:    path,
			Name:    stringProp(chain, "name"),
			Devices: s.describeDevices(chain, path),
		})
	}
	return out
}

func (s *Server) describePads(parent live.Object, prefix string) []padSummary {
	raw, err := parent.Get("drum_pads")
	pads, ok := raw.([]live.Object)
	if err != nil || !ok {
		return nil
	}
	out := make([]padSummary, 0, len(pads))
	for _, pad := range pads {
		noteRaw, err := pad.Get("note")
		if err != nil {
			continue
		}
		note, ok := noteAsInt(noteRaw)
		if !ok {
			continue
		}
		pitch := notation.PitchFromMIDI(note)
		path := fmt.Sprintf("%s/p%s", prefix, pitch)
		out = append(out, padSummary{
			Path:   path,
			Note:   pitch.String(),
			Name:   stringProp(pad, "name"),
			Chains: s.describeChains(pad, path, "chains", "c"),
		})
	}
	return out
}

func stringProp(obj live.Object, prop string) string {
	if raw, err := obj.Get(prop); err == nil {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

func noteAsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
