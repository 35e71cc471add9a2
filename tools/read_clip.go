package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tonelang-ai/tonelang-go/models"
	"github.com/tonelang-ai/tonelang-go/notation"
)

type readClipArgs struct {
	TrackIndex int `json:"trackIndex"`
	ClipIndex  int `json:"clipIndex"`
}

func (s *Server) registerReadClipTool() {
	s.mcp.AddTool(&mcp.Tool{
		Name: "read_clip",
		Description: "Read a MIDI clip back as both a structured note list and equivalent ToneLang notation. " +
			"Useful for inspecting existing material before editing it.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"trackIndex": {
					"type": "integer",
					"description": "0-based track index"
				},
				"clipIndex": {
					"type": "integer",
					"description": "0-based clip slot index within the track"
				}
			},
			"required": ["trackIndex", "clipIndex"]
		}`),
	}, s.handleReadClip)
}

func (s *Server) handleReadClip(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args readClipArgs
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}
	return s.readClip(ctx, args)
}

func (s *Server) readClip(ctx context.Context, args readClipArgs) (*mcp.CallToolResult, error) {
	span := s.metrics.StartToolCall(ctx, "read_clip", uuid.NewString())
	defer span.Finish()

	slotPath := fmt.Sprintf("live_set tracks %d clip_slots %d", args.TrackIndex, args.ClipIndex)
	slot := s.client.FromPath(slotPath)
	if !slot.Exists() {
		return errorResult(fmt.Sprintf("read_clip: clip slot at track %d, slot %d does not exist",
			args.TrackIndex, args.ClipIndex)), nil
	}
	hasClip, _ := slot.Get("has_clip")
	if has, ok := hasClip.(bool); !ok || !has {
		return errorResult(fmt.Sprintf("read_clip: no clip at track %d, slot %d",
			args.TrackIndex, args.ClipIndex)), nil
	}

	clip := s.client.FromPath(slotPath + " clip")
	payload := models.ClipPayload{
		TrackIndex: args.TrackIndex,
		ClipIndex:  args.ClipIndex,
	}
	if name, err := clip.Get("name"); err == nil {
		if str, ok := name.(string); ok {
			payload.Name = str
		}
	}
	if length, err := clip.Get("length"); err == nil {
		if f, ok := length.(float64); ok {
			payload.LengthBeats = f
		}
	}

	raw, err := clip.Call("get_notes_extended", 0, 128, 0.0, payload.LengthBeats)
	if err != nil {
		return nil, fmt.Errorf("read_clip: failed to read notes: %w", err)
	}
	payload.Notes = decodeHostNotes(raw)
	payload.Notation = notation.Render(notation.VoicesFromNotes(payload.Notes))

	return textResult(payload)
}

// decodeHostNotes accepts either the typed note list our own tests feed in
// or the map shape the host returns.
func decodeHostNotes(raw any) []models.NoteEvent {
	switch v := raw.(type) {
	case []models.NoteEvent:
		return v
	case map[string]any:
		list, ok := v["notes"].([]any)
		if !ok {
			return nil
		}
		out := make([]models.NoteEvent, 0, len(list))
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, models.NoteEvent{
				MidiNoteNumber: intField(m, "pitch"),
				Velocity:       intField(m, "velocity"),
				StartBeats:     floatField(m, "start_time"),
				DurationBeats:  floatField(m, "duration"),
			})
		}
		return out
	}
	return nil
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func floatField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
