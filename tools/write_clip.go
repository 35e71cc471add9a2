package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tonelang-ai/tonelang-go/llm"
	"github.com/tonelang-ai/tonelang-go/models"
	"github.com/tonelang-ai/tonelang-go/notation"
)

type writeClipArgs struct {
	TrackIndex int    `json:"trackIndex"`
	ClipIndex  int    `json:"clipIndex"`
	Notation   string `json:"notation"`
	Name       string `json:"name,omitempty"`
}

func (s *Server) registerWriteClipTool() {
	s.mcp.AddTool(&mcp.Tool{
		Name: "write_clip",
		Description: "Write ToneLang notation into a MIDI clip. Creates the clip if the slot is empty, replaces its notes otherwise. " +
			"On a notation syntax error the response contains the expected tokens and exact position so you can correct the text and retry.\n\n" +
			"ToneLang grammar:\n" + s.grammarSummary(),
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
				},
				"notation": {
					"type": "string",
					"description": "ToneLang source, e.g. \"C3:v80 D3/2 R/2 [E3 G3 B3]:v90*2\". Voices split on \";\""
				},
				"name": {
					"type": "string",
					"description": "Optional clip name"
				}
			},
			"required": ["trackIndex", "clipIndex", "notation"]
		}`),
	}, s.handleWriteClip)
}

// grammarSummary puts the full Lark grammar in the tool description so the
// LLM learns the syntax before its first attempt.
func (s *Server) grammarSummary() string {
	return llm.GetToneLangGrammar()
}

func (s *Server) handleWriteClip(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args writeClipArgs
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}
	return s.writeClip(ctx, args)
}

func (s *Server) writeClip(ctx context.Context, args writeClipArgs) (*mcp.CallToolResult, error) {
	if args.Notation == "" {
		return nil, fmt.Errorf("write_clip: notation is required")
	}

	span := s.metrics.StartToolCall(ctx, "write_clip", uuid.NewString())
	defer span.Finish()
	ctx = span.Context()

	voices, err := notation.Parse(args.Notation)
	if err != nil {
		s.metrics.RecordParseOutcome(ctx, 0, 0, err)
		return errorResult(fmt.Sprintf("write_clip: notation rejected: %v", err)), nil
	}
	notes, err := notation.Interpret(voices)
	s.metrics.RecordParseOutcome(ctx, len(voices), len(notes), err)
	if err != nil {
		return errorResult(fmt.Sprintf("write_clip: %v", err)), nil
	}

	lengthBeats := clipLength(notes)
	if err := s.writeNotes(args, notes, lengthBeats); err != nil {
		return nil, err
	}

	log.Printf("✅ write_clip: %d notes across %d voices into track %d clip %d",
		len(notes), len(voices), args.TrackIndex, args.ClipIndex)
	return textResult(map[string]any{
		"trackIndex":  args.TrackIndex,
		"clipIndex":   args.ClipIndex,
		"noteCount":   len(notes),
		"voiceCount":  len(voices),
		"lengthBeats": lengthBeats,
	})
}

// writeNotes issues the host calls: ensure the clip exists, clear it, add
// the new notes.
func (s *Server) writeNotes(args writeClipArgs, notes []models.NoteEvent, lengthBeats float64) error {
	slotPath := fmt.Sprintf("live_set tracks %d clip_slots %d", args.TrackIndex, args.ClipIndex)
	slot := s.client.FromPath(slotPath)
	if !slot.Exists() {
		return fmt.Errorf("write_clip: clip slot at track %d, slot %d does not exist", args.TrackIndex, args.ClipIndex)
	}

	hasClip, _ := slot.Get("has_clip")
	if has, ok := hasClip.(bool); !ok || !has {
		if _, err := slot.Call("create_clip", lengthBeats); err != nil {
			return fmt.Errorf("write_clip: failed to create clip: %w", err)
		}
	}

	clip := s.client.FromPath(slotPath + " clip")
	if _, err := clip.Call("remove_notes_extended", 0, 128, 0.0, lengthBeats); err != nil {
		return fmt.Errorf("write_clip: failed to clear clip: %w", err)
	}
	if _, err := clip.Call("add_new_notes", notePayload(notes)); err != nil {
		return fmt.Errorf("write_clip: failed to add notes: %w", err)
	}
	if args.Name != "" {
		if err := clip.Set("name", args.Name); err != nil {
			return fmt.Errorf("write_clip: failed to name clip: %w", err)
		}
	}
	return nil
}

func notePayload(notes []models.NoteEvent) map[string]any {
	out := make([]map[string]any, 0, len(notes))
	for _, n := range notes {
		out = append(out, map[string]any{
			"pitch":      n.MidiNoteNumber,
			"start_time": n.StartBeats,
			"duration":   n.DurationBeats,
			"velocity":   n.Velocity,
		})
	}
	return map[string]any{"notes": out}
}

// clipLength rounds the last note-off up to a whole beat, minimum one beat.
func clipLength(notes []models.NoteEvent) float64 {
	end := 1.0
	for _, n := range notes {
		if off := n.StartBeats + n.DurationBeats; off > end {
			end = off
		}
	}
	whole := float64(int(end))
	if whole < end {
		whole++
	}
	return whole
}
