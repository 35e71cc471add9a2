package tools

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonelang-ai/tonelang-go/live/livetest"
	"github.com/tonelang-ai/tonelang-go/models"
)

func setClipNotes(g *livetest.Graph, notes []models.NoteEvent) {
	clip := g.FromPath("live_set tracks 0 clip_slots 0 clip").(*livetest.Node)
	clip.SetCallResult("get_notes_extended", notes)
}

func TestReadClip(t *testing.T) {
	g, _ := clipFixture(true)
	s := newTestServer(g)

	clip := g.FromPath("live_set tracks 0 clip_slots 0 clip")
	require.NoError(t, clip.Set("name", "Groove"))
	setClipNotes(g, []models.NoteEvent{
		{MidiNoteNumber: 60, Velocity: 80, StartBeats: 0, DurationBeats: 1},
		{MidiNoteNumber: 62, Velocity: 100, StartBeats: 1, DurationBeats: 0.5},
	})

	result, err := s.readClip(context.Background(), readClipArgs{TrackIndex: 0, ClipIndex: 0})
	require.NoError(t, err)

	var payload models.ClipPayload
	textPayload(t, result, &payload)
	assert.Equal(t, "Groove", payload.Name)
	assert.Equal(t, 4.0, payload.LengthBeats)
	require.Len(t, payload.Notes, 2)
	assert.Equal(t, 60, payload.Notes[0].MidiNoteNumber)

	// Reconstructed notation carries every modifier explicitly.
	assert.Equal(t, "C3:v80*1 D3:v100/2", payload.Notation)
}

func TestReadClip_EmptySlot(t *testing.T) {
	g, _ := clipFixture(false)
	s := newTestServer(g)

	result, err := s.readClip(context.Background(), readClipArgs{TrackIndex: 0, ClipIndex: 0})
	require.NoError(t, err)
	require.True(t, result.IsError)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "no clip at track 0, slot 0")
}

func TestReadClip_MissingSlot(t *testing.T) {
	g, _ := clipFixture(true)
	s := newTestServer(g)

	result, err := s.readClip(context.Background(), readClipArgs{TrackIndex: 3, ClipIndex: 0})
	require.NoError(t, err)
	require.True(t, result.IsError)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "clip slot at track 3, slot 0 does not exist")
}

// Notation written with write_clip must read back as the same notes.
func TestReadClip_RoundTripThroughWrite(t *testing.T) {
	g, slot := clipFixture(false)
	s := newTestServer(g)

	source := "C3:v80 D3/2 R/2 [E3 G3 B3]:v90*2"
	_, err := s.writeClip(context.Background(), writeClipArgs{Notation: source})
	require.NoError(t, err)

	// Feed the written payload back as the host's note list.
	addCall := g.Calls[len(g.Calls)-1]
	require.Equal(t, "add_new_notes", addCall.Function)
	payload := addCall.Args[0].(map[string]any)
	var notes []models.NoteEvent
	for _, raw := range payload["notes"].([]map[string]any) {
		notes = append(notes, models.NoteEvent{
			MidiNoteNumber: raw["pitch"].(int),
			Velocity:       raw["velocity"].(int),
			StartBeats:     raw["start_time"].(float64),
			DurationBeats:  raw["duration"].(float64),
		})
	}
	setClipNotes(g, notes)
	require.NoError(t, slot.Set("has_clip", true))

	result, err := s.readClip(context.Background(), readClipArgs{TrackIndex: 0, ClipIndex: 0})
	require.NoError(t, err)

	var clip models.ClipPayload
	textPayload(t, result, &clip)
	require.Len(t, clip.Notes, len(notes))
	assert.NotEmpty(t, clip.Notation)

	for i, n := range clip.Notes {
		assert.Equal(t, notes[i].MidiNoteNumber, n.MidiNoteNumber)
		assert.Equal(t, notes[i].Velocity, n.Velocity)
		assert.InDelta(t, notes[i].StartBeats, n.StartBeats, 1e-9)
		assert.InDelta(t, notes[i].DurationBeats, n.DurationBeats, 1e-9)
	}
}
