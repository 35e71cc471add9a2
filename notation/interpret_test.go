package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonelang-ai/tonelang-go/models"
)

func interpretSource(t *testing.T, source string) []models.NoteEvent {
	t.Helper()
	voices, err := Parse(source)
	require.NoError(t, err)
	notes, err := Interpret(voices)
	require.NoError(t, err)
	return notes
}

func TestInterpret_Defaults(t *testing.T) {
	notes := interpretSource(t, "C3")
	require.Len(t, notes, 1)
	assert.Equal(t, 60, notes[0].MidiNoteNumber)
	assert.Equal(t, DefaultVelocity, notes[0].Velocity)
	assert.Equal(t, 0.0, notes[0].StartBeats)
	assert.Equal(t, 1.0, notes[0].DurationBeats)
	assert.Equal(t, 0, notes[0].Voice)
}

func TestInterpret_Durations(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		duration float64
	}{
		{name: "doubled", source: "C3*2", duration: 2},
		{name: "quarter", source: "C3/4", duration: 0.25},
		{name: "dotted", source: "C3*1.5", duration: 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := interpretSource(t, tt.source)
			require.Len(t, notes, 1)
			assert.InDelta(t, tt.duration, notes[0].DurationBeats, 1e-12)
		})
	}
}

func TestInterpret_CursorAdvance(t *testing.T) {
	notes := interpretSource(t, "C3*2 D3/2 E3")
	require.Len(t, notes, 3)
	assert.Equal(t, 0.0, notes[0].StartBeats)
	assert.InDelta(t, 2.0, notes[1].StartBeats, 1e-12)
	assert.InDelta(t, 2.5, notes[2].StartBeats, 1e-12)
}

func TestInterpret_RestsAdvanceWithoutSounding(t *testing.T) {
	notes := interpretSource(t, "C3 R/2 D3")
	require.Len(t, notes, 2)
	assert.Equal(t, 0.0, notes[0].StartBeats)
	assert.InDelta(t, 1.5, notes[1].StartBeats, 1e-12)
}

func TestInterpret_ChordModifierOverride(t *testing.T) {
	// Chord-level velocity covers members without their own; an explicit
	// member velocity wins outright, it never stacks.
	notes := interpretSource(t, "[C3 E3:v50 G3]:v90")
	require.Len(t, notes, 3)

	byPitch := map[int]models.NoteEvent{}
	for _, n := range notes {
		byPitch[n.MidiNoteNumber] = n
	}
	assert.Equal(t, 90, byPitch[60].Velocity)
	assert.Equal(t, 50, byPitch[64].Velocity)
	assert.Equal(t, 90, byPitch[67].Velocity)

	for _, n := range notes {
		assert.Equal(t, 0.0, n.StartBeats, "chord members share a start")
	}
}

func TestInterpret_ChordDurationAdvancesCursor(t *testing.T) {
	// The per-note duration shapes that note's sounding length only; the
	// cursor moves by the chord-level duration.
	notes := interpretSource(t, "[C3*4 E3]/2 D3")
	require.Len(t, notes, 3)

	byPitch := map[int]models.NoteEvent{}
	for _, n := range notes {
		byPitch[n.MidiNoteNumber] = n
	}
	assert.InDelta(t, 4.0, byPitch[60].DurationBeats, 1e-12)
	assert.InDelta(t, 0.5, byPitch[64].DurationBeats, 1e-12)
	assert.InDelta(t, 0.5, byPitch[62].StartBeats, 1e-12)
}

func TestInterpret_VoicesAreIndependent(t *testing.T) {
	notes := interpretSource(t, "C4 D4; R G2 A2")
	require.Len(t, notes, 5)

	var voice0, voice1 []models.NoteEvent
	for _, n := range notes {
		if n.Voice == 0 {
			voice0 = append(voice0, n)
		} else {
			voice1 = append(voice1, n)
		}
	}
	require.Len(t, voice0, 2)
	require.Len(t, voice1, 3)

	// The second voice's rest pushes G2 to beat 1, aligned with D4.
	assert.Equal(t, 0.0, voice0[0].StartBeats)
	assert.Equal(t, 1.0, voice0[1].StartBeats)
	assert.Equal(t, 1.0, voice1[0].StartBeats)
	assert.Equal(t, 2.0, voice1[1].StartBeats)
	assert.Equal(t, 2.0, voice1[2].StartBeats)
}

func TestInterpret_OrderedByVoiceThenStart(t *testing.T) {
	notes := interpretSource(t, "C4 D4; G2")
	require.Len(t, notes, 3)
	assert.Equal(t, []int{0, 0, 1}, []int{notes[0].Voice, notes[1].Voice, notes[2].Voice})
	assert.True(t, notes[0].StartBeats <= notes[1].StartBeats)
}

func TestInterpret_Staccato(t *testing.T) {
	notes := interpretSource(t, "C3^ D3")
	require.Len(t, notes, 2)
	assert.InDelta(t, 0.5, notes[0].DurationBeats, 1e-12, "staccato halves the sounding length")
	assert.InDelta(t, 1.0, notes[1].StartBeats, 1e-12, "staccato never moves the cursor")

	// Repeated markers halve again but bottom out at a 32nd note.
	notes = interpretSource(t, "C3^^^^")
	assert.InDelta(t, staccatoFloorBeats, notes[0].DurationBeats, 1e-12)

	// For long notes the floor is relative: 5% of the rhythmic length.
	notes = interpretSource(t, "C3*8^^^^^^^^")
	assert.InDelta(t, 8*0.05, notes[0].DurationBeats, 1e-12)
}

func TestInterpret_Legato(t *testing.T) {
	notes := interpretSource(t, "C3_ D3")
	require.Len(t, notes, 2)
	assert.InDelta(t, 1.5, notes[0].DurationBeats, 1e-12, "legato extends by half the rhythmic length")
	assert.InDelta(t, 1.0, notes[1].StartBeats, 1e-12, "legato never moves the cursor")

	notes = interpretSource(t, "C3*2__")
	assert.InDelta(t, 4.0, notes[0].DurationBeats, 1e-12)
}

func TestInterpret_Accent(t *testing.T) {
	notes := interpretSource(t, "C3>")
	assert.Equal(t, DefaultVelocity+accentVelocityStep, notes[0].Velocity)

	// Velocity caps at 127 no matter how many markers pile up.
	notes = interpretSource(t, "C3:v120>>")
	assert.Equal(t, 127, notes[0].Velocity)
}

func TestInterpret_ChordArticulationInherited(t *testing.T) {
	notes := interpretSource(t, "[C3 E3]^")
	require.Len(t, notes, 2)
	for _, n := range notes {
		assert.InDelta(t, 0.5, n.DurationBeats, 1e-12)
	}

	// A member with its own articulation keeps it instead of the chord's.
	notes = interpretSource(t, "[C3_ E3]^")
	byPitch := map[int]models.NoteEvent{}
	for _, n := range notes {
		byPitch[n.MidiNoteNumber] = n
	}
	assert.InDelta(t, 1.5, byPitch[60].DurationBeats, 1e-12)
	assert.InDelta(t, 0.5, byPitch[64].DurationBeats, 1e-12)
}

func TestInterpret_PitchOutOfMIDIRange(t *testing.T) {
	voices, err := Parse("C9")
	require.NoError(t, err, "the grammar does not range-check octaves")

	_, err = Interpret(voices)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the MIDI range")

	voices, err = Parse("C-3")
	require.NoError(t, err)
	_, err = Interpret(voices)
	require.Error(t, err)
}

func TestInterpret_Empty(t *testing.T) {
	notes, err := Interpret(nil)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
