package notation

import (
	"fmt"
	"sort"

	"github.com/tonelang-ai/tonelang-go/models"
)

const (
	// DefaultVelocity is applied by the interpreter (never the parser)
	// when an event carries no velocity modifier.
	DefaultVelocity = 100

	// accentVelocityStep is added per ">" marker, capped at 127.
	accentVelocityStep = 15

	// staccatoFloorBeats is the absolute floor for "^" shortening: a
	// 32nd note. The relative floor is 5% of the rhythmic duration;
	// whichever is larger wins.
	staccatoFloorBeats = 0.125
)

// Interpret converts parsed voices into a flat, absolutely-timed note list.
// Each voice runs its own beat cursor from 0; rests advance the cursor
// without emitting. All defaulting happens here: velocity 100, duration one
// beat. Notes are tagged with their voice index and ordered by
// (voice, start beat).
func Interpret(voices []Voice) ([]models.NoteEvent, error) {
	var out []models.NoteEvent
	for vi, voice := range voices {
		cursor := 0.0
		for _, ev := range voice.Events {
			switch e := ev.(type) {
			case *RestEvent:
				cursor += beats(e.Duration)
			case *NoteEvent:
				note, err := renderNote(e, nil, nil, Articulation{}, cursor, vi)
				if err != nil {
					return nil, err
				}
				out = append(out, note)
				cursor += beats(e.Duration)
			case *ChordEvent:
				for _, n := range e.Notes {
					note, err := renderNote(n, e.Velocity, e.Duration, e.Articulation, cursor, vi)
					if err != nil {
						return nil, err
					}
					out = append(out, note)
				}
				// The cursor advances by the chord's rhythmic length;
				// per-note durations only shape sounding length.
				cursor += beats(e.Duration)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Voice != out[j].Voice {
			return out[i].Voice < out[j].Voice
		}
		return out[i].StartBeats < out[j].StartBeats
	})
	return out, nil
}

// renderNote resolves one note against optional chord-level modifiers.
// Explicit wins: a note-level modifier fully replaces the chord-level one,
// it never stacks.
func renderNote(n *NoteEvent, chordVel *int, chordDur *float64, chordArt Articulation, cursor float64, voice int) (models.NoteEvent, error) {
	midi := n.Pitch.MIDINote()
	if midi < 0 || midi > 127 {
		return models.NoteEvent{}, fmt.Errorf("pitch %s is outside the MIDI range 0-127 (note number %d)", n.Pitch, midi)
	}

	velocity := DefaultVelocity
	switch {
	case n.Velocity != nil:
		velocity = *n.Velocity
	case chordVel != nil:
		velocity = *chordVel
	}

	rhythmic := beats(n.Duration)
	if n.Duration == nil && chordDur != nil {
		rhythmic = *chordDur
	}

	art := n.Articulation
	if art == (Articulation{}) {
		art = chordArt
	}
	sounding, velocity := applyArticulation(rhythmic, velocity, art)

	return models.NoteEvent{
		MidiNoteNumber: midi,
		Velocity:       velocity,
		StartBeats:     cursor,
		DurationBeats:  sounding,
		Voice:          voice,
	}, nil
}

// applyArticulation shapes the sounding duration and velocity of a single
// event. Staccato halves per marker, floored at max(32nd note, 5% of the
// rhythmic length); legato extends by half the rhythmic length per marker;
// accent adds velocity, capped at 127. Rhythmic placement is untouched.
func applyArticulation(rhythmic float64, velocity int, a Articulation) (float64, int) {
	sounding := rhythmic
	for i := 0; i < a.Staccato; i++ {
		sounding /= 2
	}
	if a.Staccato > 0 {
		floor := staccatoFloorBeats
		if rel := rhythmic * 0.05; rel > floor {
			floor = rel
		}
		if sounding < floor {
			sounding = floor
		}
	}
	sounding += float64(a.Legato) * rhythmic * 0.5
	velocity += a.Accent * accentVelocityStep
	if velocity > 127 {
		velocity = 127
	}
	return sounding, velocity
}

func beats(dur *float64) float64 {
	if dur == nil {
		return 1
	}
	return *dur
}
