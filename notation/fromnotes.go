package notation

import (
	"sort"

	"github.com/tonelang-ai/tonelang-go/models"
)

const timeEpsilon = 1e-9

// VoicesFromNotes rebuilds a parse tree from absolute-timed notes so a clip
// can be re-rendered as ToneLang. Notes sharing a start and duration merge
// into chords; gaps become rests; overlapping notes spill into additional
// voices, since events within one voice never overlap. All modifiers come
// out explicit (velocity and duration set), which survives a re-parse
// unchanged.
func VoicesFromNotes(notes []models.NoteEvent) []Voice {
	if len(notes) == 0 {
		return nil
	}
	sorted := append([]models.NoteEvent(nil), notes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartBeats != sorted[j].StartBeats {
			return sorted[i].StartBeats < sorted[j].StartBeats
		}
		if sorted[i].DurationBeats != sorted[j].DurationBeats {
			return sorted[i].DurationBeats < sorted[j].DurationBeats
		}
		return sorted[i].MidiNoteNumber < sorted[j].MidiNoteNumber
	})

	type voiceState struct {
		voice  Voice
		cursor float64
	}
	var states []*voiceState

	for i := 0; i < len(sorted); {
		start := sorted[i].StartBeats
		dur := sorted[i].DurationBeats
		j := i
		for j < len(sorted) &&
			sorted[j].StartBeats == start &&
			sorted[j].DurationBeats == dur {
			j++
		}
		group := sorted[i:j]
		i = j

		var target *voiceState
		for _, st := range states {
			if st.cursor <= start+timeEpsilon {
				target = st
				break
			}
		}
		if target == nil {
			target = &voiceState{}
			states = append(states, target)
		}

		if gap := start - target.cursor; gap > timeEpsilon {
			g := gap
			target.voice.Events = append(target.voice.Events, &RestEvent{Duration: &g})
		}

		target.voice.Events = append(target.voice.Events, eventForGroup(group, dur))
		target.cursor = start + dur
	}

	voices := make([]Voice, len(states))
	for i, st := range states {
		voices[i] = st.voice
	}
	return voices
}

func eventForGroup(group []models.NoteEvent, dur float64) Event {
	mkNote := func(n models.NoteEvent) *NoteEvent {
		vel := n.Velocity
		d := dur
		return &NoteEvent{
			Pitch:    PitchFromMIDI(n.MidiNoteNumber),
			Velocity: &vel,
			Duration: &d,
		}
	}
	if len(group) == 1 {
		return mkNote(group[0])
	}
	ch := &ChordEvent{}
	d := dur
	ch.Duration = &d
	for _, n := range group {
		note := mkNote(n)
		note.Duration = nil // the chord-level duration covers every member
		ch.Notes = append(ch.Notes, note)
	}
	return ch
}
