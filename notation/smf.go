package notation

import (
	"fmt"
	"io"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/tonelang-ai/tonelang-go/models"
)

const ticksPerQuarter = 960

// WriteSMF renders interpreted notes as a Standard MIDI File, one track per
// voice, all on channel 0. The offline counterpart of writing notes into a
// host clip.
func WriteSMF(w io.Writer, notes []models.NoteEvent, bpm float64) error {
	if len(notes) == 0 {
		return fmt.Errorf("no notes to export")
	}
	if bpm <= 0 {
		bpm = 120
	}

	byVoice := map[int][]models.NoteEvent{}
	maxVoice := 0
	for _, n := range notes {
		byVoice[n.Voice] = append(byVoice[n.Voice], n)
		if n.Voice > maxVoice {
			maxVoice = n.Voice
		}
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	for vi := 0; vi <= maxVoice; vi++ {
		voiceNotes := byVoice[vi]
		if len(voiceNotes) == 0 {
			continue
		}
		var tr smf.Track
		if vi == 0 {
			tr.Add(0, smf.MetaTempo(bpm))
		}
		for _, msg := range voiceMessages(voiceNotes) {
			tr.Add(msg.delta, msg.msg)
		}
		tr.Close(0)
		if err := s.Add(tr); err != nil {
			return fmt.Errorf("failed to add track for voice %d: %w", vi, err)
		}
	}

	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write SMF: %w", err)
	}
	return nil
}

type timedMessage struct {
	delta uint32
	msg   midi.Message
}

type absMessage struct {
	tick int
	off  bool // note-offs sort before note-ons at the same tick
	msg  midi.Message
}

func voiceMessages(notes []models.NoteEvent) []timedMessage {
	abs := make([]absMessage, 0, len(notes)*2)
	for _, n := range notes {
		key := uint8(n.MidiNoteNumber)
		vel := uint8(n.Velocity)
		on := int(n.StartBeats * ticksPerQuarter)
		off := int((n.StartBeats + n.DurationBeats) * ticksPerQuarter)
		abs = append(abs,
			absMessage{tick: on, msg: midi.NoteOn(0, key, vel)},
			absMessage{tick: off, off: true, msg: midi.NoteOff(0, key)},
		)
	}
	sort.SliceStable(abs, func(i, j int) bool {
		if abs[i].tick != abs[j].tick {
			return abs[i].tick < abs[j].tick
		}
		return abs[i].off && !abs[j].off
	})

	out := make([]timedMessage, 0, len(abs))
	last := 0
	for _, m := range abs {
		out = append(out, timedMessage{delta: uint32(m.tick - last), msg: m.msg})
		last = m.tick
	}
	return out
}
