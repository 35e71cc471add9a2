package notation

import "fmt"

// Accidental modifies a pitch letter by a semitone.
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
)

// Pitch is a note name before MIDI conversion: letter A-G, optional
// accidental, and an octave. Octave is unbounded here; range checking
// happens at interpretation time.
type Pitch struct {
	Letter     byte
	Accidental Accidental
	Octave     int
}

// Semitone offsets from C for each letter.
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Sharp-preferring names for rendering, indexed by pitch class.
var pitchClassNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// MIDINote converts the pitch to its MIDI-equivalent note number using this
// notation's convention: C3 = 60 (and therefore pC1 = 36 for drum pads).
// This is deliberately NOT the MIDI-standard octave numbering.
func (p Pitch) MIDINote() int {
	offset := letterOffsets[p.Letter]
	switch p.Accidental {
	case Sharp:
		offset++
	case Flat:
		offset--
	}
	return (p.Octave+2)*12 + offset
}

// String renders the pitch in ToneLang form, e.g. "C#3" or "Bb2".
func (p Pitch) String() string {
	switch p.Accidental {
	case Sharp:
		return fmt.Sprintf("%c#%d", p.Letter, p.Octave)
	case Flat:
		return fmt.Sprintf("%cb%d", p.Letter, p.Octave)
	default:
		return fmt.Sprintf("%c%d", p.Letter, p.Octave)
	}
}

// ParsePitch parses a standalone pitch token such as "C1" or "Eb2". The
// whole string must be consumed. Used by the path resolver for drum-pad
// segments, so pad addressing shares the notation grammar's pitch rules.
func ParsePitch(s string) (Pitch, error) {
	p := &parser{src: s}
	if !isNoteLetter(p.peek()) {
		return Pitch{}, fmt.Errorf("invalid pitch %q: expected note-letter A-G", s)
	}
	n, ok := p.parseNote()
	if !ok || p.pos != len(s) {
		return Pitch{}, fmt.Errorf("invalid pitch %q", s)
	}
	if n.Velocity != nil || n.Duration != nil || n.Articulation != (Articulation{}) {
		return Pitch{}, fmt.Errorf("invalid pitch %q: modifiers are not allowed here", s)
	}
	return n.Pitch, nil
}

// PitchFromMIDI converts a MIDI note number back to a Pitch, preferring
// sharps for black keys. Inverse of MIDINote for round-trip rendering.
func PitchFromMIDI(note int) Pitch {
	octave := note/12 - 2
	name := pitchClassNames[((note%12)+12)%12]
	p := Pitch{Letter: name[0], Octave: octave}
	if len(name) > 1 {
		p.Accidental = Sharp
	}
	return p
}
