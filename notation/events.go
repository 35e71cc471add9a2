package notation

// Articulation counts attached to a single event. Each marker may repeat;
// the counts only shape the sounding length and velocity of that event,
// never the rhythmic placement of whatever follows it.
type Articulation struct {
	Staccato int // "^" halves the sounding duration per marker
	Legato   int // "_" extends the sounding duration per marker
	Accent   int // ">" raises velocity per marker
}

// NoteEvent is a single note as parsed. Velocity and Duration are nil when
// the source text carried no modifier: the parser never substitutes
// defaults, that is the interpreter's job.
type NoteEvent struct {
	Pitch        Pitch
	Velocity     *int     // 0-127 when set
	Duration     *float64 // multiplier against one quarter-note beat
	Articulation Articulation
}

// ChordEvent is a bracketed set of notes sounding together. Chord-level
// Velocity/Duration apply to member notes that carry none of their own;
// a member's own modifier wins outright, it never stacks.
type ChordEvent struct {
	Notes        []*NoteEvent
	Velocity     *int
	Duration     *float64
	Articulation Articulation
}

// RestEvent advances the voice's time cursor without sounding.
type RestEvent struct {
	Duration *float64
}

// Event is one parsed musical unit: *NoteEvent, *ChordEvent or *RestEvent.
type Event interface{ isEvent() }

func (*NoteEvent) isEvent()  {}
func (*ChordEvent) isEvent() {}
func (*RestEvent) isEvent()  {}

// Voice is an independent timeline of events, starting at beat 0.
type Voice struct {
	Events []Event
}
