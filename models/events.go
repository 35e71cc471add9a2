package models

// NoteEvent is one absolute-timed MIDI note, ready to be written into a clip.
type NoteEvent struct {
	MidiNoteNumber int     `json:"midiNoteNumber"`
	Velocity       int     `json:"velocity"`
	StartBeats     float64 `json:"startBeats"`
	DurationBeats  float64 `json:"durationBeats"`
	Voice          int     `json:"voice"`
}

// ClipPayload is the structured result of a read_clip tool call.
type ClipPayload struct {
	TrackIndex  int         `json:"trackIndex"`
	ClipIndex   int         `json:"clipIndex"`
	Name        string      `json:"name,omitempty"`
	LengthBeats float64     `json:"lengthBeats,omitempty"`
	Notes       []NoteEvent `json:"notes"`
	Notation    string      `json:"notation,omitempty"`
}

// DeleteResult reports the outcome of one delete batch.
type DeleteResult struct {
	Deleted []string `json:"deleted"`
	Skipped []string `json:"skipped,omitempty"`
}
