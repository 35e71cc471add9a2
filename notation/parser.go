package notation

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports the farthest point the parser reached before failing,
// together with every token that would have been acceptable there. The
// message is precise enough for an LLM caller to repair its notation.
type SyntaxError struct {
	Offset   int
	Found    string   // offending substring, or "end of input"
	Expected []string // pre-formatted labels, literals quoted
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Expected %s but %s found at position %d",
		joinExpected(e.Expected), e.Found, e.Offset)
}

func joinExpected(labels []string) string {
	switch len(labels) {
	case 0:
		return "nothing"
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " or " + labels[1]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + ", or " + labels[len(labels)-1]
	}
}

// Parse converts ToneLang source text into one or more voices, split on
// top-level ";". Whitespace (spaces, tabs, newlines) separates events;
// runs of any length collapse to a single separator, and leading/trailing
// runs are ignored. Every optional modifier that is absent stays absent in
// the result: Parse applies no defaults whatsoever.
func Parse(source string) ([]Voice, error) {
	p := &parser{src: source}
	voices, ok := p.parseSequence()
	if !ok {
		return nil, p.syntaxError()
	}
	return voices, nil
}

type parser struct {
	src string
	pos int

	// Farthest-failure bookkeeping: every failed match at the maximum
	// offset contributes its label to the expected set.
	farthest int
	expected []string
}

// fail records a match failure at off with a human-readable label and
// always returns false so call sites can "return p.fail(...)".
func (p *parser) fail(off int, label string) bool {
	if off < p.farthest {
		return false
	}
	if off > p.farthest {
		p.farthest = off
		p.expected = p.expected[:0]
	}
	for _, e := range p.expected {
		if e == label {
			return false
		}
	}
	p.expected = append(p.expected, label)
	return false
}

func (p *parser) syntaxError() *SyntaxError {
	found := `end of input`
	if p.farthest < len(p.src) {
		found = fmt.Sprintf("%q", string(p.src[p.farthest]))
	}
	return &SyntaxError{
		Offset:   p.farthest,
		Found:    found,
		Expected: append([]string(nil), p.expected...),
	}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNoteLetter(c byte) bool { return c >= 'A' && c <= 'G' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// skipWhitespace consumes a run of whitespace and reports how many bytes
// were consumed.
func (p *parser) skipWhitespace() int {
	start := p.pos
	for !p.eof() && isWhitespace(p.peek()) {
		p.pos++
	}
	return p.pos - start
}

// sequence := voice (";" voice)*
func (p *parser) parseSequence() ([]Voice, bool) {
	var voices []Voice
	for {
		p.skipWhitespace()
		voice, ok := p.parseVoice()
		if !ok {
			return nil, false
		}
		voices = append(voices, voice)
		p.skipWhitespace()
		if p.eof() {
			return voices, true
		}
		if p.peek() != ';' {
			return nil, p.fail(p.pos, `";"`)
		}
		p.pos++
	}
}

// voice := event (whitespace+ event)*
func (p *parser) parseVoice() (Voice, bool) {
	var v Voice
	ev, ok := p.parseEvent()
	if !ok {
		return v, false
	}
	v.Events = append(v.Events, ev)
	for {
		mark := p.pos
		sep := p.skipWhitespace()
		if p.eof() || p.peek() == ';' {
			p.pos = mark
			return v, true
		}
		if sep == 0 {
			return v, p.fail(p.pos, "whitespace")
		}
		ev, ok := p.parseEvent()
		if !ok {
			return v, false
		}
		v.Events = append(v.Events, ev)
	}
}

// event := chord | note | rest
func (p *parser) parseEvent() (Event, bool) {
	switch c := p.peek(); {
	case c == 'R':
		return p.parseRest()
	case c == '[':
		return p.parseChord()
	case isNoteLetter(c):
		return p.parseNote()
	default:
		p.fail(p.pos, `"R"`)
		p.fail(p.pos, `"["`)
		return nil, p.fail(p.pos, "note-letter")
	}
}

// rest := "R" durationModifier?
func (p *parser) parseRest() (Event, bool) {
	p.pos++ // "R"
	dur, ok := p.parseOptionalDuration()
	if !ok {
		return nil, false
	}
	return &RestEvent{Duration: dur}, true
}

// note := pitchLetter accidental? octaveDigits modifiers? articulation*
func (p *parser) parseNote() (*NoteEvent, bool) {
	if !isNoteLetter(p.peek()) {
		return nil, p.fail(p.pos, "note-letter")
	}
	n := &NoteEvent{}
	n.Pitch.Letter = p.peek()
	p.pos++
	switch p.peek() {
	case '#':
		n.Pitch.Accidental = Sharp
		p.pos++
	case 'b':
		n.Pitch.Accidental = Flat
		p.pos++
	}
	octave, ok := p.parseSignedInt()
	if !ok {
		return nil, false
	}
	n.Pitch.Octave = octave
	if !p.parseModifiers(&n.Velocity, &n.Duration) {
		return nil, false
	}
	n.Articulation = p.parseArticulation()
	return n, true
}

// chord := "[" note (whitespace+ note)* "]" modifiers? articulation*
func (p *parser) parseChord() (Event, bool) {
	p.pos++ // "["
	ch := &ChordEvent{}
	p.skipWhitespace()
	for {
		n, ok := p.parseNote()
		if !ok {
			return nil, false
		}
		ch.Notes = append(ch.Notes, n)
		sep := p.skipWhitespace()
		if p.peek() == ']' {
			p.pos++
			break
		}
		if sep == 0 {
			p.fail(p.pos, `"]"`)
			return nil, p.fail(p.pos, "whitespace")
		}
		if !isNoteLetter(p.peek()) {
			p.fail(p.pos, `"]"`)
			return nil, p.fail(p.pos, "note-letter")
		}
	}
	if !p.parseModifiers(&ch.Velocity, &ch.Duration) {
		return nil, false
	}
	ch.Articulation = p.parseArticulation()
	return ch, true
}

// modifiers := velocityModifier? durationModifier?
//
// The order is fixed: ":vNN" must come before "*N"/"/N". Duration-then-
// velocity is left unconsumed here, which makes the stray ":" a syntax
// error at the event boundary rather than a silent reorder.
func (p *parser) parseModifiers(velocity **int, duration **float64) bool {
	if p.peek() == ':' {
		v, ok := p.parseVelocity()
		if !ok {
			return false
		}
		*velocity = &v
	}
	dur, ok := p.parseOptionalDuration()
	if !ok {
		return false
	}
	*duration = dur
	return true
}

// velocityModifier := ":v" integer(0..127)
//
// The range check lives in the grammar: ":v128" is a syntax error, not an
// interpretation error.
func (p *parser) parseVelocity() (int, bool) {
	p.pos++ // ":"
	if p.peek() != 'v' {
		return 0, p.fail(p.pos, `"v"`)
	}
	p.pos++
	start := p.pos
	for !p.eof() && isDigit(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return 0, p.fail(p.pos, "digit")
	}
	v, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil || v > 127 {
		return 0, p.fail(start, "velocity between 0 and 127")
	}
	return v, true
}

// durationModifier := ("*"|"/") number, where number may be a decimal.
// Returns nil (still ok) when no duration modifier is present.
func (p *parser) parseOptionalDuration() (*float64, bool) {
	op := p.peek()
	if op != '*' && op != '/' {
		return nil, true
	}
	p.pos++
	start := p.pos
	for !p.eof() && isDigit(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return nil, p.fail(p.pos, "number")
	}
	if p.peek() == '.' {
		p.pos++
		fracStart := p.pos
		for !p.eof() && isDigit(p.peek()) {
			p.pos++
		}
		if p.pos == fracStart {
			return nil, p.fail(p.pos, "digit")
		}
	}
	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, p.fail(start, "number")
	}
	if op == '/' {
		if n == 0 {
			return nil, p.fail(start, "non-zero divisor")
		}
		n = 1 / n
	}
	return &n, true
}

// parseSignedInt reads the octave: any integer is syntactically valid, the
// grammar never range-checks it.
func (p *parser) parseSignedInt() (int, bool) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	digitStart := p.pos
	for !p.eof() && isDigit(p.peek()) {
		p.pos++
	}
	if p.pos == digitStart {
		return 0, p.fail(p.pos, "digit")
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.fail(start, "integer")
	}
	// A longer digit run would also have been accepted; record it so the
	// farthest-failure expected set mentions "digit" at this offset.
	p.fail(p.pos, "digit")
	return n, true
}

// articulation markers trail the modifiers and may repeat: "^^", "__", ">>".
func (p *parser) parseArticulation() Articulation {
	var a Articulation
	for {
		switch p.peek() {
		case '^':
			a.Staccato++
		case '_':
			a.Legato++
		case '>':
			a.Accent++
		default:
			return a
		}
		p.pos++
	}
}
