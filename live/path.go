package live

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tonelang-ai/tonelang-go/notation"
)

// SegmentKind tags one slash-delimited path segment. Dispatch in the
// resolver is on this tag; no call site sniffs string prefixes.
type SegmentKind int

const (
	SegTrack SegmentKind = iota
	SegReturnTrack
	SegMaster
	SegDevice
	SegChain
	SegReturnChain
	SegDrumPad
)

func (k SegmentKind) String() string {
	switch k {
	case SegTrack:
		return "track"
	case SegReturnTrack:
		return "return track"
	case SegMaster:
		return "master track"
	case SegDevice:
		return "device"
	case SegChain:
		return "chain"
	case SegReturnChain:
		return "return chain"
	case SegDrumPad:
		return "drum pad"
	}
	return "unknown"
}

// Segment is one parsed path token. Index carries the 0-based position for
// positional kinds; Note carries the MIDI note number for drum pads, which
// are addressed by note, never by position.
type Segment struct {
	Kind  SegmentKind
	Index int
	Note  int
	Text  string
}

// ObjectType is the discovered type of a resolved terminal object.
type ObjectType string

const (
	TypeTrack       ObjectType = "track"
	TypeReturnTrack ObjectType = "return track"
	TypeMasterTrack ObjectType = "master track"
	TypeDevice      ObjectType = "device"
	TypeChain       ObjectType = "chain"
	TypeReturnChain ObjectType = "return chain"
	TypeDrumPad     ObjectType = "drum-pad"
)

// ParsePath splits a path like "t1/d0/pC1/c0/d0" into tagged segments.
// Structural problems yield a Malformed PathError naming the offending
// segment and its 0-based position.
func ParsePath(path string) ([]Segment, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, &PathError{Kind: ErrMalformed, Path: path, Reason: "empty path"}
	}
	tokens := strings.Split(trimmed, "/")
	segments := make([]Segment, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		seg, err := parseSegment(tok, path, i)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func parseSegment(tok, path string, pos int) (Segment, error) {
	malformed := func(reason string) (Segment, error) {
		return Segment{}, &PathError{
			Kind:     ErrMalformed,
			Path:     path,
			Segment:  tok,
			Position: pos,
			Reason:   reason,
		}
	}

	switch {
	case tok == "m":
		return Segment{Kind: SegMaster, Text: tok}, nil
	case strings.HasPrefix(tok, "rt"):
		return indexedSegment(SegReturnTrack, tok, tok[2:], path, pos)
	case strings.HasPrefix(tok, "rc"):
		return indexedSegment(SegReturnChain, tok, tok[2:], path, pos)
	case strings.HasPrefix(tok, "t"):
		return indexedSegment(SegTrack, tok, tok[1:], path, pos)
	case strings.HasPrefix(tok, "d"):
		return indexedSegment(SegDevice, tok, tok[1:], path, pos)
	case strings.HasPrefix(tok, "c"):
		return indexedSegment(SegChain, tok, tok[1:], path, pos)
	case strings.HasPrefix(tok, "p"):
		pitch, err := notation.ParsePitch(tok[1:])
		if err != nil {
			return malformed(fmt.Sprintf("Invalid drum pad note in path: %s", path))
		}
		return Segment{Kind: SegDrumPad, Note: pitch.MIDINote(), Text: tok}, nil
	case tok == "":
		return malformed("empty segment")
	default:
		return malformed(fmt.Sprintf("unknown segment %q", tok))
	}
}

func indexedSegment(kind SegmentKind, tok, digits, path string, pos int) (Segment, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return Segment{}, &PathError{
			Kind:     ErrMalformed,
			Path:     path,
			Segment:  tok,
			Position: pos,
			Reason:   fmt.Sprintf("segment %q needs a non-negative index", tok),
		}
	}
	return Segment{Kind: kind, Index: n, Text: tok}, nil
}
