package live

import "fmt"

// PathErrorKind separates the three failure modes callers branch on:
// the object genuinely is not there, the path resolved to something of the
// wrong type, or the path text itself is broken.
type PathErrorKind int

const (
	ErrNotFound PathErrorKind = iota
	ErrWrongType
	ErrMalformed
)

// PathError reports exactly where and how a path failed to resolve.
type PathError struct {
	Kind     PathErrorKind
	Path     string     // the full path text as submitted
	Segment  string     // the failing segment, when one is identifiable
	Position int        // 0-based segment position of the failure
	Wanted   ObjectType // for ErrWrongType: what the caller asked for
	Actual   ObjectType // for ErrWrongType: what the path resolved to
	Reason   string     // for ErrMalformed: the structural problem
}

func (e *PathError) Error() string {
	switch e.Kind {
	case ErrNotFound:
		if e.Segment != "" {
			return fmt.Sprintf("%s at path %q does not exist (segment %q, position %d)",
				e.Wanted, e.Path, e.Segment, e.Position)
		}
		return fmt.Sprintf("%s at path %q does not exist", e.Wanted, e.Path)
	case ErrWrongType:
		return fmt.Sprintf("path %q resolves to %s, not %s", e.Path, e.Actual, e.Wanted)
	default:
		return e.Reason
	}
}
