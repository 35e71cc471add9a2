package live

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolvedPath is the outcome of walking a path string: the terminal
// object, its discovered type, and any segments that could not legally
// continue past it. A non-empty Remaining means the path asked for
// structure the terminal object does not have (e.g. chains under a plain
// device); callers detect that through RequireType.
type ResolvedPath struct {
	Object    Object
	Type      ObjectType
	Remaining []Segment
	Raw       string
}

// RequireType checks that the walk consumed the whole path and landed on
// the requested type, returning a WrongType PathError otherwise.
func (r *ResolvedPath) RequireType(want ObjectType) error {
	if r.Type != want || len(r.Remaining) > 0 {
		actual := r.Type
		if actual == "" {
			// Nothing was consumed: the first segment already could
			// not transition from the session root.
			actual = "nothing"
		}
		return &PathError{Kind: ErrWrongType, Path: r.Raw, Wanted: want, Actual: actual}
	}
	return nil
}

// Resolve walks a compact path like "t0/d0/pC1/c0/d0" through the host
// object graph to a single terminal object. The walk is a linear
// left-to-right fold: each segment indexes into the current object's
// children of the matching kind, except drum pads, which are located among
// their siblings by note number. An out-of-range index or a missing object
// fails immediately with a NotFound PathError naming the segment and its
// 0-based position.
func Resolve(client Client, path string) (*ResolvedPath, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return ResolveSegments(client, path, segments)
}

// ResolveSegments resolves already-parsed segments; Resolve is the usual
// entry point.
func ResolveSegments(client Client, path string, segments []Segment) (*ResolvedPath, error) {
	current := client.FromPath("live_set")
	currentType := ObjectType("")

	for i, seg := range segments {
		next, nextType, ok, err := step(current, currentType, seg, path, i, i == 0)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &ResolvedPath{
				Object:    current,
				Type:      currentType,
				Remaining: segments[i:],
				Raw:       path,
			}, nil
		}
		current, currentType = next, nextType
	}

	if current == nil || !current.Exists() {
		last := segments[len(segments)-1]
		return nil, &PathError{
			Kind:     ErrNotFound,
			Path:     path,
			Segment:  last.Text,
			Position: len(segments) - 1,
			Wanted:   currentType,
		}
	}
	return &ResolvedPath{Object: current, Type: currentType, Raw: path}, nil
}

// step performs one segment transition. ok=false means the segment kind
// cannot legally follow the current object; the caller records it as
// unconsumed instead of erroring.
func step(current Object, currentType ObjectType, seg Segment, path string, pos int, first bool) (Object, ObjectType, bool, error) {
	switch seg.Kind {
	case SegTrack, SegReturnTrack:
		if !first {
			return nil, "", false, nil
		}
		prop, typ := "tracks", TypeTrack
		if seg.Kind == SegReturnTrack {
			prop, typ = "return_tracks", TypeReturnTrack
		}
		obj, err := childAt(current, prop, seg.Index, typ, path, seg, pos)
		return obj, typ, true, err

	case SegMaster:
		if !first {
			return nil, "", false, nil
		}
		raw, err := current.Get("master_track")
		obj, castOK := raw.(Object)
		if err != nil || !castOK || !obj.Exists() {
			return nil, "", false, &PathError{
				Kind: ErrNotFound, Path: path, Segment: seg.Text, Position: pos,
				Wanted: TypeMasterTrack,
			}
		}
		return obj, TypeMasterTrack, true, nil

	case SegDevice:
		switch currentType {
		case TypeTrack, TypeReturnTrack, TypeMasterTrack, TypeChain, TypeReturnChain:
			obj, err := childAt(current, "devices", seg.Index, TypeDevice, path, seg, pos)
			return obj, TypeDevice, true, err
		}
		return nil, "", false, nil

	case SegChain:
		switch currentType {
		case TypeDevice, TypeDrumPad:
			obj, err := childAt(current, "chains", seg.Index, TypeChain, path, seg, pos)
			return obj, TypeChain, true, err
		}
		return nil, "", false, nil

	case SegReturnChain:
		if currentType != TypeDevice {
			return nil, "", false, nil
		}
		obj, err := childAt(current, "return_chains", seg.Index, TypeReturnChain, path, seg, pos)
		return obj, TypeReturnChain, true, err

	case SegDrumPad:
		if currentType != TypeDevice {
			return nil, "", false, nil
		}
		obj, err := drumPadByNote(current, seg, path, pos)
		return obj, TypeDrumPad, true, err
	}
	return nil, "", false, nil
}

func childAt(parent Object, prop string, index int, typ ObjectType, path string, seg Segment, pos int) (Object, error) {
	notFound := &PathError{
		Kind: ErrNotFound, Path: path, Segment: seg.Text, Position: pos, Wanted: typ,
	}
	raw, err := parent.Get(prop)
	if err != nil {
		return nil, notFound
	}
	children, ok := raw.([]Object)
	if !ok || index >= len(children) {
		return nil, notFound
	}
	return children[index], nil
}

// drumPadByNote locates a pad among the drum rack's children by its note
// number. Pads are never addressed by position: two racks whose pads sit
// in different sibling orders still resolve pC1 to the same pad.
func drumPadByNote(rack Object, seg Segment, path string, pos int) (Object, error) {
	raw, err := rack.Get("drum_pads")
	pads, ok := raw.([]Object)
	if err != nil || !ok {
		return nil, &PathError{
			Kind: ErrNotFound, Path: path, Segment: seg.Text, Position: pos, Wanted: TypeDrumPad,
		}
	}
	for _, pad := range pads {
		noteRaw, err := pad.Get("note")
		if err != nil {
			continue
		}
		if note, ok := asInt(noteRaw); ok && note == seg.Note {
			return pad, nil
		}
	}
	return nil, &PathError{
		Kind: ErrNotFound, Path: path, Segment: seg.Text, Position: pos, Wanted: TypeDrumPad,
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// ParentDevicePath extracts, from a host API path, the parent that owns the
// innermost device plus that device's index: everything before the LAST
// "devices N" marker. Delete needs the immediate parent rather than the
// leaf, and with racks nested arbitrarily deep only the last marker is the
// right one.
func ParentDevicePath(apiPath string) (parent string, index int, err error) {
	tokens := strings.Fields(apiPath)
	for i := len(tokens) - 2; i >= 0; i-- {
		if tokens[i] != "devices" {
			continue
		}
		n, convErr := strconv.Atoi(tokens[i+1])
		if convErr != nil {
			continue
		}
		return strings.Join(tokens[:i], " "), n, nil
	}
	return "", 0, fmt.Errorf("could not find device index in path %q", apiPath)
}
