package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []Segment
	}{
		{
			name:     "track only",
			path:     "t0",
			expected: []Segment{{Kind: SegTrack, Text: "t0"}},
		},
		{
			name: "track device",
			path: "t1/d2",
			expected: []Segment{
				{Kind: SegTrack, Index: 1, Text: "t1"},
				{Kind: SegDevice, Index: 2, Text: "d2"},
			},
		},
		{
			name:     "return track",
			path:     "rt1",
			expected: []Segment{{Kind: SegReturnTrack, Index: 1, Text: "rt1"}},
		},
		{
			name:     "master",
			path:     "m",
			expected: []Segment{{Kind: SegMaster, Text: "m"}},
		},
		{
			name: "return chain under device",
			path: "t0/d0/rc0",
			expected: []Segment{
				{Kind: SegTrack, Text: "t0"},
				{Kind: SegDevice, Text: "d0"},
				{Kind: SegReturnChain, Text: "rc0"},
			},
		},
		{
			name: "nested drum rack",
			path: "t0/d0/pC1/c0/d0",
			expected: []Segment{
				{Kind: SegTrack, Text: "t0"},
				{Kind: SegDevice, Text: "d0"},
				{Kind: SegDrumPad, Note: 36, Text: "pC1"},
				{Kind: SegChain, Text: "c0"},
				{Kind: SegDevice, Text: "d0"},
			},
		},
		{
			name: "sharp drum pad",
			path: "t0/d0/pF#1",
			expected: []Segment{
				{Kind: SegTrack, Text: "t0"},
				{Kind: SegDevice, Text: "d0"},
				{Kind: SegDrumPad, Note: 42, Text: "pF#1"},
			},
		},
		{
			name: "surrounding whitespace tolerated",
			path: " t0/d1 ",
			expected: []Segment{
				{Kind: SegTrack, Text: "t0"},
				{Kind: SegDevice, Index: 1, Text: "d1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := ParsePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, segments)
		})
	}
}

func TestParsePath_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		position int
	}{
		{name: "empty path", path: ""},
		{name: "blank path", path: "   "},
		{name: "empty segment", path: "t0//d0", position: 1},
		{name: "unknown segment", path: "t0/x3", position: 1},
		{name: "missing index", path: "t", position: 0},
		{name: "negative index", path: "t-1", position: 0},
		{name: "non-numeric index", path: "t0/dx", position: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePath(tt.path)
			require.Error(t, err)

			var pathErr *PathError
			require.ErrorAs(t, err, &pathErr)
			assert.Equal(t, ErrMalformed, pathErr.Kind)
			assert.Equal(t, tt.position, pathErr.Position)
		})
	}
}

func TestParsePath_InvalidDrumPadNote(t *testing.T) {
	_, err := ParsePath("t0/d0/p")
	require.Error(t, err)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, ErrMalformed, pathErr.Kind)
	assert.Equal(t, "Invalid drum pad note in path: t0/d0/p", err.Error())

	_, err = ParsePath("t0/d0/pX1")
	require.Error(t, err)
	assert.Equal(t, "Invalid drum pad note in path: t0/d0/pX1", err.Error())
}

func TestSegmentKind_String(t *testing.T) {
	assert.Equal(t, "track", SegTrack.String())
	assert.Equal(t, "return track", SegReturnTrack.String())
	assert.Equal(t, "drum pad", SegDrumPad.String())
}
