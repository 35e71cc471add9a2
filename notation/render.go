package notation

import (
	"math"
	"strconv"
	"strings"
)

// Render writes voices back out as canonical ToneLang text: velocity before
// duration, divisions rendered as "/N" when the multiplier is a clean
// reciprocal, voices joined by "; ". Re-parsing the result yields an
// equivalent event list.
func Render(voices []Voice) string {
	parts := make([]string, 0, len(voices))
	for _, v := range voices {
		events := make([]string, 0, len(v.Events))
		for _, ev := range v.Events {
			events = append(events, renderEvent(ev))
		}
		parts = append(parts, strings.Join(events, " "))
	}
	return strings.Join(parts, "; ")
}

func renderEvent(ev Event) string {
	var b strings.Builder
	switch e := ev.(type) {
	case *RestEvent:
		b.WriteByte('R')
		b.WriteString(renderDuration(e.Duration))
	case *NoteEvent:
		b.WriteString(e.Pitch.String())
		b.WriteString(renderVelocity(e.Velocity))
		b.WriteString(renderDuration(e.Duration))
		b.WriteString(renderArticulation(e.Articulation))
	case *ChordEvent:
		b.WriteByte('[')
		for i, n := range e.Notes {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(renderEvent(n))
		}
		b.WriteByte(']')
		b.WriteString(renderVelocity(e.Velocity))
		b.WriteString(renderDuration(e.Duration))
		b.WriteString(renderArticulation(e.Articulation))
	}
	return b.String()
}

func renderVelocity(v *int) string {
	if v == nil {
		return ""
	}
	return ":v" + strconv.Itoa(*v)
}

func renderDuration(d *float64) string {
	if d == nil {
		return ""
	}
	m := *d
	if m < 1 {
		// Prefer the division form when the reciprocal is clean.
		inv := 1 / m
		if rounded := math.Round(inv); math.Abs(inv-rounded) < 1e-9 {
			return "/" + formatNumber(rounded)
		}
	}
	return "*" + formatNumber(m)
}

func renderArticulation(a Articulation) string {
	return strings.Repeat("^", a.Staccato) +
		strings.Repeat("_", a.Legato) +
		strings.Repeat(">", a.Accent)
}

func formatNumber(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	return s
}
