package prompt

import (
	"fmt"
	"strings"
)

// CorrectionPromptBuilder builds prompts for the notation self-correction
// flow: given broken ToneLang and the parser's diagnostic, ask a provider
// for a repaired version.
type CorrectionPromptBuilder struct{}

// NewCorrectionPromptBuilder creates a new correction prompt builder
func NewCorrectionPromptBuilder() *CorrectionPromptBuilder {
	return &CorrectionPromptBuilder{}
}

// BuildSystemPrompt returns the system prompt describing ToneLang.
func (b *CorrectionPromptBuilder) BuildSystemPrompt() string {
	sections := []string{
		b.getInstructions(),
		b.getNotationReference(),
	}
	return strings.Join(sections, "\n\n")
}

// BuildUserPrompt pairs the rejected notation with the parser diagnostic.
func (b *CorrectionPromptBuilder) BuildUserPrompt(notation string, parseErr error) string {
	return fmt.Sprintf("This ToneLang was rejected:\n\n%s\n\nParser error: %v\n\nReturn the corrected notation only.",
		notation, parseErr)
}

func (b *CorrectionPromptBuilder) getInstructions() string {
	return `You repair ToneLang, a compact music notation. You receive a rejected
piece of notation and the exact parser diagnostic (expected tokens and
failure position). Fix ONLY what the diagnostic complains about, keep the
musical intent, and answer with the corrected notation text alone - no
prose, no code fences.`
}

func (b *CorrectionPromptBuilder) getNotationReference() string {
	return `ToneLang reference:
- Note: letter A-G, optional # or b, octave integer. C3 is middle C.
  Example: C3, F#2, Bb4
- Velocity: ":v" then 0-127, directly after the note or chord: C3:v80
- Duration: "*" or "/" then a number (decimals allowed): C3*2, D3/2, E3*1.5
  Velocity must come BEFORE duration: C3:v80*2
- Rest: R, with optional duration: R/2
- Chord: notes in brackets, space separated: [C3 E3 G3]:v90*2
  A note's own modifier overrides the chord-level one for that note.
- Articulation after modifiers: ^ staccato, _ legato, > accent
- Voices: separate independent timelines with ";". Each starts at beat 0.
- Events within a voice are separated by whitespace.`
}
