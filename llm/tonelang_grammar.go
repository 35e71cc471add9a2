package llm

// GetToneLangGrammar returns the Lark grammar definition for ToneLang.
// Used for CFG-steered generation and embedded verbatim in tool
// descriptions so chat-driven callers learn the syntax up front.
func GetToneLangGrammar() string {
	return `
// ToneLang Grammar - compact music notation for clip writing
// Example: C3:v80 D3:v100/2 R/2 [E3 G3 B3]:v90*2

// ---------- Start rule ----------
start: voice (";" voice)*

// ---------- Voices ----------
// Voices are independent timelines, all starting at beat 0.
voice: event (WS+ event)*

// ---------- Events ----------
event: chord | note | rest

note: NOTE_LETTER ACCIDENTAL? OCTAVE modifiers articulation*
chord: "[" note (WS+ note)* "]" modifiers articulation*
rest: "R" duration_modifier?

// ---------- Modifiers ----------
// Velocity must come before duration: "C3:v80*2", never "C3*2:v80".
modifiers: velocity_modifier? duration_modifier?
velocity_modifier: ":v" VELOCITY        // integer 0-127
duration_modifier: ("*" | "/") NUMBER   // multiplier against one beat

// ---------- Articulation ----------
// "^" staccato (halves sounding length), "_" legato (extends it),
// ">" accent (raises velocity). May repeat: "^^", ">>".
articulation: "^" | "_" | ">"

// ---------- Terminals ----------
NOTE_LETTER: "A" | "B" | "C" | "D" | "E" | "F" | "G"
ACCIDENTAL: "#" | "b"
OCTAVE: /-?\d+/                         // C3 = middle C (note 60)
VELOCITY: /\d{1,3}/
NUMBER: /\d+(\.\d+)?/
WS: " " | "\t" | "\n"
`
}

// GetToneLangCFG returns the grammar packaged for CFG-constrained
// generation requests.
func GetToneLangCFG() *CFGGrammarConfig {
	return &CFGGrammarConfig{
		ToolName:    "tonelang",
		Description: "Emit a complete piece of ToneLang notation and nothing else.",
		Grammar:     GetToneLangGrammar(),
		Syntax:      "lark",
	}
}
