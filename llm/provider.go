package llm

import "context"

// CFGGrammarConfig describes a context-free grammar the provider should
// steer generation with. Providers that support constrained decoding use it
// directly; the rest embed the grammar text in the system prompt.
type CFGGrammarConfig struct {
	ToolName    string
	Description string
	Grammar     string
	Syntax      string // "lark"
}

// GenerationRequest is a single non-streaming generation call.
type GenerationRequest struct {
	Model      string
	System     string
	Input      string
	CFGGrammar *CFGGrammarConfig
}

// Usage reports token consumption for a generation call.
type Usage struct {
	TotalTokens  int `json:"total_tokens"`
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// GenerationResponse is the provider's answer.
type GenerationResponse struct {
	Output string
	Model  string
	Usage  *Usage
}

// Provider is a single LLM backend.
type Provider interface {
	Name() string
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)
}
