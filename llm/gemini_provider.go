package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

const providerNameGemini = "gemini"

// GeminiProvider implements the Provider interface using Google's Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate implements non-streaming generation.
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 GEMINI GENERATION REQUEST STARTED (Model: %s)", request.Model)

	system := request.System
	if request.CFGGrammar != nil {
		system += fmt.Sprintf("\n\nYour answer MUST conform to this %s grammar:\n%s",
			request.CFGGrammar.Syntax, request.CFGGrammar.Grammar)
	}

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, request.Model, genai.Text(request.Input), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}

	log.Printf("✅ Gemini generation complete in %v", time.Since(startTime).Round(time.Millisecond))

	out := &GenerationResponse{
		Output: resp.Text(),
		Model:  request.Model,
	}
	if resp.UsageMetadata != nil {
		out.Usage = &Usage{
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}
