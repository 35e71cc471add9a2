package llm

import (
	"context"
	"fmt"
	"strings"
)

// DefaultCorrectionModel is the model the notation correction flow falls
// back to when the caller does not pick one.
const DefaultCorrectionModel = "gpt-4o-mini"

// ProviderFactory hands out the provider backing a correction request.
// An explicit provider name wins; otherwise the model prefix decides, and
// an empty model means DefaultCorrectionModel.
type ProviderFactory struct {
	openaiAPIKey string
	geminiAPIKey string
}

// NewProviderFactory creates a factory over the configured API keys. Keys
// may be empty; the factory reports the missing one only when a correction
// actually needs that provider.
func NewProviderFactory(openaiAPIKey, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey: openaiAPIKey,
		geminiAPIKey: geminiAPIKey,
	}
}

// GetProvider resolves the provider for one correction call.
func (f *ProviderFactory) GetProvider(ctx context.Context, model, providerName string) (Provider, error) {
	if providerName != "" {
		return f.byName(ctx, providerName)
	}
	if model == "" {
		model = DefaultCorrectionModel
	}
	return f.byModel(ctx, model)
}

func (f *ProviderFactory) byName(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(providerName) {
	case providerNameOpenAI:
		return f.openai()
	case providerNameGemini:
		return f.gemini(ctx)
	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: openai, gemini)", providerName)
	}
}

// byModel routes on the model prefix: gpt-* is OpenAI, gemini-* is Gemini.
// Anything else goes to OpenAI, which also serves DefaultCorrectionModel.
func (f *ProviderFactory) byModel(ctx context.Context, model string) (Provider, error) {
	if strings.HasPrefix(strings.ToLower(model), "gemini-") {
		return f.gemini(ctx)
	}
	return f.openai()
}

func (f *ProviderFactory) openai() (Provider, error) {
	if f.openaiAPIKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}
	return NewOpenAIProvider(f.openaiAPIKey), nil
}

func (f *ProviderFactory) gemini(ctx context.Context) (Provider, error) {
	if f.geminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	return NewGeminiProvider(ctx, f.geminiAPIKey)
}
