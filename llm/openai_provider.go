package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const providerNameOpenAI = "openai"

// OpenAIProvider implements the Provider interface using OpenAI's Chat
// Completions API.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Generate implements non-streaming generation.
func (p *OpenAIProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 OPENAI GENERATION REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()
	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(request.Model),
		Messages: buildMessages(request),
	})
	if err != nil {
		transaction.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("openai generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	log.Printf("✅ OpenAI generation complete in %v", time.Since(startTime).Round(time.Millisecond))
	transaction.Status = sentry.SpanStatusOK

	return &GenerationResponse{
		Output: resp.Choices[0].Message.Content,
		Model:  resp.Model,
		Usage: &Usage{
			TotalTokens:  int(resp.Usage.TotalTokens),
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

// buildMessages folds the system prompt and any CFG grammar into the
// message list. The grammar rides along as system text so the model is
// steered toward valid ToneLang even without constrained decoding.
func buildMessages(request *GenerationRequest) []openai.ChatCompletionMessageParamUnion {
	system := request.System
	if request.CFGGrammar != nil {
		system += fmt.Sprintf("\n\nYour answer MUST conform to this %s grammar:\n%s",
			request.CFGGrammar.Syntax, request.CFGGrammar.Grammar)
	}
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(request.Input))
	return messages
}
