package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/intudo/intent-gateway/internal/config"
	"github.com/intudo/intent-gateway/internal/observability"
	"github.com/intudo/intent-gateway/internal/resilience"
)

// OpenAIInterpreter implements Interpreter using the chat completions API.
type OpenAIInterpreter struct {
	client         *openai.Client
	model          string
	temperature    float32
	circuitBreaker *resilience.CircuitBreaker
}

// NewOpenAIInterpreter creates a new chat-completion intent interpreter
func NewOpenAIInterpreter(cfg *config.Config) *OpenAIInterpreter {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &OpenAIInterpreter{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.ChatModel,
		temperature: float32(cfg.ChatTemperature),
		circuitBreaker: resilience.NewCircuitBreaker(
			"interpreter",
			cfg.CircuitBreakerMaxFailures,
			time.Duration(cfg.CircuitBreakerResetTimeout)*time.Second,
		),
	}
}

// Interpret sends the transcript to the model and returns a normalized
// result. Backend failures never propagate: the caller always gets a
// safe Interpretation that echoes the transcript, marked clarification
// with low confidence.
func (i *OpenAIInterpreter) Interpret(ctx context.Context, transcript, platform string) Interpretation {
	start := time.Now()
	var content string

	err := i.circuitBreaker.Call(func() error {
		resp, err := i.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       i.model,
			Temperature: i.temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: intentSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(transcript, platform)},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("no choices in completion response")
		}
		content = resp.Choices[0].Message.Content
		if strings.TrimSpace(content) == "" {
			return errors.New("empty completion content")
		}
		return nil
	})

	observability.UpdateCircuitBreakerState("interpreter", int(i.circuitBreaker.GetState()))
	observability.RecordLLMRequest(err == nil, start)

	if err != nil {
		observability.IncrementCircuitBreakerFailures("interpreter")
		logger := observability.GetLogger()
		logger.Warn().
			Err(err).
			Msg("intent interpretation failed, returning safe result")
		return Interpretation{
			CleanedIntent: transcript,
			FinalPrompt:   transcript,
			IntentType:    IntentClarification,
			Confidence:    confidenceNoObject,
		}
	}

	parsed, _ := ExtractJSON(content)
	return Normalize(parsed)
}
