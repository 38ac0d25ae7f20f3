package stt

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/intudo/intent-gateway/internal/config"
	"github.com/intudo/intent-gateway/internal/observability"
	"github.com/intudo/intent-gateway/internal/resilience"
)

// WhisperClient implements Transcriber using the OpenAI audio
// transcription API.
type WhisperClient struct {
	client         *openai.Client
	model          string
	circuitBreaker *resilience.CircuitBreaker
}

// NewWhisperClient creates a new Whisper transcription client
func NewWhisperClient(cfg *config.Config) *WhisperClient {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &WhisperClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.WhisperModel,
		circuitBreaker: resilience.NewCircuitBreaker(
			"whisper",
			cfg.CircuitBreakerMaxFailures,
			time.Duration(cfg.CircuitBreakerResetTimeout)*time.Second,
		),
	}
}

// Transcribe sends the audio file to Whisper and returns the transcript.
// The call is made exactly once: a failed transcription is reported to
// the caller, never retried. The SDK opens and closes the file itself,
// so no handle outlives the call.
func (w *WhisperClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file not found: %w", err)
	}

	start := time.Now()
	var text string

	err := w.circuitBreaker.Call(func() error {
		resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    w.model,
			FilePath: audioPath,
			Format:   openai.AudioResponseFormatJSON,
		})
		if err != nil {
			return err
		}
		text = strings.TrimSpace(resp.Text)
		return nil
	})

	observability.UpdateCircuitBreakerState("whisper", int(w.circuitBreaker.GetState()))
	observability.RecordSTTRequest(err == nil, start)

	if err != nil {
		observability.IncrementCircuitBreakerFailures("whisper")
		return "", fmt.Errorf("whisper transcription failed: %w", err)
	}

	if text == "" {
		logger := observability.GetLogger()
		logger.Debug().
			Str("audio_path", audioPath).
			Msg("whisper returned empty transcription")
	}
	return text, nil
}
