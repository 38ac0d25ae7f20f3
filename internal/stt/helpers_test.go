package stt

import (
	"github.com/intudo/intent-gateway/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		OpenAIAPIKey:               "test-key",
		WhisperModel:               "whisper-1",
		CircuitBreakerMaxFailures:  5,
		CircuitBreakerResetTimeout: 30,
	}
}
