package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/intudo/intent-gateway/internal/config"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Decoding chat request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("Expected system+user message pair, got %+v", req.Messages)
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func interpreterConfig(serverURL string) *config.Config {
	return &config.Config{
		OpenAIAPIKey:               "test-key",
		OpenAIBaseURL:              serverURL + "/v1",
		ChatModel:                  "gpt-4o-mini",
		ChatTemperature:            0.3,
		CircuitBreakerMaxFailures:  5,
		CircuitBreakerResetTimeout: 30,
	}
}

func TestOpenAIInterpreter_Interpret(t *testing.T) {
	server := chatServer(t, `{"cleaned_intent": "Check train schedules", "final_prompt": "What trains run tomorrow?", "intent_type": "exploration", "confidence": 0.95}`)
	defer server.Close()

	interp := NewOpenAIInterpreter(interpreterConfig(server.URL))
	result := interp.Interpret(context.Background(), "check trains tomorrow", "chatgpt")

	if result.CleanedIntent != "Check train schedules" {
		t.Errorf("Expected cleaned_intent 'Check train schedules', got %q", result.CleanedIntent)
	}
	if result.IntentType != IntentExploration {
		t.Errorf("Expected exploration, got %q", result.IntentType)
	}
	if result.Confidence != 0.95 {
		t.Errorf("Expected confidence 0.95, got %v", result.Confidence)
	}
}

func TestOpenAIInterpreter_FencedModelOutput(t *testing.T) {
	server := chatServer(t, "```json\n{\"intent_type\":\"Generation\"}\n```")
	defer server.Close()

	interp := NewOpenAIInterpreter(interpreterConfig(server.URL))
	result := interp.Interpret(context.Background(), "write me a poem", "")

	if result.IntentType != IntentGeneration {
		t.Errorf("Expected generation, got %q", result.IntentType)
	}
	// Remaining fields come from the normalizer defaults
	if result.CleanedIntent != "Unable to interpret request" {
		t.Errorf("Expected default cleaned_intent, got %q", result.CleanedIntent)
	}
	if result.Confidence != 0.5 {
		t.Errorf("Expected confidence 0.5, got %v", result.Confidence)
	}
}

func TestOpenAIInterpreter_UnparseableModelOutput(t *testing.T) {
	server := chatServer(t, "I'm sorry, I can't produce JSON today.")
	defer server.Close()

	interp := NewOpenAIInterpreter(interpreterConfig(server.URL))
	result := interp.Interpret(context.Background(), "do something", "")

	if result.IntentType != IntentClarification {
		t.Errorf("Expected clarification, got %q", result.IntentType)
	}
	if result.Confidence != 0.3 {
		t.Errorf("Expected confidence 0.3 for unparseable output, got %v", result.Confidence)
	}
}

func TestOpenAIInterpreter_BackendFailureEchoesTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "model overloaded"}}`))
	}))
	defer server.Close()

	interp := NewOpenAIInterpreter(interpreterConfig(server.URL))
	result := interp.Interpret(context.Background(), "summarize my notes", "claude")

	if result.CleanedIntent != "summarize my notes" {
		t.Errorf("Expected transcript echoed into cleaned_intent, got %q", result.CleanedIntent)
	}
	if result.FinalPrompt != "summarize my notes" {
		t.Errorf("Expected transcript echoed into final_prompt, got %q", result.FinalPrompt)
	}
	if result.IntentType != IntentClarification {
		t.Errorf("Expected clarification, got %q", result.IntentType)
	}
	if result.Confidence != 0.3 {
		t.Errorf("Expected confidence 0.3, got %v", result.Confidence)
	}
}

func TestOpenAIInterpreter_EmptyContent(t *testing.T) {
	server := chatServer(t, "   ")
	defer server.Close()

	interp := NewOpenAIInterpreter(interpreterConfig(server.URL))
	result := interp.Interpret(context.Background(), "hello there", "")

	// Empty content is a backend-level failure: transcript is echoed back
	if result.CleanedIntent != "hello there" {
		t.Errorf("Expected transcript echoed, got %q", result.CleanedIntent)
	}
	if result.Confidence != 0.3 {
		t.Errorf("Expected confidence 0.3, got %v", result.Confidence)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt("book a table", "")
	if prompt != "Transcript:\n\"book a table\"\n\nPlatform: unknown\n\nRespond with JSON only." {
		t.Errorf("Unexpected user prompt: %q", prompt)
	}

	prompt = buildUserPrompt("book a table", "chatgpt")
	if prompt != "Transcript:\n\"book a table\"\n\nPlatform: chatgpt\n\nRespond with JSON only." {
		t.Errorf("Unexpected user prompt: %q", prompt)
	}
}
