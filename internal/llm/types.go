// Package llm turns a speech transcript into a structured intent using a
// chat-completion backend. Model output is treated as hostile input: it
// is parsed tolerantly and normalized so the rest of the service only
// ever sees a schema-valid Interpretation.
package llm

import "context"

// Intent types returned to the client
const (
	IntentExploration   = "exploration"   // User wants to learn, understand, or brainstorm
	IntentGeneration    = "generation"    // User wants content created
	IntentClarification = "clarification" // Request is incomplete or ambiguous
)

// Interpretation is the canonical result shape. Every code path that
// reaches the client produces exactly one of these.
type Interpretation struct {
	Transcript    string  `json:"transcript"`
	CleanedIntent string  `json:"cleaned_intent"`
	FinalPrompt   string  `json:"final_prompt"`
	IntentType    string  `json:"intent_type"`
	Confidence    float64 `json:"confidence"`
}

// Interpreter converts a transcript into a structured intent.
//
// Implementations never fail outward: any backend error is converted
// into a safe Interpretation that echoes the transcript.
type Interpreter interface {
	Interpret(ctx context.Context, transcript, platform string) Interpretation
}
