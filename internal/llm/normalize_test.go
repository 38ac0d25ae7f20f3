package llm

import (
	"reflect"
	"testing"
)

func TestNormalize_NilObject(t *testing.T) {
	result := Normalize(nil)

	if result.CleanedIntent != "Unable to interpret request" {
		t.Errorf("Expected default cleaned_intent, got %q", result.CleanedIntent)
	}
	if result.FinalPrompt != "" {
		t.Errorf("Expected empty final_prompt, got %q", result.FinalPrompt)
	}
	if result.IntentType != IntentClarification {
		t.Errorf("Expected clarification, got %q", result.IntentType)
	}
	if result.Confidence != 0.3 {
		t.Errorf("Expected confidence 0.3 for missing object, got %v", result.Confidence)
	}
}

func TestNormalize_ValidObject(t *testing.T) {
	result := Normalize(map[string]interface{}{
		"cleaned_intent": "Write a cold email",
		"final_prompt":   "Write a professional cold email to an investor.",
		"intent_type":    "generation",
		"confidence":     0.92,
	})

	want := Interpretation{
		CleanedIntent: "Write a cold email",
		FinalPrompt:   "Write a professional cold email to an investor.",
		IntentType:    IntentGeneration,
		Confidence:    0.92,
	}
	if result != want {
		t.Errorf("Expected %+v, got %+v", want, result)
	}
}

func TestNormalize_IntentTypeCaseInsensitive(t *testing.T) {
	cases := map[string]string{
		"Generation":    IntentGeneration,
		"EXPLORATION":   IntentExploration,
		"Clarification": IntentClarification,
		"  generation ": IntentGeneration,
		"something":     IntentClarification,
		"":              IntentClarification,
	}

	for input, want := range cases {
		result := Normalize(map[string]interface{}{"intent_type": input})
		if result.IntentType != want {
			t.Errorf("intent_type %q: expected %q, got %q", input, want, result.IntentType)
		}
	}
}

func TestNormalize_IntentTypeWrongType(t *testing.T) {
	result := Normalize(map[string]interface{}{"intent_type": 42})
	if result.IntentType != IntentClarification {
		t.Errorf("Expected clarification for non-string intent_type, got %q", result.IntentType)
	}
}

func TestNormalize_ConfidenceHandling(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  float64
	}{
		{"in range", 0.75, 0.75},
		{"zero", 0.0, 0.0},
		{"one", 1.0, 1.0},
		{"rounded to two decimals", 0.876, 0.88},
		{"rounds half up", 0.875, 0.88},
		{"numeric string", "0.6", 0.6},
		{"above range", 1.5, 0.5},
		{"below range", -0.1, 0.5},
		{"non-numeric string", "very sure", 0.5},
		{"missing", nil, 0.5},
		{"wrong type", true, 0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parsed := map[string]interface{}{}
			if c.value != nil {
				parsed["confidence"] = c.value
			}
			result := Normalize(parsed)
			if result.Confidence != c.want {
				t.Errorf("confidence %v: expected %v, got %v", c.value, c.want, result.Confidence)
			}
		})
	}
}

func TestNormalize_StringFieldsTrimmedOrDefaulted(t *testing.T) {
	result := Normalize(map[string]interface{}{
		"cleaned_intent": "  summarize the doc  ",
		"final_prompt":   "   ",
	})

	if result.CleanedIntent != "summarize the doc" {
		t.Errorf("Expected trimmed cleaned_intent, got %q", result.CleanedIntent)
	}
	// Whitespace-only final_prompt is invalid; the repair rule copies the
	// cleaned intent in.
	if result.FinalPrompt != "summarize the doc" {
		t.Errorf("Expected final_prompt repaired from cleaned_intent, got %q", result.FinalPrompt)
	}
}

func TestNormalize_NoRepairWhenIntentIsDefault(t *testing.T) {
	result := Normalize(map[string]interface{}{"confidence": 0.9})

	// cleaned_intent fell back to the placeholder, so final_prompt must
	// stay empty rather than carry the placeholder forward.
	if result.FinalPrompt != "" {
		t.Errorf("Expected empty final_prompt, got %q", result.FinalPrompt)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []map[string]interface{}{
		{
			"cleaned_intent": "explain transformers",
			"final_prompt":   "Explain how transformers work.",
			"intent_type":    "exploration",
			"confidence":     0.94,
		},
		{
			"cleaned_intent": "partial",
		},
		{},
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(map[string]interface{}{
			"cleaned_intent": once.CleanedIntent,
			"final_prompt":   once.FinalPrompt,
			"intent_type":    once.IntentType,
			"confidence":     once.Confidence,
		})

		// Confidence is the one field whose default (0.5) differs from
		// the all-missing default, so compare the full structs only
		// after the first pass has pinned every field.
		if !reflect.DeepEqual(once.CleanedIntent, twice.CleanedIntent) ||
			once.IntentType != twice.IntentType ||
			once.Confidence != twice.Confidence {
			t.Errorf("Normalize not idempotent: first %+v, second %+v", once, twice)
		}
	}
}
