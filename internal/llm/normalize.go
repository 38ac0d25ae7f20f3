package llm

import (
	"math"
	"strconv"
	"strings"
)

// Defaults applied when the model output is missing or invalid.
//
// The two confidence tiers are deliberate: a completely unparseable
// response (0.3) signals less certainty than an otherwise-valid object
// whose confidence field happens to be out of range (0.5).
const (
	defaultCleanedIntent   = "Unable to interpret request"
	confidenceNoObject     = 0.3
	confidenceInvalidField = 0.5
)

// Normalize validates the extracted model output field by field and
// fills defaults so the result always conforms to the schema. A nil or
// missing object yields the full default result.
func Normalize(parsed map[string]interface{}) Interpretation {
	result := Interpretation{
		CleanedIntent: defaultCleanedIntent,
		FinalPrompt:   "",
		IntentType:    IntentClarification,
		Confidence:    confidenceNoObject,
	}

	if parsed == nil {
		return result
	}

	result.CleanedIntent = normalizeString(parsed["cleaned_intent"], defaultCleanedIntent)
	result.FinalPrompt = normalizeString(parsed["final_prompt"], "")
	result.IntentType = normalizeIntentType(parsed["intent_type"])
	result.Confidence = normalizeConfidence(parsed["confidence"])

	// A usable prompt beats an empty one: if the model produced a real
	// cleaned intent but no prompt, reuse the intent.
	if result.FinalPrompt == "" && result.CleanedIntent != defaultCleanedIntent {
		result.FinalPrompt = result.CleanedIntent
	}

	return result
}

func normalizeString(value interface{}, defaultValue string) string {
	if s, ok := value.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return defaultValue
}

func normalizeIntentType(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return IntentClarification
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case IntentExploration:
		return IntentExploration
	case IntentGeneration:
		return IntentGeneration
	case IntentClarification:
		return IntentClarification
	}
	return IntentClarification
}

func normalizeConfidence(value interface{}) float64 {
	var num float64
	switch v := value.(type) {
	case float64:
		num = v
	case int:
		num = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return confidenceInvalidField
		}
		num = parsed
	default:
		return confidenceInvalidField
	}

	if math.IsNaN(num) || num < 0 || num > 1 {
		return confidenceInvalidField
	}
	return math.Round(num*100) / 100
}
