// Package orchestrator sequences one interpret request end to end:
// admission check, temp storage, transcription, interpretation. Its
// contract is failure containment — whatever goes wrong downstream, the
// caller receives exactly one schema-valid result.
package orchestrator

import (
	"context"
	"time"

	"github.com/intudo/intent-gateway/internal/audio"
	"github.com/intudo/intent-gateway/internal/config"
	"github.com/intudo/intent-gateway/internal/llm"
	"github.com/intudo/intent-gateway/internal/observability"
	"github.com/intudo/intent-gateway/internal/storage"
	"github.com/intudo/intent-gateway/internal/stt"
)

// Fallback reasons surfaced in the cleaned_intent of a failed request
const (
	ReasonNoAudio          = "No audio received"
	ReasonStorageError     = "Failed to save audio file"
	ReasonTranscription    = "Speech transcription failed"
	ReasonNoSpeechDetected = "No speech detected"
)

// Request carries one uploaded recording and its context fields
type Request struct {
	Audio       []byte
	ContentType string
	UserID      string
	SessionID   string
	Platform    string
	RequestID   string
}

// Orchestrator owns the lifecycle of a request's audio payload and temp
// file. It holds no per-request state itself; everything mutable lives
// on the stack of Run.
type Orchestrator struct {
	cfg         *config.Config
	store       *storage.TempStore
	transcriber stt.Transcriber
	interpreter llm.Interpreter
}

// New creates an orchestrator wired to its collaborators
func New(cfg *config.Config, store *storage.TempStore, transcriber stt.Transcriber, interpreter llm.Interpreter) *Orchestrator {
	return &Orchestrator{
		cfg:         cfg,
		store:       store,
		transcriber: transcriber,
		interpreter: interpreter,
	}
}

// Run executes the pipeline for one request. It always returns a
// complete Interpretation; failures are encoded in the payload.
func (o *Orchestrator) Run(ctx context.Context, req Request) llm.Interpretation {
	start := time.Now()
	log := observability.WithRequestID(req.RequestID)

	if len(req.Audio) == 0 {
		log.Warn().Msg("no audio in request")
		observability.RecordInterpretRequest("no_audio", start)
		return Fallback(ReasonNoAudio)
	}

	verdict := audio.CheckSize(int64(len(req.Audio)), audio.Bounds{
		MinSize: o.cfg.AudioMinSize,
		MaxSize: o.cfg.AudioMaxSize,
	})
	if !verdict.Valid {
		log.Warn().Int("size", len(req.Audio)).Str("reason", verdict.Message).Msg("audio rejected at admission")
		observability.RecordInterpretRequest("rejected", start)
		return Fallback(verdict.Message)
	}
	observability.RecordAudioBytes(int64(len(req.Audio)))

	path, err := o.store.Save(req.Audio, audio.ExtFromContentType(req.ContentType))
	if err != nil {
		log.Error().Err(err).Msg("temp storage write failed")
		observability.RecordInterpretRequest("storage_error", start)
		return Fallback(ReasonStorageError)
	}
	// Released exactly once on every path from here on. Remove never
	// propagates, so the deferred call cannot mask the outcome.
	defer o.store.Remove(path)

	transcript, err := o.transcribe(ctx, path)
	if err != nil {
		log.Warn().Err(err).Msg("transcription failed")
		observability.RecordInterpretRequest("stt_error", start)
		return Fallback(ReasonTranscription)
	}
	if transcript == "" {
		log.Info().Msg("no speech detected in audio")
		observability.RecordInterpretRequest("no_speech", start)
		return Fallback(ReasonNoSpeechDetected)
	}

	// Interpretation never fails outward (the adapter returns a safe
	// result on backend errors), so this is the last decision point.
	result := o.interpret(ctx, transcript, req.Platform)
	result.Transcript = transcript

	log.Info().
		Str("intent_type", result.IntentType).
		Float64("confidence", result.Confidence).
		Int("transcript_len", len(transcript)).
		Msg("interpret request completed")
	observability.RecordInterpretRequest("success", start)
	return result
}

func (o *Orchestrator) transcribe(ctx context.Context, path string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(o.cfg.RequestTimeout)*time.Second)
	defer cancel()
	return o.transcriber.Transcribe(callCtx, path)
}

func (o *Orchestrator) interpret(ctx context.Context, transcript, platform string) llm.Interpretation {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(o.cfg.RequestTimeout)*time.Second)
	defer cancel()
	return o.interpreter.Interpret(callCtx, transcript, platform)
}

// Fallback builds the complete result substituted whenever the pipeline
// cannot produce a real one. The reason lands in cleaned_intent so the
// client has something to show the user.
func Fallback(reason string) llm.Interpretation {
	return llm.Interpretation{
		Transcript:    "",
		CleanedIntent: "Unable to process audio: " + reason,
		FinalPrompt:   "Please rephrase your request clearly.",
		IntentType:    llm.IntentClarification,
		Confidence:    0.2,
	}
}
