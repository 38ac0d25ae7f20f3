// Package api exposes the interpret endpoint. The boundary contract is
// strict: every response is HTTP 200 with a {"result": ...} body, even
// when the request itself was bad — the extension only understands that
// one shape.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/intudo/intent-gateway/internal/config"
	"github.com/intudo/intent-gateway/internal/llm"
	"github.com/intudo/intent-gateway/internal/observability"
	"github.com/intudo/intent-gateway/internal/orchestrator"
)

// multipart overhead allowed on top of the audio size cap
const formOverhead = 1 << 20

// Runner runs the interpret pipeline for one request
type Runner interface {
	Run(ctx context.Context, req orchestrator.Request) llm.Interpretation
}

type interpretResponse struct {
	Result llm.Interpretation `json:"result"`
}

// InterpretHandler handles POST /v0/interpret multipart uploads
func InterpretHandler(cfg *config.Config, runner Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = observability.NewRequestID()
		}
		log := observability.WithRequestID(requestID)

		// Last-resort guard: even if result construction itself blows
		// up, the client still gets the fixed shape.
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Msg("interpret handler panicked")
				writeResult(w, hardFallback())
			}
		}()

		r.Body = http.MaxBytesReader(w, r.Body, cfg.AudioMaxSize+formOverhead)

		req := orchestrator.Request{RequestID: requestID}
		if err := r.ParseMultipartForm(cfg.AudioMaxSize + formOverhead); err == nil {
			req.UserID = r.FormValue("user_id")
			req.SessionID = r.FormValue("session_id")
			req.Platform = r.FormValue("platform")

			if file, header, err := r.FormFile("audio"); err == nil {
				data, readErr := io.ReadAll(file)
				file.Close()
				if readErr == nil {
					req.Audio = data
					req.ContentType = header.Header.Get("Content-Type")
				}
			}
		}
		// A missing or unreadable audio part flows into the pipeline as
		// an empty payload and comes back as the "No audio received"
		// fallback — same status, same shape.

		log.Info().
			Str("user", shortID(req.UserID)).
			Str("platform", req.Platform).
			Int("audio_bytes", len(req.Audio)).
			Msg("interpret request received")

		writeResult(w, runner.Run(r.Context(), req))
	}
}

func writeResult(w http.ResponseWriter, result llm.Interpretation) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(interpretResponse{Result: result}); err != nil {
		logger := observability.GetLogger()
		logger.Error().Err(err).Msg("failed to write interpret response")
	}
}

// hardFallback is the minimal result used when even the normal fallback
// path is unavailable.
func hardFallback() llm.Interpretation {
	return llm.Interpretation{
		Transcript:    "",
		CleanedIntent: "An error occurred while processing your request.",
		FinalPrompt:   "Please try again with a clearer recording.",
		IntentType:    llm.IntentClarification,
		Confidence:    0.1,
	}
}

// shortID truncates an identifier for logging; full IDs stay out of logs
func shortID(id string) string {
	if id == "" {
		return "anon"
	}
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
