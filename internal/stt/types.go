package stt

import "context"

// Transcriber converts a stored audio file to text.
//
// Implementations return an explicit error on backend failure so the
// pipeline can tell "backend failed" apart from "backend heard silence".
// An empty string with a nil error is a legitimate outcome: the audio
// contained no recognizable speech.
type Transcriber interface {
	// Transcribe sends the file at audioPath to the backend and returns
	// the transcript with surrounding whitespace trimmed.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
