// Package audio holds pre-flight checks applied to an uploaded recording
// before any backend call is spent on it.
package audio

import (
	"fmt"
	"strings"
)

// Verdict is the result of an admission check
type Verdict struct {
	Valid   bool
	Message string
}

// Bounds holds the admissible byte range for an uploaded recording
type Bounds struct {
	MinSize int64
	MaxSize int64
}

// CheckSize validates an audio byte length against the configured bounds.
// It is pure: the same size always yields the same verdict and no error
// is ever raised.
func CheckSize(size int64, bounds Bounds) Verdict {
	if size < 0 {
		return Verdict{Valid: false, Message: "invalid size"}
	}

	if size < bounds.MinSize {
		return Verdict{
			Valid:   false,
			Message: fmt.Sprintf("Audio too short (%d bytes, minimum %d)", size, bounds.MinSize),
		}
	}

	if size > bounds.MaxSize {
		return Verdict{
			Valid:   false,
			Message: fmt.Sprintf("Audio too large (%d bytes, maximum %d)", size, bounds.MaxSize),
		}
	}

	return Verdict{Valid: true}
}

// ExtFromContentType maps an upload MIME type to the file extension the
// temp file should carry. Whisper keys its decoder off the extension, so
// an unknown type falls back to .webm (what the browser recorder sends).
func ExtFromContentType(ct string) string {
	switch {
	case strings.Contains(ct, "wav"):
		return ".wav"
	case strings.Contains(ct, "ogg"):
		return ".ogg"
	case strings.Contains(ct, "mp3"), strings.Contains(ct, "mpeg"):
		return ".mp3"
	case strings.Contains(ct, "flac"):
		return ".flac"
	case strings.Contains(ct, "m4a"):
		return ".m4a"
	case strings.Contains(ct, "mp4"):
		return ".mp4"
	default:
		return ".webm"
	}
}
