// Package storage manages the scratch directory for transient audio files.
// Every uploaded recording lives on disk only for the duration of one
// request; a background sweeper catches anything a crashed request left
// behind.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/intudo/intent-gateway/internal/observability"
)

// filePrefix marks files owned by this service so the sweeper never
// touches anything else that may share the directory.
const filePrefix = "intudo-"

// TempStore writes uploaded audio buffers to uniquely named files in a
// scratch directory and guarantees their removal.
type TempStore struct {
	dir string
}

// NewTempStore creates a store rooted at dir. Call EnsureDir before use.
func NewTempStore(dir string) *TempStore {
	return &TempStore{dir: dir}
}

// Dir returns the scratch directory path
func (s *TempStore) Dir() string {
	return s.dir
}

// EnsureDir idempotently creates the scratch directory. The service
// cannot run without it, so the caller should treat an error as fatal.
func (s *TempStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create temp directory %s: %w", s.dir, err)
	}
	return nil
}

// Save writes audio bytes to a collision-resistant uniquely named file
// and returns its path. The ext argument should include the leading dot.
func (s *TempStore) Save(data []byte, ext string) (string, error) {
	if ext == "" {
		ext = ".webm"
	}
	name := filePrefix + uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to save audio file: %w", err)
	}

	observability.IncTempFiles()
	return path, nil
}

// Remove deletes a temp file. It never returns an error: cleanup runs on
// every exit path of a request and must not mask the pipeline outcome.
// Failures are logged and left for the sweeper.
func (s *TempStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		logger := observability.GetLogger()
		logger.Warn().
			Str("path", path).
			Err(err).
			Msg("failed to remove temp audio file")
		return
	}
	observability.DecTempFiles()
}

// SweepOlderThan removes service-owned files whose modification time is
// older than age. Returns the number of files removed.
func (s *TempStore) SweepOlderThan(age time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read temp directory: %w", err)
	}

	cutoff := time.Now().Add(-age)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || len(entry.Name()) < len(filePrefix) || entry.Name()[:len(filePrefix)] != filePrefix {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		observability.RecordTempFilesSwept(removed)
		logger := observability.GetLogger()
		logger.Info().
			Int("removed", removed).
			Msg("swept stale temp audio files")
	}
	return removed, nil
}

// StartSweeper runs SweepOlderThan every interval until ctx is cancelled.
func (s *TempStore) StartSweeper(ctx context.Context, interval, age time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.SweepOlderThan(age); err != nil {
					logger := observability.GetLogger()
					logger.Warn().Err(err).Msg("temp sweep failed")
				}
			}
		}
	}()
}
