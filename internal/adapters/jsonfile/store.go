package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ratewatch/internal/domain"

	"github.com/sirupsen/logrus"
)

// Store persists the rate history as a single JSON document, shaped as
// {code: {date: rate}}. Writes go through a temp file and a rename so a
// crash mid-write never leaves a half-written history behind.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(_ context.Context) (domain.History, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.History{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file %q: %w", s.path, err)
	}

	var h domain.History
	if err = json.Unmarshal(raw, &h); err != nil {
		// Unreadable state is a data-loss event, not a fatal one: the cycle
		// restarts from an empty history and re-fetches what it can.
		logrus.WithError(err).WithField("path", s.path).
			Error("History file is corrupt, continuing with an empty history")
		return domain.History{}, nil
	}
	if h == nil {
		h = domain.History{}
	}
	return h, nil
}

func (s *Store) Save(_ context.Context, h domain.History) error {
	payload, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history dir %q: %w", dir, err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write history file %q: %w", tmp, err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace history file %q: %w", s.path, err)
	}
	return nil
}
