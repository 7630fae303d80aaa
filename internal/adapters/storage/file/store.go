// Package file implements the HistoryStore port on the local
// filesystem: a single JSON snapshot that is overwritten on every
// save, and a JSONL audit log that is only ever appended to.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/modelfix-agent/internal/domain"
	"github.com/PabloGalante/modelfix-agent/internal/observability"
)

type Store struct {
	snapshotPath string
	logPath      string
	now          func() time.Time
}

// NewStore creates a file store. Parent directories are created on
// first write, not here.
func NewStore(snapshotPath, logPath string) *Store {
	return &Store{
		snapshotPath: snapshotPath,
		logPath:      logPath,
		now:          time.Now,
	}
}

// Load reads the snapshot. Absent and corrupt snapshots both yield an
// empty history; the difference is only visible as a warning.
func (s *Store) Load(ctx context.Context) domain.History {
	log := observability.LoggerFromContext(ctx).With("path", s.snapshotPath)

	raw, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("could not read history snapshot, starting empty", "error", err)
		}
		return domain.History{}
	}

	var history domain.History
	if err := json.Unmarshal(raw, &history); err != nil {
		log.Warn("history snapshot is corrupt, starting empty", "error", err)
		return domain.History{}
	}
	return history
}

// Save overwrites the snapshot. The write goes to a temp file in the
// same directory followed by a rename, so a concurrent reader sees
// either the old snapshot or the new one, never a partial write.
func (s *Store) Save(ctx context.Context, history domain.History) error {
	if history == nil {
		history = domain.History{}
	}

	data, err := json.MarshalIndent(history, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	dir := filepath.Dir(s.snapshotPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.snapshotPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.snapshotPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// AppendLog writes one audit entry as a single JSON line. Entries are
// self-contained; the file as a whole is a sequence, not one document.
func (s *Store) AppendLog(ctx context.Context, msg domain.Message) error {
	entry := domain.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: s.now().UTC(),
		Role:      msg.Role,
		Content:   msg.Content,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding log entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.logPath), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	f, err := os.OpenFile(s.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending to audit log: %w", err)
	}
	return nil
}

// Reset overwrites the snapshot with the seed history. Every element
// is validated first; on a malformed seed storage is left untouched.
func (s *Store) Reset(ctx context.Context, initial domain.History) error {
	if initial == nil {
		initial = domain.History{}
	}
	for _, msg := range initial {
		if err := msg.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrMalformedSeed, err)
		}
	}
	return s.Save(ctx, initial)
}
