package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minikanban/backend/board"
	"github.com/minikanban/backend/models"
)

// Writes slower than this get logged; useful for spotting struggling disks.
const slowIOThreshold = 500 * time.Millisecond

// Store owns the single on-disk board document. Saves serialize behind a
// process-wide mutex and go through a temporary sibling file plus atomic
// rename, so a crash never leaves a partially written board. The
// load-then-mutate window between Load and Save is intentionally unlocked:
// concurrent writers resolve last-write-wins, which is adequate for the
// single-user deployments this tracker targets.
type Store struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// New opens a store at path, creating the parent directory and seeding the
// default board on first run.
func New(path string) (*Store, error) {
	s := &Store{
		path:   path,
		logger: log.With().Str("component", "store").Logger(),
	}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the board document.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) ensureFile() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	_, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info().Str("path", s.path).Msg("creating new blank kanban board")
		return s.Save(models.DefaultBoard())
	}
	return err
}

// Load reads and normalizes the persisted board. Legacy or hand-edited
// documents are repaired by normalization; the repaired shape reaches disk
// on the next Save. Only an unparseable file is an error.
func (s *Store) Load() (models.Board, error) {
	start := time.Now()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.Board{}, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Board{}, err
	}
	b := board.Normalize(raw)

	if elapsed := time.Since(start); elapsed > slowIOThreshold {
		s.logger.Warn().Dur("elapsed", elapsed).Msg("slow board load")
	}
	return b, nil
}

// Save atomically replaces the board document. The board is written to a
// temporary sibling file first and renamed into place; when the rename
// fails with a recoverable condition (cross-device link, transient
// busy/permission) a copy fallback is used instead. The temporary file
// never survives a successful save.
func (s *Store) Save(b models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		if !recoverableRename(err) {
			os.Remove(tmp)
			return err
		}
		if copyErr := copyFile(tmp, s.path); copyErr != nil {
			os.Remove(tmp)
			return copyErr
		}
		os.Remove(tmp)
	}

	if elapsed := time.Since(start); elapsed > slowIOThreshold {
		s.logger.Warn().Dur("elapsed", elapsed).Msg("slow board save")
	}
	return nil
}

func recoverableRename(err error) bool {
	return errors.Is(err, syscall.EXDEV) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.EACCES) ||
		errors.Is(err, syscall.EPERM)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
