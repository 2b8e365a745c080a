package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"csstweak/tweak/ledger"
)

// FileStore keeps every ledger in its own sidecar file named after document
// identity.
type FileStore struct {
	dir string
	log *zap.Logger
}

// NewFileStore creates store in the directory, directory is created on the
// first save.
func NewFileStore(dir string, log *zap.Logger) (*FileStore, error) {
	if len(dir) == 0 {
		return nil, errors.New("store directory is not specified")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{dir: dir, log: log.Named("store")}, nil
}

// Location returns sidecar path for the document.
func (s *FileStore) Location(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".yaml")
}

func (s *FileStore) Load(ctx context.Context, id uuid.UUID) (ledger.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Ledger{}, err
	}

	path := s.Location(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("No sidecar, starting with empty ledger", zap.String("path", path))
			return ledger.Ledger{}, nil
		}
		return ledger.Ledger{}, fmt.Errorf("unable to read sidecar %s: %w", path, err)
	}

	l, err := Decode(data)
	if err != nil {
		s.log.Warn("Sidecar is corrupted, ignoring", zap.String("path", path), zap.Error(err))
		return ledger.Ledger{}, fmt.Errorf("sidecar %s: %w", path, err)
	}
	s.log.Debug("Ledger loaded", zap.String("path", path), zap.Int("records", l.Len()))
	return l, nil
}

// Save writes ledger into temporary file next to the sidecar and renames it
// over, so sidecar is either old or new but never partial.
func (s *FileStore) Save(ctx context.Context, id uuid.UUID, l ledger.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(l)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("unable to create store directory: %w", err)
	}

	finalPath := s.Location(id)
	tmpFile, err := os.CreateTemp(s.dir, id.String()+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp sidecar: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing sidecar: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing sidecar: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp sidecar: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("renaming sidecar to %s: %w", finalPath, err)
	}

	success = true
	s.log.Debug("Ledger saved", zap.String("path", finalPath), zap.Int("records", l.Len()))
	return nil
}

// Preserve renames sidecar to <uuid>.yaml.corrupt-<stamp>.
func (s *FileStore) Preserve(ctx context.Context, id uuid.UUID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := s.Location(id)
	aside := fmt.Sprintf("%s.corrupt-%d", path, time.Now().UnixNano())
	if err := os.Rename(path, aside); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("unable to preserve sidecar %s: %w", path, err)
	}
	s.log.Info("Unreadable sidecar preserved", zap.String("path", aside))
	return aside, nil
}

func (s *FileStore) Close() error {
	return nil
}
