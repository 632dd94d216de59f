package services

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driven"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
	"github.com/knaw-huc/entity-annotator/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ErrExportLocked is returned when another export is writing the same file.
var ErrExportLocked = errors.New("export file is locked by another process")

// ExportService exports and persists the backend's annotations.
type ExportService struct {
	backend driven.Backend
	persist bool
}

// NewExportService creates a new export service. persist enables Save for
// stores that do not write to disk on their own.
func NewExportService(backend driven.Backend, persist bool) *ExportService {
	return &ExportService{backend: backend, persist: persist}
}

// Dump copies the backend's export document to w.
func (s *ExportService) Dump(ctx context.Context, w io.Writer) (int64, error) {
	if s.backend == nil {
		return 0, errNoBackend
	}

	rc, err := s.backend.Dump(ctx)
	if err != nil {
		return 0, fmt.Errorf("dump: %w", err)
	}
	defer rc.Close()

	n, err := io.Copy(w, rc)
	if err != nil {
		return n, fmt.Errorf("dump: %w", err)
	}
	return n, nil
}

// DumpToFile writes the export document to path via a temporary file in
// the same directory, so an interrupted export never truncates an
// existing file. Paths ending in .gz are gzip-compressed.
func (s *ExportService) DumpToFile(ctx context.Context, path string) (n int64, err error) {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return 0, ErrExportLocked
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".annotator-dump-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	var w io.Writer = tmp
	var zw *gzip.Writer
	if filepath.Ext(path) == ".gz" {
		zw, err = gzip.NewWriterLevel(tmp, gzip.BestCompression)
		if err != nil {
			return 0, err
		}
		w = zw
	}

	if n, err = s.Dump(ctx, w); err != nil {
		return n, err
	}
	if zw != nil {
		if err = zw.Close(); err != nil {
			return n, fmt.Errorf("compress: %w", err)
		}
	}
	if err = tmp.Chmod(dumpMode(path)); err != nil {
		return n, fmt.Errorf("chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return n, fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return n, fmt.Errorf("rename: %w", err)
	}

	logger.Info("exported %d bytes to %s", n, path)
	return n, nil
}

// dumpMode keeps the permissions of the file being replaced; new files
// get 0644.
func dumpMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

// CanSave reports whether the backend offers an explicit persist trigger.
func (s *ExportService) CanSave() bool {
	return s.persist
}

// Save asks the backend to persist to disk.
func (s *ExportService) Save(ctx context.Context) error {
	if !s.persist {
		return domain.ErrCapabilityDisabled
	}
	if s.backend == nil {
		return errNoBackend
	}
	if err := s.backend.Save(ctx); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
