package driving

import (
	"context"
	"io"
)

// ExportService exports and persists the backend's annotations.
type ExportService interface {
	// Dump copies the backend's full export document to w.
	Dump(ctx context.Context, w io.Writer) (int64, error)

	// DumpToFile writes the export document to path, replacing it atomically.
	// Paths ending in .gz are gzip-compressed.
	DumpToFile(ctx context.Context, path string) (int64, error)

	// CanSave reports whether the backend offers an explicit persist trigger.
	CanSave() bool

	// Save asks the backend to persist to disk. Returns
	// domain.ErrCapabilityDisabled when CanSave is false.
	Save(ctx context.Context) error
}
