package ports

import (
	"context"
	"io"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// BlobStore keeps uploaded binaries on disk.
type BlobStore interface {
	// Save writes r under a name derived from ownerID and the current time
	// and returns the full path and the number of bytes written.
	Save(ownerID, ext string, r io.Reader) (path string, size int64, err error)
	// Stage moves path aside so it can be restored or purged later. A missing
	// path is reported with an error satisfying errors.Is(err, fs.ErrNotExist).
	Stage(path string) (staged string, err error)
	Restore(staged, path string) error
	Remove(path string) error
}

// WorkbookParser turns a stored workbook into one Sheet per worksheet.
type WorkbookParser interface {
	Parse(ctx context.Context, path string) ([]domain.Sheet, error)
}

// InsightCache stores generated narratives keyed by prompt hash.
type InsightCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, narrative string) error
}

// Narrator writes a short natural-language summary for a prompt.
type Narrator interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}
