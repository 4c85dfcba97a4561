package ports

import (
	"context"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// FileRepository persists StoredFile metadata records.
type FileRepository interface {
	// Create inserts f and sets its ID.
	Create(ctx context.Context, f *domain.StoredFile) error
	FindByID(ctx context.Context, id string) (*domain.StoredFile, error)
	// ListByOwner returns every file of ownerID, newest upload first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.StoredFile, error)
	Delete(ctx context.Context, id string) error
}

// BatchRepository persists the parsed rows of each sheet.
type BatchRepository interface {
	// Create inserts b and sets its ID.
	Create(ctx context.Context, b *domain.DataBatch) error
	FindByID(ctx context.Context, id string) (*domain.DataBatch, error)
	// FindPrimary returns the batch of the file's first sheet.
	FindPrimary(ctx context.Context, fileID string) (*domain.DataBatch, error)
	// Summaries returns sheet name and row count per batch, in sheet order,
	// without loading the rows.
	Summaries(ctx context.Context, fileID string) ([]domain.BatchSummary, error)
	DeleteByFile(ctx context.Context, fileID string) (int64, error)
}
