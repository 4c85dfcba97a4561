package ports

import (
	"context"
	"io"
	"time"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// UploadInput is a single multipart file plus its uploader.
type UploadInput struct {
	Owner        *domain.User
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

// UploadResult echoes the stored file and the sheets found in it.
type UploadResult struct {
	FileID     string
	Name       string
	Size       int64
	UploadDate time.Time
	Sheets     []string
}

// FileDetail is a file with per-sheet row counts.
type FileDetail struct {
	File    *domain.StoredFile
	Batches []domain.BatchSummary
}

// SheetData is the full row set of one sheet.
type SheetData struct {
	FileName  string
	SheetName string
	Columns   []string
	Rows      []domain.Row
}

// FileService implements upload, retrieval and deletion of workbooks.
// Every call that names a resource authorizes the actor against its owner.
type FileService interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.StoredFile, error)
	Get(ctx context.Context, actor *domain.User, fileID string) (*FileDetail, error)
	PrimaryData(ctx context.Context, actor *domain.User, fileID string) (*SheetData, error)
	Data(ctx context.Context, actor *domain.User, dataID string) (*SheetData, error)
	Delete(ctx context.Context, actor *domain.User, fileID string) error
}
