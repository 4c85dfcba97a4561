package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// AllowedExtensions lists the spreadsheet extensions accepted for upload.
var AllowedExtensions = []string{".xls", ".xlsx"}

// IsSpreadsheet reports whether name carries an accepted extension.
func IsSpreadsheet(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// StoredFile is the metadata record of one uploaded workbook.
type StoredFile struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	FileType     string    `json:"fileType"`
	DiskPath     string    `json:"-"`
	OwnerID      string    `json:"user"`
	UploadDate   time.Time `json:"uploadDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DataBatch holds the parsed rows of one sheet. OwnerID is copied from the
// owning StoredFile so data reads can be authorized without a file lookup.
type DataBatch struct {
	ID         string
	FileID     string
	OwnerID    string
	SheetName  string
	SheetIndex int
	Columns    []string
	Rows       []Row
	CreatedAt  time.Time
}

// BatchSummary is a DataBatch without its rows.
type BatchSummary struct {
	DataID      string `json:"dataId"`
	SheetName   string `json:"sheetName"`
	RecordCount int    `json:"recordCount"`
}

// Sheet is one parsed worksheet before it is persisted.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []Row
}
