package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrFileNotFound        = errors.New("file not found")
	ErrDataNotFound        = errors.New("data not found")
	ErrNoFileUploaded      = errors.New("no file uploaded")
	ErrUnsupportedFileType = errors.New("unsupported file type: only .xls or .xlsx files are allowed")
	ErrFileTooLarge        = errors.New("file too large")

	// Shown to clients verbatim.
	ErrInvalidChartConfig   = errors.New("Chart configuration is required (xAxis, yAxis)")
	ErrUnsupportedChartType = errors.New("unsupported chart type")
	ErrNoData               = errors.New("Data is required for AI insights")
)

// ParseError reports a workbook that was accepted by type but could not be read.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "Error parsing Excel file: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError reports a filesystem or database failure inside a multi-step
// operation. Op names the operation shown to the client.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "Error " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
