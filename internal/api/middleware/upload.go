package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/y-sudharshan/SheetWise/internal/api/metrics"
	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// FormFileField is the multipart field carrying the workbook.
const FormFileField = "file"

// multipartOverhead allows for boundaries and part headers around the file.
const multipartOverhead = 1 << 20

// SpreadsheetUpload rejects requests whose multipart file is missing, is not
// an .xls/.xlsx workbook or exceeds maxBytes, before the handler runs.
func SpreadsheetUpload(maxBytes int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if maxBytes > 0 {
				req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBytes+multipartOverhead)
			}

			if err := checkUpload(c, maxBytes); err != nil {
				metrics.UploadsTotal.WithLabelValues("rejected").Inc()
				return err
			}
			return next(c)
		}
	}
}

func checkUpload(c echo.Context, maxBytes int64) error {
	fh, err := c.FormFile(FormFileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.ErrFileTooLarge
		}
		return domain.ErrNoFileUploaded
	}

	if !domain.IsSpreadsheet(fh.Filename) {
		return domain.ErrUnsupportedFileType
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return domain.ErrFileTooLarge
	}
	return nil
}
