package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"github.com/y-sudharshan/SheetWise/internal/api/metrics"
	"github.com/y-sudharshan/SheetWise/internal/api/middleware"
	"github.com/y-sudharshan/SheetWise/internal/core/domain"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
)

type FileHandler struct {
	files ports.FileService
}

func NewFileHandler(files ports.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// Upload stores a workbook and parses every sheet into row records.
//
// @Summary      Upload a workbook
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Excel workbook (.xls, .xlsx)"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /files/upload [post]
func (h *FileHandler) Upload(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(middleware.FormFileField)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrNoFileUploaded
	}
	src, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return err
	}
	defer src.Close()

	mimeType, err := contentType(fh, src)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return err
	}

	res, err := h.files.Upload(c.Request().Context(), ports.UploadInput{
		Owner:        user,
		OriginalName: fh.Filename,
		MimeType:     mimeType,
		Size:         fh.Size,
		Content:      src,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(uploadOutcome(err)).Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.UploadBytes.Observe(float64(res.Size))
	metrics.SheetsParsedTotal.Add(float64(len(res.Sheets)))

	return c.JSON(http.StatusCreated, uploadResponse{
		Message: "File uploaded successfully",
		File: uploadedFile{
			ID:         res.FileID,
			Name:       res.Name,
			Size:       res.Size,
			UploadDate: res.UploadDate,
		},
		Sheets: res.Sheets,
	})
}

// contentType trusts the client's part header unless it is missing or
// generic, in which case the content is sniffed. src is rewound afterwards.
func contentType(fh *multipart.FileHeader, src multipart.File) (string, error) {
	declared := fh.Header.Get(echo.HeaderContentType)
	if declared != "" && declared != echo.MIMEOctetStream {
		return declared, nil
	}
	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mt.String(), nil
}

func uploadOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoFileUploaded),
		errors.Is(err, domain.ErrUnsupportedFileType),
		errors.Is(err, domain.ErrFileTooLarge):
		return "rejected"
	}
	return "failed"
}

// List returns the caller's files, newest first.
//
// @Summary      List own files
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.StoredFile
// @Failure      401  {object}  errorResponse
// @Router       /files [get]
func (h *FileHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	files, err := h.files.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, files)
}

// Get returns a file with the row count of each sheet.
//
// @Summary      Get file
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "File ID"
// @Success      200  {object}  fileDetailResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /files/{id} [get]
func (h *FileHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	detail, err := h.files.Get(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fileDetailResponse{File: detail.File, Data: detail.Batches})
}

// FileData returns the rows of the file's first sheet.
//
// @Summary      Get primary sheet data
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "File ID"
// @Success      200  {object}  sheetDataResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /files/{id}/data [get]
func (h *FileHandler) FileData(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	data, err := h.files.PrimaryData(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSheetDataResponse(data))
}

// Data returns the rows of one sheet by data id.
//
// @Summary      Get sheet data
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Data ID"
// @Success      200  {object}  sheetDataResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /files/data/{id} [get]
func (h *FileHandler) Data(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	data, err := h.files.Data(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSheetDataResponse(data))
}

// Delete removes a file, its data and the stored workbook.
//
// @Summary      Delete file
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "File ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /files/{id} [delete]
func (h *FileHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.files.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	metrics.FilesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "File deleted successfully"})
}

func toSheetDataResponse(d *ports.SheetData) sheetDataResponse {
	return sheetDataResponse{
		FileName:  d.FileName,
		SheetName: d.SheetName,
		Columns:   d.Columns,
		Data:      d.Rows,
	}
}
