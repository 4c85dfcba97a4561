package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
)

const (
	opUpload = "uploading file"
	opParse  = "parsing Excel file"
	opDelete = "deleting file"
)

type fileService struct {
	files    ports.FileRepository
	batches  ports.BatchRepository
	blobs    ports.BlobStore
	parser   ports.WorkbookParser
	maxBytes int64
	log      zerolog.Logger
}

// NewFileService returns a FileService implementation. maxBytes <= 0 disables
// the size check.
func NewFileService(
	files ports.FileRepository,
	batches ports.BatchRepository,
	blobs ports.BlobStore,
	parser ports.WorkbookParser,
	maxBytes int64,
	log zerolog.Logger,
) ports.FileService {
	return &fileService{
		files:    files,
		batches:  batches,
		blobs:    blobs,
		parser:   parser,
		maxBytes: maxBytes,
		log:      log,
	}
}

// Upload stores the workbook, records it and persists one DataBatch per
// sheet. Any failure after the artifact is written removes everything this
// call created.
func (s *fileService) Upload(ctx context.Context, in ports.UploadInput) (*ports.UploadResult, error) {
	if in.Owner == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Content == nil || in.OriginalName == "" {
		return nil, domain.ErrNoFileUploaded
	}
	if !domain.IsSpreadsheet(in.OriginalName) {
		return nil, domain.ErrUnsupportedFileType
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(in.OriginalName))
	path, size, err := s.blobs.Save(in.Owner.ID, ext, in.Content)
	if err != nil {
		return nil, &domain.StorageError{Op: opUpload, Err: err}
	}

	now := time.Now().UTC()
	file := &domain.StoredFile{
		FileName:     filepath.Base(path),
		OriginalName: in.OriginalName,
		FileSize:     size,
		FileType:     in.MimeType,
		DiskPath:     path,
		OwnerID:      in.Owner.ID,
		UploadDate:   now,
		CreatedAt:    now,
	}
	if err := s.files.Create(ctx, file); err != nil {
		s.removeArtifact(path)
		return nil, &domain.StorageError{Op: opUpload, Err: err}
	}

	log := s.log.With().Str("file_id", file.ID).Str("owner_id", file.OwnerID).Logger()

	sheets, err := s.parser.Parse(ctx, path)
	if err != nil {
		s.discardUpload(ctx, file, false)
		log.Warn().Err(err).Msg("workbook parse failed, upload discarded")
		return nil, &domain.ParseError{Err: err}
	}

	names := make([]string, 0, len(sheets))
	for i, sheet := range sheets {
		batch := &domain.DataBatch{
			FileID:     file.ID,
			OwnerID:    file.OwnerID,
			SheetName:  sheet.Name,
			SheetIndex: i,
			Columns:    sheet.Columns,
			Rows:       sheet.Rows,
			CreatedAt:  now,
		}
		if err := s.batches.Create(ctx, batch); err != nil {
			s.discardUpload(ctx, file, i > 0)
			log.Error().Err(err).Str("sheet", sheet.Name).Msg("batch insert failed, upload discarded")
			return nil, &domain.StorageError{Op: opParse, Err: err}
		}
		names = append(names, sheet.Name)
	}

	log.Info().Int("sheets", len(names)).Int64("size", size).Msg("file uploaded")
	return &ports.UploadResult{
		FileID:     file.ID,
		Name:       file.OriginalName,
		Size:       file.FileSize,
		UploadDate: file.UploadDate,
		Sheets:     names,
	}, nil
}

// discardUpload undoes a partial upload. Errors are logged because the caller
// is already failing with the original cause.
func (s *fileService) discardUpload(ctx context.Context, file *domain.StoredFile, withBatches bool) {
	ctx = context.WithoutCancel(ctx)
	if withBatches {
		if _, err := s.batches.DeleteByFile(ctx, file.ID); err != nil {
			s.log.Error().Err(err).Str("file_id", file.ID).Msg("discard batches")
		}
	}
	if err := s.files.Delete(ctx, file.ID); err != nil {
		s.log.Error().Err(err).Str("file_id", file.ID).Msg("discard file record")
	}
	s.removeArtifact(file.DiskPath)
}

func (s *fileService) removeArtifact(path string) {
	if err := s.blobs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Error().Err(err).Str("path", path).Msg("remove artifact")
	}
}

func (s *fileService) List(ctx context.Context, actor *domain.User) ([]*domain.StoredFile, error) {
	if actor == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.files.ListByOwner(ctx, actor.ID)
}

func (s *fileService) Get(ctx context.Context, actor *domain.User, fileID string) (*ports.FileDetail, error) {
	file, err := s.authorizedFile(ctx, actor, fileID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.batches.Summaries(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return &ports.FileDetail{File: file, Batches: summaries}, nil
}

func (s *fileService) PrimaryData(ctx context.Context, actor *domain.User, fileID string) (*ports.SheetData, error) {
	file, err := s.authorizedFile(ctx, actor, fileID)
	if err != nil {
		return nil, err
	}
	batch, err := s.batches.FindPrimary(ctx, file.ID)
	if err != nil {
		return nil, err
	}
	return sheetData(file, batch), nil
}

func (s *fileService) Data(ctx context.Context, actor *domain.User, dataID string) (*ports.SheetData, error) {
	batch, err := s.batches.FindByID(ctx, dataID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(batch.OwnerID) {
		return nil, domain.ErrForbidden
	}
	file, err := s.files.FindByID(ctx, batch.FileID)
	if errors.Is(err, domain.ErrFileNotFound) {
		return nil, domain.ErrDataNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get data: %w", err)
	}
	return sheetData(file, batch), nil
}

// Delete removes the artifact, the batches and the record as one saga.
func (s *fileService) Delete(ctx context.Context, actor *domain.User, fileID string) error {
	file, err := s.authorizedFile(ctx, actor, fileID)
	if err != nil {
		return err
	}
	log := s.log.With().Str("file_id", file.ID).Str("actor_id", actor.ID).Logger()

	var staged string
	steps := []sagaStep{
		{
			name: "stage artifact",
			run: func() error {
				p, err := s.blobs.Stage(file.DiskPath)
				if errors.Is(err, fs.ErrNotExist) {
					log.Warn().Str("path", file.DiskPath).Msg("artifact already missing")
					return nil
				}
				staged = p
				return err
			},
			undo: func() error {
				if staged == "" {
					return nil
				}
				return s.blobs.Restore(staged, file.DiskPath)
			},
		},
		{
			// Batches cannot be restored once deleted; a later failure leaves a
			// record without data that a repeated delete clears.
			name: "delete batches",
			run: func() error {
				n, err := s.batches.DeleteByFile(ctx, file.ID)
				if err == nil {
					log.Debug().Int64("batches", n).Msg("batches deleted")
				}
				return err
			},
		},
		{
			name: "delete record",
			run: func() error {
				err := s.files.Delete(ctx, file.ID)
				if errors.Is(err, domain.ErrFileNotFound) {
					return nil
				}
				return err
			},
		},
	}

	if err := runSaga(steps, log); err != nil {
		return &domain.StorageError{Op: opDelete, Err: err}
	}

	if staged != "" {
		if err := s.blobs.Remove(staged); err != nil {
			log.Error().Err(err).Str("path", staged).Msg("purge staged artifact")
		}
	}
	log.Info().Msg("file deleted")
	return nil
}

func (s *fileService) authorizedFile(ctx context.Context, actor *domain.User, fileID string) (*domain.StoredFile, error) {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(file.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return file, nil
}

func sheetData(file *domain.StoredFile, batch *domain.DataBatch) *ports.SheetData {
	return &ports.SheetData{
		FileName:  file.OriginalName,
		SheetName: batch.SheetName,
		Columns:   batch.Columns,
		Rows:      batch.Rows,
	}
}
