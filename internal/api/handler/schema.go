package handler

import (
	"encoding/json"
	"time"

	"github.com/y-sudharshan/SheetWise/internal/core/analytics"
	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth & users ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user"`
}

// updateProfileRequest leaves a field unchanged when it is empty.
type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type adminUpdateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	IsAdmin *bool   `json:"isAdmin"`
}

// --- Files ---

type uploadedFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"uploadDate"`
}

type uploadResponse struct {
	Message string       `json:"message"`
	File    uploadedFile `json:"file"`
	Sheets  []string     `json:"sheets"`
}

type fileDetailResponse struct {
	File *domain.StoredFile    `json:"file"`
	Data []domain.BatchSummary `json:"data"`
}

type sheetDataResponse struct {
	FileName  string       `json:"fileName"`
	SheetName string       `json:"sheetName"`
	Columns   []string     `json:"columns"`
	Data      []domain.Row `json:"data"`
}

// --- Charts ---

// generateChartRequest carries the rows inline in Data or by reference in
// DataID or FileID (the file's first sheet). DataID wins over FileID, and
// both win over Data.
type generateChartRequest struct {
	Config domain.ChartConfigPatch `json:"config"`
	Data   []domain.Row            `json:"data"`
	DataID string                  `json:"dataId"`
	FileID string                  `json:"fileId"`
}

type chartResponse struct {
	Success bool                `json:"success"`
	Chart   *domain.ChartResult `json:"chart"`
}

type downloadChartRequest struct {
	ChartData json.RawMessage `json:"chartData" swaggertype:"object"`
	Format    string          `json:"format"    validate:"omitempty,oneof=png jpg jpeg svg pdf"`
}

type downloadChartResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DownloadURL string `json:"downloadUrl"`
}

type insightsRequest struct {
	Data   []domain.Row       `json:"data"`
	Config domain.ChartConfig `json:"config"`
}

type insightsResponse struct {
	Success  bool                `json:"success"`
	Insights *analytics.Insights `json:"insights"`
}
