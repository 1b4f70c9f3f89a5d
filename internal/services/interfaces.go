package services

import (
	"context"
	"errors"
	"time"

	"github.com/jjss-seva/registration-service/internal/models"
	"github.com/jjss-seva/registration-service/internal/repositories"
	"github.com/jjss-seva/registration-service/internal/validator"
)

// ===== SERVICE ERRORS =====

var (
	ErrRegistrationNotFound = errors.New("registration not found")

	ErrPhotoRequired    = errors.New("photo is required")
	ErrPhotoTooLarge    = errors.New("photo exceeds the 2 MiB limit")
	ErrPhotoUnsupported = errors.New("photo must be a JPEG or PNG image")

	// ErrPhotoUploadFailed aborts a submission before any row is written.
	ErrPhotoUploadFailed = errors.New("photo upload failed")
	// ErrSubmissionFailed covers an insert failure after a successful
	// upload; the uploaded photo is deleted best-effort.
	ErrSubmissionFailed = errors.New("registration could not be saved")
	// ErrApplicationIDExhausted is returned when no free identifier was
	// found within the retry budget.
	ErrApplicationIDExhausted = errors.New("could not allocate a unique application id")

	ErrInvalidCredentials = errors.New("invalid admin password")
	ErrUnauthorized       = errors.New("session is missing or expired")

	ErrInvalidCoordinates = errors.New("coordinates out of range")
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RegistrationCreateRequest = validator.RegistrationCreateRequest
type LocationLinkRequest = validator.LocationLinkRequest
type AdminLoginRequest = validator.AdminLoginRequest

// PhotoUpload carries the captured photo bytes into the submission flow.
type PhotoUpload struct {
	Filename string
	Size     int64
	Content  []byte
}

type SubmitResponse struct {
	ApplicationID string    `json:"application_id"`
	FullName      string    `json:"full_name"`
	PhotoURL      string    `json:"photo_url"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReceiptResponse struct {
	ApplicationID string    `json:"application_id"`
	FullName      string    `json:"full_name"`
	PhotoURL      string    `json:"photo_url"`
	CreatedAt     time.Time `json:"created_at"`
}

type LocationLinkResponse struct {
	Link string `json:"link"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ListFilters are the four independent dashboard filter criteria; zero
// values mean "no filter".
type ListFilters struct {
	Search   string `form:"search"`
	State    string `form:"state"`
	District string `form:"district"`
	// Vehicle is "yes", "no" or empty for any.
	Vehicle string `form:"vehicle"`
}

type ListResponse struct {
	Registrations []models.Registration `json:"registrations"`
	Total         int                   `json:"total"`
	Filtered      int                   `json:"filtered"`
}

type StatsResponse struct {
	*repositories.RegistrationStats
}

// ExportFile is a ready-to-download export of the filtered listing.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ===== SERVICE INTERFACES =====

type RegistrationService interface {
	Submit(ctx context.Context, req *RegistrationCreateRequest, photo *PhotoUpload) (*SubmitResponse, error)
	GetReceipt(ctx context.Context, applicationID string) (*ReceiptResponse, error)
	BuildLocationLink(req *LocationLinkRequest) (*LocationLinkResponse, error)
}

type DashboardService interface {
	List(ctx context.Context, filters *ListFilters) (*ListResponse, error)
	Stats(ctx context.Context) (*StatsResponse, error)
	ExportCSV(ctx context.Context, filters *ListFilters) (*ExportFile, error)
	ExportXLSX(ctx context.Context, filters *ListFilters) (*ExportFile, error)
}

type AuthService interface {
	Login(ctx context.Context, password string) (*SessionResponse, error)
	Logout(ctx context.Context, token string) error
	Validate(ctx context.Context, token string) error
}
