package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jjss-seva/registration-service/internal/events"
	"github.com/jjss-seva/registration-service/internal/models"
	"github.com/jjss-seva/registration-service/internal/repositories"
	"github.com/jjss-seva/registration-service/internal/storage"
	"github.com/jjss-seva/registration-service/internal/validator"
)

// MaxPhotoSize is the upload cap for member photos.
const MaxPhotoSize = 2 << 20 // 2 MiB

// idAllocationAttempts bounds the generate-and-check loop for application
// identifiers.
const idAllocationAttempts = 5

type registrationService struct {
	repo      repositories.Repository
	store     storage.ObjectStore
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
	idPrefix  string
}

func NewRegistrationService(
	repo repositories.Repository,
	store storage.ObjectStore,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger *slog.Logger,
	idPrefix string,
) RegistrationService {
	return &registrationService{
		repo:      repo,
		store:     store,
		publisher: publisher,
		validator: v,
		logger:    logger,
		idPrefix:  idPrefix,
	}
}

// Submit runs the whole submission sequence: validate, allocate an
// application id, upload the photo, insert the row. Each step aborts the
// remaining ones on failure; nothing is retried automatically.
func (s *registrationService) Submit(ctx context.Context, req *RegistrationCreateRequest, photo *PhotoUpload) (*SubmitResponse, error) {
	if errs := s.validator.ValidateRegistrationCreate(req); errs.HasErrors() {
		return nil, errs
	}

	contentType, err := s.validatePhoto(photo)
	if err != nil {
		return nil, err
	}

	applicationID, err := s.allocateApplicationID(ctx)
	if err != nil {
		return nil, err
	}

	// Upload before insert: a failed upload must never leave a row
	// behind.
	objectKey := photoObjectKey(applicationID, photo.Filename)
	photoURL, err := s.store.Upload(ctx, objectKey, bytes.NewReader(photo.Content), contentType)
	if err != nil {
		s.logger.Error("photo upload failed", "application_id", applicationID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPhotoUploadFailed, err)
	}

	registration := s.buildRegistration(req, applicationID, photoURL)

	if err := s.repo.Registration().Create(ctx, registration); err != nil {
		// The photo is already in the bucket; delete it so a failed
		// insert leaves nothing behind.
		if cleanupErr := s.store.Delete(ctx, objectKey); cleanupErr != nil {
			s.logger.Warn("orphaned photo cleanup failed",
				"object_key", objectKey, "error", cleanupErr)
		}

		if errors.Is(err, repositories.ErrDuplicateApplicationID) {
			s.logger.Warn("application id collided at insert", "application_id", applicationID)
			return nil, fmt.Errorf("%w: identifier collision, please resubmit", ErrSubmissionFailed)
		}

		s.logger.Error("registration insert failed", "application_id", applicationID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	s.publishSubmitted(ctx, registration)

	s.logger.Info("registration submitted",
		"application_id", registration.ApplicationID,
		"state", registration.PresentState,
		"variant", registration.Variant,
	)

	return &SubmitResponse{
		ApplicationID: registration.ApplicationID,
		FullName:      registration.FullName,
		PhotoURL:      registration.PhotoURL,
		CreatedAt:     registration.CreatedAt,
	}, nil
}

func (s *registrationService) GetReceipt(ctx context.Context, applicationID string) (*ReceiptResponse, error) {
	registration, err := s.repo.Registration().GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	return &ReceiptResponse{
		ApplicationID: registration.ApplicationID,
		FullName:      registration.FullName,
		PhotoURL:      registration.PhotoURL,
		CreatedAt:     registration.CreatedAt,
	}, nil
}

// BuildLocationLink formats device coordinates into the map-link string
// stored alongside the address. The geolocation lookup itself happens on
// the client; failures there simply never reach this endpoint.
func (s *registrationService) BuildLocationLink(req *LocationLinkRequest) (*LocationLinkResponse, error) {
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return nil, ErrInvalidCoordinates
	}

	link := fmt.Sprintf("https://maps.google.com/?q=%s,%s",
		strconv.FormatFloat(req.Latitude, 'f', -1, 64),
		strconv.FormatFloat(req.Longitude, 'f', -1, 64),
	)

	return &LocationLinkResponse{Link: link}, nil
}

// validatePhoto enforces presence, the size cap and the JPEG/PNG type,
// sniffed from the content rather than trusted from the filename.
func (s *registrationService) validatePhoto(photo *PhotoUpload) (string, error) {
	if photo == nil || len(photo.Content) == 0 {
		return "", ErrPhotoRequired
	}
	if photo.Size > MaxPhotoSize || int64(len(photo.Content)) > MaxPhotoSize {
		return "", ErrPhotoTooLarge
	}

	mtype := mimetype.Detect(photo.Content)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") {
		return "", ErrPhotoUnsupported
	}

	return mtype.String(), nil
}

// allocateApplicationID generates identifiers until one is unused. The
// unique index on application_id still backstops the race between two
// concurrent submissions drawing the same number.
func (s *registrationService) allocateApplicationID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < idAllocationAttempts; attempt++ {
		candidate := s.generateApplicationID()

		exists, err := s.repo.Registration().ExistsByApplicationID(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check application id: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", ErrApplicationIDExhausted
}

// generateApplicationID concatenates the configured prefix, the current
// four-digit year and a random number in [100000, 999999].
func (s *registrationService) generateApplicationID() string {
	return fmt.Sprintf("%s%d%d", s.idPrefix, time.Now().Year(), 100000+rand.IntN(900000))
}

func (s *registrationService) buildRegistration(req *RegistrationCreateRequest, applicationID, photoURL string) *models.Registration {
	variant, reqs := validator.RequirementsFor(req.Variant)

	registration := &models.Registration{
		ApplicationID:   applicationID,
		FullName:        strings.TrimSpace(req.FullName),
		Mobile:          req.Mobile,
		Email:           strings.TrimSpace(req.Email),
		Aadhaar:         req.Aadhaar,
		PhotoURL:        photoURL,
		PresentAddress:  strings.TrimSpace(req.PresentAddress),
		PresentCity:     strings.TrimSpace(req.PresentCity),
		PresentDistrict: strings.TrimSpace(req.PresentDistrict),
		PresentState:    req.PresentState,
		PresentPincode:  req.PresentPincode,
		Education:       req.Education,
		Variant:         variant,
	}

	// Copy-once at submit time; single-address variants always mirror.
	sameAsPresent := req.SameAsPresent || !reqs.DualAddress
	registration.SameAsPresent = sameAsPresent
	if sameAsPresent {
		registration.PermanentAddress = registration.PresentAddress
		registration.PermanentCity = registration.PresentCity
		registration.PermanentDistrict = registration.PresentDistrict
		registration.PermanentState = registration.PresentState
		registration.PermanentPincode = registration.PresentPincode
	} else {
		registration.PermanentAddress = strings.TrimSpace(req.PermanentAddress)
		registration.PermanentCity = strings.TrimSpace(req.PermanentCity)
		registration.PermanentDistrict = strings.TrimSpace(req.PermanentDistrict)
		registration.PermanentState = req.PermanentState
		registration.PermanentPincode = req.PermanentPincode
	}

	// Tags checked while ownership was toggled off are void.
	registration.HasVehicle = req.HasVehicle
	if req.HasVehicle {
		registration.VehicleTypes = req.VehicleTypes
	}

	if link := strings.TrimSpace(req.LocationLink); link != "" {
		registration.LocationLink = &link
	}

	return registration
}

func (s *registrationService) publishSubmitted(ctx context.Context, registration *models.Registration) {
	event := &events.Event{
		Type:       events.RegistrationSubmitted,
		OccurredAt: time.Now(),
		Data: events.RegistrationSubmittedEvent{
			ApplicationID: registration.ApplicationID,
			FullName:      registration.FullName,
			State:         registration.PresentState,
			HasVehicle:    registration.HasVehicle,
			SubmittedAt:   registration.CreatedAt,
		},
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		// Downstream notifications are best-effort.
		s.logger.Warn("failed to publish submission event",
			"application_id", registration.ApplicationID, "error", err)
	}
}

func photoObjectKey(applicationID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		ext = ".jpg"
	}
	return "photos/" + applicationID + ext
}
