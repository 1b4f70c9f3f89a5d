package repositories

import (
	"context"
	"errors"

	"github.com/jjss-seva/registration-service/internal/models"
)

// ErrDuplicateApplicationID is returned when an insert collides on the
// unique application-identifier index.
var ErrDuplicateApplicationID = errors.New("application id already exists")

// ErrRegistrationNotFound is returned by lookups for unknown identifiers.
var ErrRegistrationNotFound = errors.New("registration not found")

// RegistrationStats are the dashboard counters.
type RegistrationStats struct {
	Total         int64 `json:"total"`
	WithVehicle   int64 `json:"with_vehicle"`
	StatesCovered int64 `json:"states_covered"`
}

// RegistrationRepository persists and reads back registrations. Rows are
// create-only; filtering happens in memory over List per the dashboard
// contract, so the repository only orders.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	GetByApplicationID(ctx context.Context, applicationID string) (*models.Registration, error)
	ExistsByApplicationID(ctx context.Context, applicationID string) (bool, error)
	// List returns every registration, newest first.
	List(ctx context.Context) ([]models.Registration, error)
	Stats(ctx context.Context) (*RegistrationStats, error)
}

// Repository is the root repository accessor.
type Repository interface {
	Registration() RegistrationRepository
	Ping(ctx context.Context) error
	Close() error
}
