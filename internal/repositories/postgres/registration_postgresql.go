package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jjss-seva/registration-service/internal/cache"
	"github.com/jjss-seva/registration-service/internal/models"
	"github.com/jjss-seva/registration-service/internal/repositories"
)

type RegistrationPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.Manager
}

func NewRegistrationPostgreSQL(db *gorm.DB, cacheManager *cache.Manager) repositories.RegistrationRepository {
	return &RegistrationPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// Create inserts one registration and invalidates the listing caches.
// Collisions on the application-id unique index surface as
// ErrDuplicateApplicationID so the caller can regenerate.
func (r *RegistrationPostgreSQL) Create(ctx context.Context, registration *models.Registration) error {
	if err := r.db.WithContext(ctx).Create(registration).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicateApplicationID
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	// Stale entries expire on their own if invalidation fails.
	_ = r.cacheManager.Registration.Delete(ctx, "list")
	_ = r.cacheManager.Stats.Delete(ctx, "registrations")

	return nil
}

func (r *RegistrationPostgreSQL) GetByApplicationID(ctx context.Context, applicationID string) (*models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return &registration, nil
}

func (r *RegistrationPostgreSQL) ExistsByApplicationID(ctx context.Context, applicationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("application_id = ?", applicationID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check application id: %w", err)
	}

	return count > 0, nil
}

// List returns all registrations newest first, served from cache when
// fresh.
func (r *RegistrationPostgreSQL) List(ctx context.Context) ([]models.Registration, error) {
	var registrations []models.Registration

	err := r.cacheManager.Registration.CacheOrExecute(ctx, "list", &registrations, cache.ListTTL, func() (interface{}, error) {
		var rows []models.Registration
		err := r.db.WithContext(ctx).
			Order("created_at DESC").
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list registrations: %w", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return registrations, nil
}

func (r *RegistrationPostgreSQL) Stats(ctx context.Context) (*repositories.RegistrationStats, error) {
	var stats repositories.RegistrationStats

	err := r.cacheManager.Stats.CacheOrExecute(ctx, "registrations", &stats, cache.StatsTTL, func() (interface{}, error) {
		var fresh repositories.RegistrationStats
		db := r.db.WithContext(ctx).Model(&models.Registration{})

		if err := db.Count(&fresh.Total).Error; err != nil {
			return nil, fmt.Errorf("failed to count registrations: %w", err)
		}
		if err := r.db.WithContext(ctx).Model(&models.Registration{}).
			Where("has_vehicle = ?", true).
			Count(&fresh.WithVehicle).Error; err != nil {
			return nil, fmt.Errorf("failed to count vehicle owners: %w", err)
		}
		if err := r.db.WithContext(ctx).Model(&models.Registration{}).
			Where("present_state <> ''").
			Distinct("present_state").
			Count(&fresh.StatesCovered).Error; err != nil {
			return nil, fmt.Errorf("failed to count states: %w", err)
		}

		return &fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
