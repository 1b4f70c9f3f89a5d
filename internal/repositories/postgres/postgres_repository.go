package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jjss-seva/registration-service/internal/cache"
	"github.com/jjss-seva/registration-service/internal/models"
	"github.com/jjss-seva/registration-service/internal/repositories"
)

// PostgreSQLRepository implements the root Repository interface.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.Manager

	registration repositories.RegistrationRepository
}

// RepositoryConfig holds dependencies for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// RepositoryManager wires the repository tree and owns schema setup.
type RepositoryManager struct {
	config     RepositoryConfig
	repository repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{config: config}
}

// Initialize migrates the schema and constructs the repositories.
func (m *RepositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	if err := m.config.DB.AutoMigrate(&models.Registration{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	m.repository = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *RepositoryManager) GetRepository() repositories.Repository {
	return m.repository
}

// NewPostgreSQLRepository creates the repository tree with caching.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewManager(config.RedisClient)

	return &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
		registration: NewRegistrationPostgreSQL(config.DB, cacheManager),
	}
}

func (r *PostgreSQLRepository) Registration() repositories.RegistrationRepository {
	return r.registration
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database handle: %w", err)
	}
	return sqlDB.Close()
}
