package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jjss-seva/registration-service/internal/cache"
	"github.com/jjss-seva/registration-service/internal/events"
	"github.com/jjss-seva/registration-service/internal/repositories"
	"github.com/jjss-seva/registration-service/internal/storage"
	"github.com/jjss-seva/registration-service/internal/validator"
)

// ServiceManager owns the lifecycle of all services and hands them out
// to the transport layer.
type ServiceManager interface {
	Registration() RegistrationService
	Dashboard() DashboardService
	Auth() AuthService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Dependencies carries everything the services need. All fields except
// Cache are required; a nil Cache disables admin sessions.
type Dependencies struct {
	Repo      repositories.Repository
	Store     storage.ObjectStore
	Publisher events.EventPublisher
	Cache     *cache.Manager
	Validator *validator.Validator
	Logger    *slog.Logger

	ApplicationIDPrefix string
	AdminPassword       string
	SessionTTL          time.Duration
}

type serviceManager struct {
	deps Dependencies

	registrationService RegistrationService
	dashboardService    DashboardService
	authService         AuthService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{deps: deps}
}

// Initialize wires up all services and verifies their dependencies.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := sm.deps.validate(); err != nil {
		return fmt.Errorf("invalid service dependencies: %w", err)
	}

	sm.deps.Logger.Info("Initializing service manager")

	sm.registrationService = NewRegistrationService(
		sm.deps.Repo,
		sm.deps.Store,
		sm.deps.Publisher,
		sm.deps.Validator,
		sm.deps.Logger,
		sm.deps.ApplicationIDPrefix,
	)
	sm.deps.Logger.Info("Registration service initialized")

	sm.dashboardService = NewDashboardService(sm.deps.Repo, sm.deps.Logger)
	sm.deps.Logger.Info("Dashboard service initialized")

	sm.authService = NewAuthService(sm.deps.Cache, sm.deps.AdminPassword, sm.deps.SessionTTL, sm.deps.Logger)
	sm.deps.Logger.Info("Auth service initialized")

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")

	return nil
}

func (d *Dependencies) validate() error {
	switch {
	case d.Repo == nil:
		return fmt.Errorf("repository is required")
	case d.Store == nil:
		return fmt.Errorf("object store is required")
	case d.Publisher == nil:
		return fmt.Errorf("event publisher is required")
	case d.Validator == nil:
		return fmt.Errorf("validator is required")
	case d.Logger == nil:
		return fmt.Errorf("logger is required")
	case d.AdminPassword == "":
		return fmt.Errorf("admin password is required")
	case d.SessionTTL <= 0:
		return fmt.Errorf("session TTL must be positive")
	}
	return nil
}

func (sm *serviceManager) Registration() RegistrationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.registrationService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.dashboardService
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if err := sm.deps.Publisher.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close event publisher", "error", err)
	}

	if err := sm.deps.Repo.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")

	return nil
}
