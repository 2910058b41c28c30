package service

import (
	"fmt"

	"github.com/MKhiriev/go-membership/internal/adapter"
	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/internal/templates"
	"github.com/MKhiriev/go-membership/internal/validators"
	"github.com/MKhiriev/go-membership/models"
)

// Services groups every service used by the transport and worker layers.
type Services struct {
	TokenService        TokenService
	AuthService         AuthService
	RegistrationService RegistrationService
	EmailService        EmailService
	PasswordService     PasswordService
	UserService         UserService
	ProfileService      ProfileService
	CatalogService      CatalogService
	TaskService         TaskService
	AppInfoService      AppInfoService
}

// Dependencies are the collaborators NewServices wires together.
type Dependencies struct {
	Repositories *store.Repositories
	Adapters     *adapter.Adapters
	Templates    *templates.Renderer
	DB           Pinger
	Build        models.AppBuildInfo
}

func NewServices(deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	tokens, err := NewTokenService(deps.Repositories, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, deps.Build, deps.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	validator := validators.NewMembershipValidator()
	policy := newTaskPolicy(cfg.Workers)
	repos := deps.Repositories

	return &Services{
		TokenService:        tokens,
		AuthService:         NewAuthService(repos.UserRepository, tokens, validator, logger),
		RegistrationService: NewRegistrationService(repos, validator, policy, logger),
		EmailService:        NewEmailService(repos, tokens, validator, policy, logger),
		PasswordService:     NewPasswordService(repos, tokens, validator, policy, logger),
		UserService:         NewUserService(repos, logger),
		ProfileService:      NewProfileService(repos, logger),
		CatalogService:      NewCatalogService(repos, logger),
		TaskService:         NewTaskService(repos, tokens, deps.Adapters, deps.Templates, cfg.App, logger),
		AppInfoService:      appInfo,
	}, nil
}
