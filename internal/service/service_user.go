package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/internal/validators"
	"github.com/MKhiriev/go-membership/models"
)

const maxNameLength = 150

type userService struct {
	userRepository    store.UserRepository
	profileRepository store.ProfileRepository

	logger *logger.Logger
}

func NewUserService(repos *store.Repositories, logger *logger.Logger) UserService {
	return &userService{
		userRepository:    repos.UserRepository,
		profileRepository: repos.ProfileRepository,
		logger:            logger,
	}
}

// GetUser returns the identity of userID with its profile nested. A user
// deleted after the token was issued is reported as ErrNotAuthenticated.
func (s *userService) GetUser(ctx context.Context, userID int64) (models.UserDetails, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.UserDetails{}, ErrNotAuthenticated
	}
	if err != nil {
		return models.UserDetails{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return s.details(ctx, user)
}

// UpdateUser changes first and last name. An empty update returns the
// current representation.
func (s *userService) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.UserDetails, error) {
	if update.IsEmpty() {
		return s.GetUser(ctx, userID)
	}

	verr := validators.NewValidationError()
	if update.FirstName != nil {
		*update.FirstName = strings.TrimSpace(*update.FirstName)
		checkNameLength(verr, validators.FieldFirstName, *update.FirstName)
	}
	if update.LastName != nil {
		*update.LastName = strings.TrimSpace(*update.LastName)
		checkNameLength(verr, validators.FieldLastName, *update.LastName)
	}
	if err := verr.Err(); err != nil {
		return models.UserDetails{}, err
	}

	user, err := s.userRepository.UpdateUser(ctx, userID, update)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.UserDetails{}, ErrNotAuthenticated
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", userID).Msg("user update failed")
		return models.UserDetails{}, fmt.Errorf("user update failed: %w", err)
	}

	return s.details(ctx, user)
}

func (s *userService) details(ctx context.Context, user models.User) (models.UserDetails, error) {
	profile, err := s.profileRepository.GetProfile(ctx, user.ID)
	if errors.Is(err, store.ErrProfileNotFound) {
		return models.NewUserDetails(user, nil), nil
	}
	if err != nil {
		return models.UserDetails{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return models.NewUserDetails(user, &profile), nil
}

func checkNameLength(verr *validators.ValidationError, field, value string) {
	if utf8.RuneCountInString(value) > maxNameLength {
		verr.AddField(field, fmt.Sprintf(validators.MsgTooLong, maxNameLength))
	}
}
