package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/models"
)

// ProfileAdminGroup grants access to other members' profiles.
const ProfileAdminGroup = "ProfileAdmin"

type profileService struct {
	userRepository    store.UserRepository
	profileRepository store.ProfileRepository

	logger *logger.Logger
}

func NewProfileService(repos *store.Repositories, logger *logger.Logger) ProfileService {
	return &profileService{
		userRepository:    repos.UserRepository,
		profileRepository: repos.ProfileRepository,
		logger:            logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	profile, err := s.profileRepository.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("profile lookup failed: %w", err)
	}
	return profile, nil
}

// UpdateProfile patches the caller's profile. Attributes missing from input
// keep their value.
func (s *profileService) UpdateProfile(ctx context.Context, userID int64, input models.Input) (models.Profile, error) {
	changes, err := decodeFields(models.ProfileFields, input)
	if err != nil {
		return models.Profile{}, err
	}

	return s.update(ctx, userID, changes)
}

// AdminGetProfile checks permissions before the email parameter, so a
// regular member gets ErrForbidden even for a malformed request.
func (s *profileService) AdminGetProfile(ctx context.Context, callerID int64, email string) (models.Profile, error) {
	email, err := s.adminTarget(ctx, callerID, email)
	if err != nil {
		return models.Profile{}, err
	}

	profile, err := s.profileRepository.GetProfileByEmail(ctx, email)
	if store.IsNotFound(err) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return profile, nil
}

func (s *profileService) AdminUpdateProfile(ctx context.Context, callerID int64, email string, input models.Input) (models.Profile, error) {
	email, err := s.adminTarget(ctx, callerID, email)
	if err != nil {
		return models.Profile{}, err
	}

	target, err := s.profileRepository.GetProfileByEmail(ctx, email)
	if store.IsNotFound(err) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	changes, err := decodeFields(models.ProfileFields, input)
	if err != nil {
		return models.Profile{}, err
	}

	logger.FromContext(ctx).Info().
		Int64("caller_id", callerID).
		Str("email", email).
		Int("changes", len(changes)).
		Msg("admin profile update")

	return s.update(ctx, target.UserID, changes)
}

func (s *profileService) update(ctx context.Context, userID int64, changes models.Changes) (models.Profile, error) {
	profile, err := s.profileRepository.UpdateProfile(ctx, userID, changes)
	switch {
	case errors.Is(err, store.ErrProfileNotFound):
		return models.Profile{}, ErrNotFound
	case errors.Is(err, store.ErrInvalidReference):
		return models.Profile{}, ErrInvalidReference
	case errors.Is(err, store.ErrInvalidValue):
		return models.Profile{}, ErrInvalidValue
	case err != nil:
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("profile update failed")
		return models.Profile{}, fmt.Errorf("profile update failed: %w", err)
	}

	return profile, nil
}

// adminTarget authorizes callerID and returns the trimmed target email.
func (s *profileService) adminTarget(ctx context.Context, callerID int64, email string) (string, error) {
	allowed, err := s.isProfileAdmin(ctx, callerID)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", ErrForbidden
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrMissingEmailParam
	}

	return email, nil
}

func (s *profileService) isProfileAdmin(ctx context.Context, callerID int64) (bool, error) {
	caller, err := s.userRepository.FindUserByID(ctx, callerID)
	if errors.Is(err, store.ErrUserNotFound) {
		return false, ErrNotAuthenticated
	}
	if err != nil {
		return false, fmt.Errorf("user search by id failed: %w", err)
	}
	if caller.IsStaff || caller.IsSuperuser {
		return true, nil
	}

	member, err := s.userRepository.IsInGroup(ctx, callerID, ProfileAdminGroup)
	if err != nil {
		return false, fmt.Errorf("group lookup failed: %w", err)
	}

	return member, nil
}
