package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/internal/validators"
	"github.com/MKhiriev/go-membership/models"
)

type passwordService struct {
	userRepository store.UserRepository
	taskRepository store.TaskRepository

	tokens    TokenService
	validator validators.Validator
	policy    taskPolicy

	now func() time.Time

	logger *logger.Logger
}

func NewPasswordService(repos *store.Repositories, tokens TokenService, validator validators.Validator, policy taskPolicy, logger *logger.Logger) PasswordService {
	return &passwordService{
		userRepository: repos.UserRepository,
		taskRepository: repos.TaskRepository,
		tokens:         tokens,
		validator:      validator,
		policy:         policy,
		now:            time.Now,
		logger:         logger,
	}
}

// RequestReset enqueues a reset email for a registered, active account.
// An email that belongs to nobody is a field error and sends nothing.
func (s *passwordService) RequestReset(ctx context.Context, req models.EmailRequest) error {
	log := logger.FromContext(ctx)

	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(ctx, req); err != nil {
		return err
	}

	user, err := s.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) || (err == nil && !user.IsActive) {
		return validators.FieldError(validators.FieldEmail, validators.MsgEmailNotAssigned)
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	task, err := s.policy.task(models.TaskSendPasswordResetEmail, models.TaskPayload{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, s.now())
	if err != nil {
		return err
	}

	if err = s.taskRepository.Enqueue(ctx, task); err != nil {
		log.Err(err).Str("email", req.Email).Msg("enqueueing password reset email failed")
		return fmt.Errorf("enqueueing password reset email failed: %w", err)
	}

	return nil
}

// ValidateResetLink checks uid and token without changing anything.
func (s *passwordService) ValidateResetLink(ctx context.Context, uid, token string) error {
	_, err := s.resetUser(ctx, uid, token)
	return err
}

// ConfirmReset sets the new password if the reset token still matches the
// current password hash and last login of the user.
func (s *passwordService) ConfirmReset(ctx context.Context, req models.PasswordResetConfirm) error {
	req.Normalize()

	user, err := s.resetUser(ctx, req.UID, req.Token)
	if err != nil {
		return err
	}

	return s.setPassword(ctx, user, req.NewPassword1, req.NewPassword2)
}

func (s *passwordService) ChangePassword(ctx context.Context, userID int64, req models.PasswordChange) error {
	req.Normalize()

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrNotAuthenticated
	}
	if err != nil {
		return fmt.Errorf("user search by id failed: %w", err)
	}

	return s.setPassword(ctx, user, req.NewPassword1, req.NewPassword2)
}

func (s *passwordService) resetUser(ctx context.Context, uid, token string) (models.User, error) {
	id, err := utils.DecodeUID(strings.TrimSpace(uid))
	if err != nil {
		return models.User{}, ErrInvalidResetToken
	}

	user, err := s.userRepository.FindUserByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidResetToken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if err = s.tokens.CheckResetToken(user, strings.TrimSpace(token)); err != nil {
		return models.User{}, ErrInvalidResetToken
	}

	return user, nil
}

func (s *passwordService) setPassword(ctx context.Context, user models.User, password1, password2 string) error {
	log := logger.FromContext(ctx)

	set := validators.PasswordSet{Password1: password1, Password2: password2, User: user}
	if err := s.validator.Validate(ctx, set); err != nil {
		return err
	}

	hash, err := utils.HashPassword(password2)
	if err != nil {
		return err
	}

	if err = s.userRepository.SetPassword(ctx, user.ID, hash); err != nil {
		log.Err(err).Int64("id", user.ID).Msg("storing new password failed")
		return fmt.Errorf("storing new password failed: %w", err)
	}

	log.Info().Int64("id", user.ID).Msg("password changed")
	return nil
}
