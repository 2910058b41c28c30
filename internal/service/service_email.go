package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/internal/validators"
	"github.com/MKhiriev/go-membership/models"
)

type emailService struct {
	transactor      store.Transactor
	userRepository  store.UserRepository
	emailRepository store.EmailAddressRepository
	taskRepository  store.TaskRepository

	tokens    TokenService
	validator validators.Validator
	policy    taskPolicy

	now func() time.Time

	logger *logger.Logger
}

func NewEmailService(repos *store.Repositories, tokens TokenService, validator validators.Validator, policy taskPolicy, logger *logger.Logger) EmailService {
	return &emailService{
		transactor:      repos.Transactor,
		userRepository:  repos.UserRepository,
		emailRepository: repos.EmailAddressRepository,
		taskRepository:  repos.TaskRepository,
		tokens:          tokens,
		validator:       validator,
		policy:          policy,
		now:             time.Now,
		logger:          logger,
	}
}

// ConfirmEmail verifies the address referenced by key and enqueues the
// email confirmed tasks in the same transaction.
//
// Garbled, tampered, expired, unknown and already used keys all return
// ErrNotFound.
func (s *emailService) ConfirmEmail(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	id, email, err := s.tokens.ParseConfirmationKey(strings.TrimSpace(key))
	if err != nil {
		return ErrNotFound
	}

	address, err := s.emailRepository.GetEmailAddress(ctx, id)
	if errors.Is(err, store.ErrEmailAddressNotFound) {
		return ErrNotFound
	}
	if err != nil {
		log.Err(err).Int64("email_address_id", id).Msg("email address lookup failed")
		return fmt.Errorf("email address lookup failed: %w", err)
	}
	if address.Verified || !strings.EqualFold(address.Email, email) {
		return ErrNotFound
	}

	err = s.transactor.InTx(ctx, func(ctx context.Context) error {
		verified, err := s.emailRepository.MarkVerified(ctx, address.ID)
		if err != nil {
			return err
		}
		if !verified {
			return ErrNotFound
		}

		user, err := s.userRepository.FindUserByID(ctx, address.UserID)
		if err != nil {
			return err
		}

		tasks, err := s.policy.tasksFor(models.EventEmailConfirmed, models.TaskPayload{
			UserID:         user.ID,
			Email:          address.Email,
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			EmailAddressID: address.ID,
		}, s.now())
		if err != nil {
			return err
		}

		return s.taskRepository.Enqueue(ctx, tasks...)
	})
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		log.Err(err).Str("email", address.Email).Msg("email confirmation failed")
		return fmt.Errorf("email confirmation failed: %w", err)
	}

	log.Info().Str("email", address.Email).Msg("email confirmed")
	return nil
}

// ResendConfirmation enqueues a new confirmation email for an unverified
// address. Unknown and verified addresses are silently ignored.
func (s *emailService) ResendConfirmation(ctx context.Context, req models.EmailRequest) error {
	log := logger.FromContext(ctx)

	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(ctx, req); err != nil {
		return err
	}

	address, err := s.emailRepository.FindEmailAddress(ctx, req.Email)
	if errors.Is(err, store.ErrEmailAddressNotFound) {
		return nil
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("email address lookup failed")
		return fmt.Errorf("email address lookup failed: %w", err)
	}
	if address.Verified {
		return nil
	}

	payload := models.TaskPayload{UserID: address.UserID, Email: address.Email, EmailAddressID: address.ID}
	if user, err := s.userRepository.FindUserByID(ctx, address.UserID); err == nil {
		payload.FirstName, payload.LastName = user.FirstName, user.LastName
	}

	task, err := s.policy.task(models.TaskSendConfirmationEmail, payload, s.now())
	if err != nil {
		return err
	}

	if err = s.taskRepository.Enqueue(ctx, task); err != nil {
		log.Err(err).Str("email", req.Email).Msg("enqueueing confirmation email failed")
		return fmt.Errorf("enqueueing confirmation email failed: %w", err)
	}

	return nil
}
