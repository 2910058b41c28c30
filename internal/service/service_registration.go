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

type registrationService struct {
	transactor      store.Transactor
	userRepository  store.UserRepository
	emailRepository store.EmailAddressRepository
	taskRepository  store.TaskRepository

	validator validators.Validator
	policy    taskPolicy

	now func() time.Time

	logger *logger.Logger
}

func NewRegistrationService(repos *store.Repositories, validator validators.Validator, policy taskPolicy, logger *logger.Logger) RegistrationService {
	return &registrationService{
		transactor:      repos.Transactor,
		userRepository:  repos.UserRepository,
		emailRepository: repos.EmailAddressRepository,
		taskRepository:  repos.TaskRepository,
		validator:       validator,
		policy:          policy,
		now:             time.Now,
		logger:          logger,
	}
}

// Register validates reg and, in one transaction, inserts the identity with
// its profile, the unverified primary email address and the signup tasks.
//
// A duplicate email is reported as a field error on "email", both when it
// is detected up front and when a concurrent signup wins the race.
func (s *registrationService) Register(ctx context.Context, reg models.Registration) error {
	log := logger.FromContext(ctx)

	reg.Normalize()
	reg.Email = strings.TrimSpace(reg.Email)
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.Zipcode = strings.TrimSpace(reg.Zipcode)

	if err := s.validator.Validate(ctx, &reg); err != nil {
		return err
	}

	exists, err := s.userRepository.EmailExists(ctx, reg.Email)
	if err != nil {
		log.Err(err).Str("email", reg.Email).Msg("email lookup failed")
		return fmt.Errorf("email lookup failed: %w", err)
	}
	if exists {
		return validators.FieldError(validators.FieldEmail, validators.MsgEmailTaken)
	}

	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return err
	}

	now := s.now()
	user := models.User{
		Email:        reg.Email,
		Username:     reg.Email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		IsActive:     true,
		DateJoined:   now,
	}

	var zipcode *string
	if reg.Zipcode != "" {
		zipcode = &reg.Zipcode
	}

	err = s.transactor.InTx(ctx, func(ctx context.Context) error {
		created, err := s.userRepository.CreateUser(ctx, user, zipcode)
		if err != nil {
			return err
		}

		address, err := s.emailRepository.CreateEmailAddress(ctx, models.EmailAddress{
			UserID:  created.ID,
			Email:   created.Email,
			Primary: true,
		})
		if err != nil {
			return err
		}

		tasks, err := s.policy.tasksFor(models.EventSignedUp, models.TaskPayload{
			UserID:         created.ID,
			Email:          created.Email,
			FirstName:      created.FirstName,
			LastName:       created.LastName,
			EmailAddressID: address.ID,
		}, now)
		if err != nil {
			return err
		}

		return s.taskRepository.Enqueue(ctx, tasks...)
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return validators.FieldError(validators.FieldEmail, validators.MsgEmailTaken)
	}
	if err != nil {
		log.Err(err).Str("email", reg.Email).Msg("registration failed")
		return fmt.Errorf("registration failed: %w", err)
	}

	log.Info().Str("email", reg.Email).Msg("user signed up")
	return nil
}
