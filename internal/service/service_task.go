package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-membership/internal/adapter"
	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/internal/templates"
	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/models"
)

// Email subjects.
const (
	subjectConfirmation  = "Please Confirm Your E-mail Address"
	subjectPasswordReset = "Password Reset E-mail"
	subjectWelcome       = "Welcome to Operation Code!"
)

// taskPolicy decides which background tasks a lifecycle event triggers.
type taskPolicy struct {
	slackInviteOn string
	welcomeEmail  bool
	delay         time.Duration
}

func newTaskPolicy(cfg config.Workers) taskPolicy {
	return taskPolicy{
		slackInviteOn: cfg.SlackInviteOn,
		welcomeEmail:  cfg.WelcomeEmail,
		delay:         cfg.TaskDelay,
	}
}

// kindsFor lists the task kinds for event in enqueue order.
func (p taskPolicy) kindsFor(event models.LifecycleEvent) []models.TaskKind {
	var kinds []models.TaskKind

	switch event {
	case models.EventSignedUp:
		kinds = append(kinds, models.TaskSendConfirmationEmail)
		if p.welcomeEmail {
			kinds = append(kinds, models.TaskSendWelcomeEmail)
		}
		if p.slackInviteOn == config.SlackInviteOnSignup {
			kinds = append(kinds, models.TaskSendSlackInvite)
		}
	case models.EventEmailConfirmed:
		kinds = append(kinds, models.TaskAddToMailingList)
		if p.slackInviteOn == config.SlackInviteOnConfirm {
			kinds = append(kinds, models.TaskSendSlackInvite)
		}
	}

	return kinds
}

// tasksFor builds one task per kind triggered by event, all sharing payload.
func (p taskPolicy) tasksFor(event models.LifecycleEvent, payload models.TaskPayload, now time.Time) ([]models.Task, error) {
	kinds := p.kindsFor(event)
	tasks := make([]models.Task, 0, len(kinds))

	for _, kind := range kinds {
		task, err := p.task(kind, payload, now)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (p taskPolicy) task(kind models.TaskKind, payload models.TaskPayload, now time.Time) (models.Task, error) {
	task, err := models.NewTask(kind, payload, now.Add(p.delay))
	if err != nil {
		return models.Task{}, fmt.Errorf("error building %s task: %w", kind, err)
	}
	return task, nil
}

// taskService is the concrete implementation of TaskService. It renders
// and delivers emails and calls the chat and mailing list integrations.
type taskService struct {
	userRepository  store.UserRepository
	emailRepository store.EmailAddressRepository

	tokens    TokenService
	adapters  *adapter.Adapters
	templates *templates.Renderer

	siteURL     string
	frontendURL string

	logger *logger.Logger
}

// NewTaskService constructs the task dispatcher.
func NewTaskService(repos *store.Repositories, tokens TokenService, adapters *adapter.Adapters, renderer *templates.Renderer, cfg config.App, logger *logger.Logger) TaskService {
	return &taskService{
		userRepository:  repos.UserRepository,
		emailRepository: repos.EmailAddressRepository,
		tokens:          tokens,
		adapters:        adapters,
		templates:       renderer,
		siteURL:         strings.TrimRight(cfg.SiteURL, "/"),
		frontendURL:     strings.TrimRight(cfg.FrontendURL, "/"),
		logger:          logger,
	}
}

// Execute runs task once. Errors wrapping ErrUnknownTaskKind or
// ErrInvalidTaskPayload are permanent; any other error may be retried.
func (s *taskService) Execute(ctx context.Context, task models.Task) error {
	payload, err := task.DecodePayload()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTaskPayload, err)
	}
	if payload.Email == "" && payload.UserID == 0 {
		return fmt.Errorf("%w: no recipient", ErrInvalidTaskPayload)
	}

	switch task.Kind {
	case models.TaskSendConfirmationEmail:
		return s.sendConfirmationEmail(ctx, payload)
	case models.TaskSendPasswordResetEmail:
		return s.sendPasswordResetEmail(ctx, payload)
	case models.TaskSendWelcomeEmail:
		return s.sendWelcomeEmail(ctx, payload)
	case models.TaskSendSlackInvite:
		return s.adapters.ChatInviter.Invite(ctx, payload.Email)
	case models.TaskAddToMailingList:
		return s.addToMailingList(ctx, payload)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTaskKind, task.Kind)
	}
}

func (s *taskService) sendConfirmationEmail(ctx context.Context, payload models.TaskPayload) error {
	address, err := s.emailRepository.GetEmailAddress(ctx, payload.EmailAddressID)
	if errors.Is(err, store.ErrEmailAddressNotFound) {
		return fmt.Errorf("%w: email address %d does not exist", ErrInvalidTaskPayload, payload.EmailAddressID)
	}
	if err != nil {
		return err
	}
	if address.Verified {
		logger.FromContext(ctx).Info().Str("email", address.Email).Msg("address already verified, confirmation skipped")
		return nil
	}

	key, err := s.tokens.ConfirmationKey(address)
	if err != nil {
		return err
	}

	data := templates.Data{
		"first_name":  payload.FirstName,
		"email":       address.Email,
		"confirm_url": s.frontendURL + "/confirm_email?key=" + url.QueryEscape(key),
	}

	return s.send(ctx, address.Email, subjectConfirmation, templates.ConfirmationEmailText, templates.ConfirmationEmailHTML, data)
}

func (s *taskService) sendPasswordResetEmail(ctx context.Context, payload models.TaskPayload) error {
	user, err := s.userRepository.FindUserByID(ctx, payload.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("%w: user %d does not exist", ErrInvalidTaskPayload, payload.UserID)
	}
	if err != nil {
		return err
	}

	token, err := s.tokens.ResetToken(user)
	if err != nil {
		return err
	}
	uid := utils.EncodeUID(user.ID)

	data := templates.Data{
		"first_name": user.FirstName,
		"email":      user.Email,
		"reset_url":  s.frontendURL + "/password_reset/confirm?key=" + url.QueryEscape(uid+"-"+token),
		"form_url":   s.siteURL + "/auth/password/reset/confirm/" + uid + "/" + token + "/",
	}

	return s.send(ctx, user.Email, subjectPasswordReset, templates.PasswordResetEmailText, "", data)
}

func (s *taskService) sendWelcomeEmail(ctx context.Context, payload models.TaskPayload) error {
	data := templates.Data{
		"first_name": payload.FirstName,
		"email":      payload.Email,
	}

	return s.send(ctx, payload.Email, subjectWelcome, templates.WelcomeEmailText, "", data)
}

func (s *taskService) addToMailingList(ctx context.Context, payload models.TaskPayload) error {
	subscriber := adapter.Subscriber{
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	}

	if subscriber.FirstName == "" && payload.UserID != 0 {
		user, err := s.userRepository.FindUserByID(ctx, payload.UserID)
		if err != nil && !errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		subscriber.FirstName, subscriber.LastName = user.FirstName, user.LastName
		if subscriber.Email == "" {
			subscriber.Email = user.Email
		}
	}

	return s.adapters.MailingList.Subscribe(ctx, subscriber)
}

func (s *taskService) send(ctx context.Context, to, subject, textTemplate, htmlTemplate string, data templates.Data) error {
	text, err := s.templates.Render(textTemplate, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTaskPayload, err)
	}

	email := adapter.Email{To: to, Subject: subject, Text: text}
	if htmlTemplate != "" {
		if email.HTML, err = s.templates.Render(htmlTemplate, data); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTaskPayload, err)
		}
	}

	return s.adapters.Mailer.Send(ctx, email)
}
