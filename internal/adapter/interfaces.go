// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Package adapter contains the outbound clients used by background tasks:
// the chat invite bot, the mailing list and the transactional email
// provider.
//
// Every client is safe for concurrent use. A client whose credentials are
// not configured is replaced by a no-op implementation (or, for email, by a
// logging mailer), so task handlers never check configuration themselves.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/logger"
)

// ChatInviter sends workspace invitations.
type ChatInviter interface {
	// Invite requests an invitation for email. An address that is already
	// invited or already a member is not an error.
	Invite(ctx context.Context, email string) error
}

// MailingList keeps the newsletter audience in sync.
type MailingList interface {
	// Subscribe adds or updates the member. Repeating the call with the
	// same subscriber is harmless.
	Subscribe(ctx context.Context, s Subscriber) error
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// Subscriber is a mailing list member.
type Subscriber struct {
	Email     string
	FirstName string
	LastName  string
}

// Email is a rendered transactional message with a plain text body and an
// optional HTML alternative.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Adapters groups every outbound client.
type Adapters struct {
	ChatInviter ChatInviter
	MailingList MailingList
	Mailer      Mailer
}

// NewAdapters builds the clients enabled by cfg. Unconfigured integrations
// are logged once and replaced by their no-op counterparts.
func NewAdapters(cfg config.Adapter, log *logger.Logger) (*Adapters, error) {
	adapters := &Adapters{
		ChatInviter: noopInviter{},
		MailingList: noopMailingList{},
		Mailer:      NewLogMailer(log),
	}

	if cfg.PybotURL != "" && cfg.PybotAuthToken != "" {
		inviter, err := NewPybotClient(cfg.PybotURL, cfg.PybotAuthToken, cfg.RequestTimeout)
		if err != nil {
			return nil, err
		}
		adapters.ChatInviter = inviter
	} else {
		log.Warn().Msg("pybot is not configured, chat invites are skipped")
	}

	if cfg.MailchimpAPIKey != "" && cfg.MailchimpListID != "" {
		list, err := NewMailchimpClient(cfg.MailchimpAPIKey, cfg.MailchimpUsername, cfg.MailchimpListID, cfg.RequestTimeout)
		if err != nil {
			return nil, err
		}
		adapters.MailingList = list
	} else {
		log.Warn().Msg("mailchimp is not configured, mailing list sync is skipped")
	}

	if cfg.MandrillAPIKey != "" {
		mailer, err := NewMandrillClient(cfg.MandrillAPIKey, cfg.MailFrom, cfg.RequestTimeout)
		if err != nil {
			return nil, err
		}
		adapters.Mailer = mailer
	} else {
		log.Warn().Msg("mandrill is not configured, emails are written to the log")
	}

	return adapters, nil
}
