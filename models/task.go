// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskKind enumerates the background jobs the worker knows how to run.
type TaskKind string

const (
	TaskSendConfirmationEmail  TaskKind = "send_confirmation_email"
	TaskSendPasswordResetEmail TaskKind = "send_password_reset_email"
	TaskSendWelcomeEmail       TaskKind = "send_welcome_email"
	TaskSendSlackInvite        TaskKind = "send_slack_invite"
	TaskAddToMailingList       TaskKind = "add_to_mailing_list"
)

// Valid reports whether k is a known task kind.
func (k TaskKind) Valid() bool {
	switch k {
	case TaskSendConfirmationEmail, TaskSendPasswordResetEmail, TaskSendWelcomeEmail,
		TaskSendSlackInvite, TaskAddToMailingList:
		return true
	}
	return false
}

// Task is one durable unit of background work stored in the tasks table.
type Task struct {
	ID       uuid.UUID
	Kind     TaskKind
	Payload  json.RawMessage
	RunAt    time.Time
	Attempts int

	LastError   *string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// TaskPayload is the argument set shared by every task kind. Fields not
// relevant to a kind are left empty.
type TaskPayload struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`

	// EmailAddressID references the address being confirmed.
	EmailAddressID int64 `json:"email_address_id,omitempty"`
}

// NewTask builds a task of kind with payload, due at runAt.
func NewTask(kind TaskKind, payload TaskPayload, runAt time.Time) (Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Task{}, err
	}

	return Task{
		ID:      uuid.New(),
		Kind:    kind,
		Payload: raw,
		RunAt:   runAt,
	}, nil
}

// DecodePayload unmarshals the task payload.
func (t Task) DecodePayload() (TaskPayload, error) {
	var p TaskPayload
	err := json.Unmarshal(t.Payload, &p)
	return p, err
}

// LifecycleEvent names an account state change that triggers background work.
type LifecycleEvent string

const (
	EventSignedUp       LifecycleEvent = "signed_up"
	EventEmailConfirmed LifecycleEvent = "email_confirmed"
)
