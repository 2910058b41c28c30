package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/mock"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/internal/validators"
	"github.com/MKhiriev/go-membership/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestEmailService(t *testing.T, policy taskPolicy) (*emailService, *repoMocks, *mock.MockTokenService) {
	t.Helper()

	m := newRepoMocks(t)
	tokens := mock.NewMockTokenService(gomock.NewController(t))
	svc := NewEmailService(m.repositories(), tokens, validators.NewMembershipValidator(), policy, logger.Nop()).(*emailService)
	svc.now = func() time.Time { return fixedAt }

	return svc, m, tokens
}

var unverifiedAddress = models.EmailAddress{ID: 3, UserID: 7, Email: "ada@example.org", Primary: true}

// ─────────────────────────────────────────────
// ConfirmEmail
// ─────────────────────────────────────────────

func TestEmailService_ConfirmEmail_Success(t *testing.T) {
	svc, m, tokens := newTestEmailService(t, taskPolicy{slackInviteOn: "confirm"})
	var enqueued []models.Task

	tokens.EXPECT().ParseConfirmationKey("key").Return(int64(3), "ada@example.org", nil)
	m.emails.EXPECT().GetEmailAddress(gomock.Any(), int64(3)).Return(unverifiedAddress, nil)
	m.runInTx()
	m.emails.EXPECT().MarkVerified(gomock.Any(), int64(3)).Return(true, nil)
	m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7, FirstName: "Ada", LastName: "Lovelace"}, nil)
	m.tasks.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(captureTasks(&enqueued))

	require.NoError(t, svc.ConfirmEmail(context.Background(), " key "))

	assert.Equal(t, []models.TaskKind{models.TaskAddToMailingList, models.TaskSendSlackInvite}, taskKinds(enqueued))
	payload, err := enqueued[0].DecodePayload()
	require.NoError(t, err)
	assert.Equal(t, "ada@example.org", payload.Email)
	assert.Equal(t, "Ada", payload.FirstName)
}

func TestEmailService_ConfirmEmail_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *repoMocks, tokens *mock.MockTokenService)
	}{
		{
			name: "garbled key",
			setup: func(_ *repoMocks, tokens *mock.MockTokenService) {
				tokens.EXPECT().ParseConfirmationKey(gomock.Any()).Return(int64(0), "", ErrTokenIsExpiredOrInvalid)
			},
		},
		{
			name: "unknown address",
			setup: func(m *repoMocks, tokens *mock.MockTokenService) {
				tokens.EXPECT().ParseConfirmationKey(gomock.Any()).Return(int64(3), "ada@example.org", nil)
				m.emails.EXPECT().GetEmailAddress(gomock.Any(), int64(3)).Return(models.EmailAddress{}, store.ErrEmailAddressNotFound)
			},
		},
		{
			name: "email changed",
			setup: func(m *repoMocks, tokens *mock.MockTokenService) {
				tokens.EXPECT().ParseConfirmationKey(gomock.Any()).Return(int64(3), "old@example.org", nil)
				m.emails.EXPECT().GetEmailAddress(gomock.Any(), int64(3)).Return(unverifiedAddress, nil)
			},
		},
		{
			name: "already verified",
			setup: func(m *repoMocks, tokens *mock.MockTokenService) {
				verified := unverifiedAddress
				verified.Verified = true
				tokens.EXPECT().ParseConfirmationKey(gomock.Any()).Return(int64(3), "ada@example.org", nil)
				m.emails.EXPECT().GetEmailAddress(gomock.Any(), int64(3)).Return(verified, nil)
			},
		},
		{
			name: "verified concurrently",
			setup: func(m *repoMocks, tokens *mock.MockTokenService) {
				tokens.EXPECT().ParseConfirmationKey(gomock.Any()).Return(int64(3), "ada@example.org", nil)
				m.emails.EXPECT().GetEmailAddress(gomock.Any(), int64(3)).Return(unverifiedAddress, nil)
				m.runInTx()
				m.emails.EXPECT().MarkVerified(gomock.Any(), int64(3)).Return(false, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m, tokens := newTestEmailService(t, defaultPolicy())
			tt.setup(m, tokens)

			assert.ErrorIs(t, svc.ConfirmEmail(context.Background(), "key"), ErrNotFound)
		})
	}
}

func TestEmailService_ConfirmEmail_EnqueueError(t *testing.T) {
	svc, m, tokens := newTestEmailService(t, defaultPolicy())

	tokens.EXPECT().ParseConfirmationKey(gomock.Any()).Return(int64(3), "ada@example.org", nil)
	m.emails.EXPECT().GetEmailAddress(gomock.Any(), int64(3)).Return(unverifiedAddress, nil)
	m.runInTx()
	m.emails.EXPECT().MarkVerified(gomock.Any(), int64(3)).Return(true, nil)
	m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7}, nil)
	m.tasks.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errDB)

	err := svc.ConfirmEmail(context.Background(), "key")

	assert.ErrorIs(t, err, errDB)
	assert.NotErrorIs(t, err, ErrNotFound)
}

// ─────────────────────────────────────────────
// ResendConfirmation
// ─────────────────────────────────────────────

func TestEmailService_ResendConfirmation(t *testing.T) {
	svc, m, _ := newTestEmailService(t, defaultPolicy())
	var enqueued []models.Task

	m.emails.EXPECT().FindEmailAddress(gomock.Any(), "ada@example.org").Return(unverifiedAddress, nil)
	m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7, FirstName: "Ada"}, nil)
	m.tasks.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(captureTasks(&enqueued))

	require.NoError(t, svc.ResendConfirmation(context.Background(), models.EmailRequest{Email: "ada@example.org"}))

	require.Len(t, enqueued, 1)
	assert.Equal(t, models.TaskSendConfirmationEmail, enqueued[0].Kind)
	payload, err := enqueued[0].DecodePayload()
	require.NoError(t, err)
	assert.Equal(t, int64(3), payload.EmailAddressID)
	assert.Equal(t, "Ada", payload.FirstName)
}

func TestEmailService_ResendConfirmation_SilentlyIgnored(t *testing.T) {
	t.Run("unknown", func(t *testing.T) {
		svc, m, _ := newTestEmailService(t, defaultPolicy())
		m.emails.EXPECT().FindEmailAddress(gomock.Any(), gomock.Any()).Return(models.EmailAddress{}, store.ErrEmailAddressNotFound)

		assert.NoError(t, svc.ResendConfirmation(context.Background(), models.EmailRequest{Email: "nobody@example.org"}))
	})

	t.Run("verified", func(t *testing.T) {
		svc, m, _ := newTestEmailService(t, defaultPolicy())
		verified := unverifiedAddress
		verified.Verified = true
		m.emails.EXPECT().FindEmailAddress(gomock.Any(), gomock.Any()).Return(verified, nil)

		assert.NoError(t, svc.ResendConfirmation(context.Background(), models.EmailRequest{Email: "ada@example.org"}))
	})
}

func TestEmailService_ResendConfirmation_InvalidEmail(t *testing.T) {
	svc, _, _ := newTestEmailService(t, defaultPolicy())

	err := svc.ResendConfirmation(context.Background(), models.EmailRequest{Email: "nope"})

	requireFieldError(t, err, validators.FieldEmail, validators.MsgInvalidEmail)
}
