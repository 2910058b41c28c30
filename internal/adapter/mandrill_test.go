package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMandrillSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages/send.json", r.URL.Path)

		var req mandrillSendRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mkey", req.Key)
		assert.Equal(t, "noreply@example.org", req.Message.FromEmail)
		assert.Equal(t, "Confirm", req.Message.Subject)
		assert.Equal(t, []mandrillRecipient{{Email: "jane@example.com", Type: "to"}}, req.Message.To)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"email":"jane@example.com","status":"sent"}]`))
	}))
	defer srv.Close()

	mailer, err := newMandrillClient(srv.URL, "mkey", "noreply@example.org", time.Second)
	require.NoError(t, err)

	err = mailer.Send(context.Background(), Email{To: "jane@example.com", Subject: "Confirm", Text: "hi"})
	assert.NoError(t, err)
}

func TestMandrillSend_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"email":"jane@example.com","status":"rejected","reject_reason":"hard-bounce"}]`))
	}))
	defer srv.Close()

	mailer, err := newMandrillClient(srv.URL, "mkey", "noreply@example.org", time.Second)
	require.NoError(t, err)

	err = mailer.Send(context.Background(), Email{To: "jane@example.com"})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "hard-bounce")
}

func TestMandrillSend_InvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error","name":"Invalid_Key"}`))
	}))
	defer srv.Close()

	mailer, err := newMandrillClient(srv.URL, "bad", "noreply@example.org", time.Second)
	require.NoError(t, err)
	assert.ErrorIs(t, mailer.Send(context.Background(), Email{To: "jane@example.com"}), ErrInternalServerError)
}

func TestNewAdapters_Disabled(t *testing.T) {
	adapters, err := NewAdapters(config.Adapter{}, logger.Nop())
	require.NoError(t, err)

	assert.IsType(t, noopInviter{}, adapters.ChatInviter)
	assert.IsType(t, noopMailingList{}, adapters.MailingList)
	assert.IsType(t, &logMailer{}, adapters.Mailer)

	assert.NoError(t, adapters.ChatInviter.Invite(context.Background(), "a@b.io"))
	assert.NoError(t, adapters.MailingList.Subscribe(context.Background(), Subscriber{Email: "a@b.io"}))
	assert.NoError(t, adapters.Mailer.Send(context.Background(), Email{To: "a@b.io"}))
}

func TestNewAdapters_Enabled(t *testing.T) {
	adapters, err := NewAdapters(config.Adapter{
		RequestTimeout:  time.Second,
		PybotURL:        "http://localhost:5000",
		PybotAuthToken:  "t",
		MailchimpAPIKey: "k-us1",
		MailchimpListID: "l",
		MandrillAPIKey:  "m",
		MailFrom:        "noreply@example.org",
	}, logger.Nop())
	require.NoError(t, err)

	assert.IsType(t, &pybotClient{}, adapters.ChatInviter)
	assert.IsType(t, &mailchimpClient{}, adapters.MailingList)
	assert.IsType(t, &mandrillClient{}, adapters.Mailer)
}

func TestNewAdapters_BadMailchimpKey(t *testing.T) {
	_, err := NewAdapters(config.Adapter{MailchimpAPIKey: "nodc", MailchimpListID: "l"}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}
