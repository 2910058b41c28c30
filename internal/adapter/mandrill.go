package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-membership/internal/utils"
)

const mandrillBaseURL = "https://mandrillapp.com/api/1.0"

type mandrillRecipient struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

type mandrillMessage struct {
	Subject   string              `json:"subject"`
	Text      string              `json:"text"`
	HTML      string              `json:"html,omitempty"`
	FromEmail string              `json:"from_email"`
	To        []mandrillRecipient `json:"to"`
}

type mandrillSendRequest struct {
	Key     string          `json:"key"`
	Message mandrillMessage `json:"message"`
}

type mandrillSendResult struct {
	Email        string `json:"email"`
	Status       string `json:"status"`
	RejectReason string `json:"reject_reason"`
}

type mandrillClient struct {
	client *utils.HTTPClient
	apiKey string
	from   string
}

// NewMandrillClient returns a [Mailer] sending through the Mandrill
// transactional API.
func NewMandrillClient(apiKey, from string, timeout time.Duration) (Mailer, error) {
	return newMandrillClient(mandrillBaseURL, apiKey, from, timeout)
}

func newMandrillClient(baseURL, apiKey, from string, timeout time.Duration) (*mandrillClient, error) {
	client, err := newRESTClient(baseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid mandrill url: %w", err)
	}

	return &mandrillClient{client: client, apiKey: apiKey, from: from}, nil
}

func (m *mandrillClient) Send(ctx context.Context, email Email) error {
	var results []mandrillSendResult

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(mandrillSendRequest{
			Key: m.apiKey,
			Message: mandrillMessage{
				Subject:   email.Subject,
				Text:      email.Text,
				HTML:      email.HTML,
				FromEmail: m.from,
				To:        []mandrillRecipient{{Email: email.To, Type: "to"}},
			},
		}).
		SetResult(&results).
		Post("/messages/send.json")
	if err != nil {
		return fmt.Errorf("mandrill send request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("mandrill send: %w", err)
	}

	for _, r := range results {
		if r.Status == "rejected" || r.Status == "invalid" {
			return fmt.Errorf("%w: %s %s %s", ErrRejected, r.Email, r.Status, r.RejectReason)
		}
	}

	return nil
}
