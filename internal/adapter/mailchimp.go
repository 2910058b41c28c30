package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-membership/internal/utils"
)

type mailchimpMember struct {
	EmailAddress string            `json:"email_address"`
	StatusIfNew  string            `json:"status_if_new"`
	MergeFields  map[string]string `json:"merge_fields"`
}

type mailchimpClient struct {
	client *utils.HTTPClient
	listID string
}

// NewMailchimpClient returns a [MailingList] backed by the Mailchimp
// Marketing API. The data center is taken from the "-dc" suffix of apiKey.
func NewMailchimpClient(apiKey, username, listID string, timeout time.Duration) (MailingList, error) {
	dc, err := mailchimpDataCenter(apiKey)
	if err != nil {
		return nil, err
	}

	return newMailchimpClient(fmt.Sprintf("https://%s.api.mailchimp.com/3.0", dc), apiKey, username, listID, timeout)
}

func newMailchimpClient(baseURL, apiKey, username, listID string, timeout time.Duration) (*mailchimpClient, error) {
	client, err := newRESTClient(baseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid mailchimp url: %w", err)
	}
	if username == "" {
		username = "anystring"
	}
	client.SetBasicAuth(username, apiKey)

	return &mailchimpClient{client: client, listID: listID}, nil
}

func mailchimpDataCenter(apiKey string) (string, error) {
	i := strings.LastIndex(apiKey, "-")
	if i < 0 || i == len(apiKey)-1 {
		return "", fmt.Errorf("%w: mailchimp key has no data center suffix", ErrInvalidAPIKey)
	}
	return apiKey[i+1:], nil
}

// Subscribe upserts the member keyed by the MD5 of the lower-cased email,
// so existing members are updated instead of rejected.
func (m *mailchimpClient) Subscribe(ctx context.Context, s Subscriber) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))

	resp, err := m.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"list":   m.listID,
			"member": utils.MD5Hex(email),
		}).
		SetBody(mailchimpMember{
			EmailAddress: email,
			StatusIfNew:  "subscribed",
			MergeFields:  map[string]string{"FNAME": s.FirstName, "LNAME": s.LastName},
		}).
		Put("/lists/{list}/members/{member}")
	if err != nil {
		return fmt.Errorf("mailchimp upsert request: %w", err)
	}

	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("mailchimp upsert: %w", err)
	}

	return nil
}
