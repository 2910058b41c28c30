package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-membership/internal/utils"
)

const pybotInvitePath = "/pybot/api/v1/slack/invite"

// Slack error codes pybot passes through when the address needs no invite.
var alreadyInvitedMarkers = []string{"already_invited", "already invited", "already_in_team"}

type pybotClient struct {
	client *utils.HTTPClient
	token  string
}

// NewPybotClient returns a [ChatInviter] calling the pybot service at
// baseURL with a bearer token.
func NewPybotClient(baseURL, token string, timeout time.Duration) (ChatInviter, error) {
	client, err := newRESTClient(baseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid pybot url: %w", err)
	}

	return &pybotClient{client: client, token: token}, nil
}

func (p *pybotClient) Invite(ctx context.Context, email string) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.token).
		SetBody(map[string]string{"email": email}).
		Post(pybotInvitePath)
	if err != nil {
		return fmt.Errorf("slack invite request: %w", err)
	}

	err = mapHTTPError(resp)
	if err == nil || errors.Is(err, ErrAlreadyExists) || alreadyInvited(resp.String()) {
		return nil
	}

	return fmt.Errorf("slack invite: %w", err)
}

func alreadyInvited(body string) bool {
	body = strings.ToLower(body)
	for _, marker := range alreadyInvitedMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
