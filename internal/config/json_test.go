package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_Success(t *testing.T) {
	path := writeTempFile(t, `{
		"app": {
			"token_sign_key": "secret",
			"token_issuer": "issuer",
			"access_token_ttl": "15m",
			"refresh_token_ttl": "12h",
			"frontend_url": "https://example.org"
		},
		"storage": {"db": {"dsn": "postgres://localhost/db", "connect_attempts": 2}},
		"server": {"http_address": ":8000", "grpc_address": ":9000", "request_timeout": "5s"},
		"adapter": {"pybot_url": "https://pybot", "request_timeout": "3s"},
		"workers": {"embedded": true, "concurrency": 2, "base_backoff": "1s", "max_backoff": "1m", "slack_invite_on": "confirm"}
	}`)

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 15*time.Minute, cfg.App.AccessTokenTTL)
	assert.Equal(t, 12*time.Hour, cfg.App.RefreshTokenTTL)
	assert.Equal(t, "https://example.org", cfg.App.FrontendURL)
	assert.Equal(t, "postgres://localhost/db", cfg.Storage.DB.DSN)
	assert.Equal(t, uint64(2), cfg.Storage.DB.ConnectAttempts)
	assert.Equal(t, ":8000", cfg.Server.HTTPAddress)
	assert.Equal(t, ":9000", cfg.Server.GRPCAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "https://pybot", cfg.Adapter.PybotURL)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.True(t, cfg.Workers.Embedded)
	assert.Equal(t, 2, cfg.Workers.Concurrency)
	assert.Equal(t, time.Second, cfg.Workers.BaseBackoff)
	assert.Equal(t, time.Minute, cfg.Workers.MaxBackoff)
	assert.Equal(t, SlackInviteOnConfirm, cfg.Workers.SlackInviteOn)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, `{"app": `)

	_, err := parseJSON(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	path := writeTempFile(t, `{"server": {"request_timeout": "forever"}}`)

	_, err := parseJSON(path)

	require.Error(t, err)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	path := writeTempFile(t, `{}`)

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"90s"`, want: 90 * time.Second},
		{name: "nanoseconds number", input: `1000000000`, want: time.Second},
		{name: "bad string", input: `"abc"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(2 * time.Minute).MarshalJSON()

	require.NoError(t, err)
	assert.JSONEq(t, `"2m0s"`, string(b))
}
