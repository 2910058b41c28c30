package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
// Durations are written as strings such as "1h" or "30s".
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey         string   `json:"token_sign_key"`
		TokenPrivateKeyPath  string   `json:"token_private_key_path"`
		TokenPublicKeyPath   string   `json:"token_public_key_path"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenTTL       Duration `json:"access_token_ttl"`
		RefreshTokenTTL      Duration `json:"refresh_token_ttl"`
		EmailConfirmationTTL Duration `json:"email_confirmation_ttl"`
		PasswordResetTTL     Duration `json:"password_reset_ttl"`
		SiteURL              string   `json:"site_url"`
		FrontendURL          string   `json:"frontend_url"`
		Environment          string   `json:"environment"`
		Version              string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN             string `json:"dsn"`
			ConnectAttempts uint64 `json:"connect_attempts"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		RequestTimeout    Duration `json:"request_timeout"`
		PybotURL          string   `json:"pybot_url"`
		PybotAuthToken    string   `json:"pybot_auth_token"`
		MailchimpAPIKey   string   `json:"mailchimp_api_key"`
		MailchimpListID   string   `json:"mailchimp_list_id"`
		MailchimpUsername string   `json:"mailchimp_username"`
		MandrillAPIKey    string   `json:"mandrill_api_key"`
		MailFrom          string   `json:"mail_from"`
		SentryDSN         string   `json:"sentry_dsn"`
	} `json:"adapter,omitempty"`

	Workers struct {
		Embedded      bool     `json:"embedded"`
		PollInterval  Duration `json:"poll_interval"`
		BatchSize     int      `json:"batch_size"`
		Concurrency   int      `json:"concurrency"`
		MaxAttempts   int      `json:"max_attempts"`
		BaseBackoff   Duration `json:"base_backoff"`
		MaxBackoff    Duration `json:"max_backoff"`
		ClaimTimeout  Duration `json:"claim_timeout"`
		TaskDelay     Duration `json:"task_delay"`
		SlackInviteOn string   `json:"slack_invite_on"`
		WelcomeEmail  bool     `json:"welcome_email"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:         j.App.TokenSignKey,
			TokenPrivateKeyPath:  j.App.TokenPrivateKeyPath,
			TokenPublicKeyPath:   j.App.TokenPublicKeyPath,
			TokenIssuer:          j.App.TokenIssuer,
			AccessTokenTTL:       time.Duration(j.App.AccessTokenTTL),
			RefreshTokenTTL:      time.Duration(j.App.RefreshTokenTTL),
			EmailConfirmationTTL: time.Duration(j.App.EmailConfirmationTTL),
			PasswordResetTTL:     time.Duration(j.App.PasswordResetTTL),
			SiteURL:              j.App.SiteURL,
			FrontendURL:          j.App.FrontendURL,
			Environment:          j.App.Environment,
			Version:              j.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN:             j.Storage.DB.DSN,
				ConnectAttempts: j.Storage.DB.ConnectAttempts,
			},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Adapter: Adapter{
			RequestTimeout:    time.Duration(j.Adapter.RequestTimeout),
			PybotURL:          j.Adapter.PybotURL,
			PybotAuthToken:    j.Adapter.PybotAuthToken,
			MailchimpAPIKey:   j.Adapter.MailchimpAPIKey,
			MailchimpListID:   j.Adapter.MailchimpListID,
			MailchimpUsername: j.Adapter.MailchimpUsername,
			MandrillAPIKey:    j.Adapter.MandrillAPIKey,
			MailFrom:          j.Adapter.MailFrom,
			SentryDSN:         j.Adapter.SentryDSN,
		},
		Workers: Workers{
			Embedded:      j.Workers.Embedded,
			PollInterval:  time.Duration(j.Workers.PollInterval),
			BatchSize:     j.Workers.BatchSize,
			Concurrency:   j.Workers.Concurrency,
			MaxAttempts:   j.Workers.MaxAttempts,
			BaseBackoff:   time.Duration(j.Workers.BaseBackoff),
			MaxBackoff:    time.Duration(j.Workers.MaxBackoff),
			ClaimTimeout:  time.Duration(j.Workers.ClaimTimeout),
			TaskDelay:     time.Duration(j.Workers.TaskDelay),
			SlackInviteOn: j.Workers.SlackInviteOn,
			WelcomeEmail:  j.Workers.WelcomeEmail,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
