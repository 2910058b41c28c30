package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/google/uuid"
)

type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a [TokenRepository] backed by db.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// Deny revokes the token id until expiresAt. Denying twice is a no-op.
func (r *tokenRepository) Deny(ctx context.Context, jti uuid.UUID, expiresAt time.Time) error {
	if _, err := r.db.conn(ctx).ExecContext(ctx, denyToken, jti, expiresAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.Deny").Msg("error denying token")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// IsDenied reports whether the token id was revoked.
func (r *tokenRepository) IsDenied(ctx context.Context, jti uuid.UUID) (bool, error) {
	var denied bool
	if err := r.db.conn(ctx).QueryRowContext(ctx, isTokenDenied, jti).Scan(&denied); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.IsDenied").Msg("error checking denylist")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return denied, nil
}

// PurgeExpired removes entries whose token expired before now.
func (r *tokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.conn(ctx).ExecContext(ctx, purgeDeniedTokens, now)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.PurgeExpired").Msg("error purging denylist")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return res.RowsAffected()
}
