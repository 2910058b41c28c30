package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/models"
)

type emailAddressRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewEmailAddressRepository constructs an [EmailAddressRepository] backed by db.
func NewEmailAddressRepository(db *DB, logger *logger.Logger) EmailAddressRepository {
	logger.Debug().Msg("creating email address repository")
	return &emailAddressRepository{
		db:     db,
		logger: logger,
	}
}

func scanEmailAddress(row rowScanner) (models.EmailAddress, error) {
	var e models.EmailAddress
	err := row.Scan(&e.ID, &e.UserID, &e.Email, &e.Verified, &e.Primary)
	return e, err
}

// CreateEmailAddress inserts address and returns it with its id.
func (r *emailAddressRepository) CreateEmailAddress(ctx context.Context, address models.EmailAddress) (models.EmailAddress, error) {
	log := logger.FromContext(ctx)

	row := r.db.conn(ctx).QueryRowContext(ctx, createEmailAddress,
		address.UserID, address.Email, address.Verified, address.Primary)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*emailAddressRepository.CreateEmailAddress").Msg("error inserting email address")
		return models.EmailAddress{}, mapWriteError(err, ErrEmailAlreadyExists)
	}

	created, err := scanEmailAddress(row)
	if err != nil {
		log.Err(err).Str("func", "*emailAddressRepository.CreateEmailAddress").Msg("error: scanning error")
		return models.EmailAddress{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// GetEmailAddress returns the address with id.
func (r *emailAddressRepository) GetEmailAddress(ctx context.Context, id int64) (models.EmailAddress, error) {
	return r.findOne(ctx, "*emailAddressRepository.GetEmailAddress", getEmailAddress, id)
}

// FindEmailAddress returns the address equal to email, ignoring case.
func (r *emailAddressRepository) FindEmailAddress(ctx context.Context, email string) (models.EmailAddress, error) {
	return r.findOne(ctx, "*emailAddressRepository.FindEmailAddress", findEmailAddress, email)
}

func (r *emailAddressRepository) findOne(ctx context.Context, fn, query string, arg any) (models.EmailAddress, error) {
	found, err := scanEmailAddress(r.db.conn(ctx).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.EmailAddress{}, ErrEmailAddressNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error finding email address")
		return models.EmailAddress{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	return found, nil
}

// MarkVerified verifies the address if it is still unverified.
func (r *emailAddressRepository) MarkVerified(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.conn(ctx).QueryRowContext(ctx, markEmailVerified, id).Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*emailAddressRepository.MarkVerified").Msg("error verifying email address")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n > 0, nil
}
