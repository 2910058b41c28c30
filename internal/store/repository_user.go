package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/models"
	sq "github.com/Masterminds/squirrel"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It owns the "users" table and creates the matching "profiles" row.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.DateJoined, &u.LastLogin)
	return u, err
}

// CreateUser persists a new identity and an empty profile carrying zipcode.
//
// Error handling:
//   - unique_violation (23505) on email or username → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User, zipcode *string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.conn(ctx).QueryRowContext(ctx, createUser,
		user.Email, user.Username, user.PasswordHash, user.FirstName, user.LastName, zipcode)

	// create user and profile in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, mapWriteError(err, ErrEmailAlreadyExists)
	}

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindUserByEmail looks the user up by email, ignoring case.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

// FindUserByID looks the user up by primary key.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, id)
}

func (r *userRepository) findOne(ctx context.Context, fn, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// UpdateUser changes the names present in update and returns the stored user.
func (r *userRepository) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	if update.IsEmpty() {
		return r.FindUserByID(ctx, id)
	}

	log := logger.FromContext(ctx)

	builder := psql.Update("users").Where(sq.Eq{"id": id}).Suffix("RETURNING " + userColumns)
	if update.FirstName != nil {
		builder = builder.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		builder = builder.Set("last_name", *update.LastName)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, mapWriteError(err, ErrEmailAlreadyExists)
	}

	return updated, nil
}

// SetPassword replaces the stored password hash.
func (r *userRepository) SetPassword(ctx context.Context, id int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.conn(ctx).ExecContext(ctx, setPassword, id, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetPassword").Msg("error updating password")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(res, ErrUserNotFound)
}

// RecordLogin stamps the login time and bumps the sign-in counter.
func (r *userRepository) RecordLogin(ctx context.Context, id int64, at time.Time) (time.Time, error) {
	log := logger.FromContext(ctx)

	var lastLogin time.Time
	err := r.db.conn(ctx).QueryRowContext(ctx, recordLogin, id, at).Scan(&lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RecordLogin").Msg("error recording login")
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return lastLogin, nil
}

// EmailExists reports whether the email is taken by any user or address.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "*userRepository.EmailExists", emailExists, email)
}

// IsInGroup reports whether the user belongs to the named group.
func (r *userRepository) IsInGroup(ctx context.Context, id int64, group string) (bool, error) {
	return r.exists(ctx, "*userRepository.IsInGroup", isInGroup, id, group)
}

func (r *userRepository) exists(ctx context.Context, fn, query string, args ...any) (bool, error) {
	var ok bool
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error checking existence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return ok, nil
}

// requireAffected returns notFound when res touched no rows.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
