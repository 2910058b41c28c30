package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/models"
	sq "github.com/Masterminds/squirrel"
)

type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository] backed by db.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// profileTargets returns scan destinations in [profileColumns] order.
func profileTargets(p *models.Profile) []any {
	return []any{
		&p.UserID,
		&p.Zipcode, &p.Latitude, &p.Longitude, &p.RememberCreated, &p.SignInCount,
		&p.IsMentor, &p.Timezone, &p.Bio, &p.Verified, &p.State,
		&p.Address1, &p.Address2, &p.City, &p.IsVolunteer, &p.BranchOfService,
		&p.YearsOfService, &p.PayGrade, &p.MilitaryMOS, &p.GitHub, &p.Twitter,
		&p.LinkedIn, &p.EmploymentStatus, &p.Education, &p.CompanyRole, &p.CompanyName,
		&p.EducationLevel, &p.Interests, &p.WantsScholarship, &p.RoleID, &p.MilitaryStatus,
		&p.Languages, &p.Disciplines, &p.SlackID,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func (r *profileRepository) scanOne(ctx context.Context, fn string, query string, args ...any) (models.Profile, error) {
	var p models.Profile
	err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(profileTargets(&p)...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error reading profile")
		return models.Profile{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	return p, nil
}

// GetProfile returns the profile owned by userID.
func (r *profileRepository) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	query, args, err := psql.Select(profileColumns("")...).
		From("profiles").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanOne(ctx, "*profileRepository.GetProfile", query, args...)
}

// GetProfileByEmail returns the profile of the user with email.
func (r *profileRepository) GetProfileByEmail(ctx context.Context, email string) (models.Profile, error) {
	query, args, err := psql.Select(profileColumns("p")...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Expr("lower(u.email) = lower(?)", email)).
		ToSql()
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanOne(ctx, "*profileRepository.GetProfileByEmail", query, args...)
}

// UpdateProfile applies column changes and returns the updated row. Empty
// changes only read the profile.
func (r *profileRepository) UpdateProfile(ctx context.Context, userID int64, changes models.Changes) (models.Profile, error) {
	if len(changes) == 0 {
		return r.GetProfile(ctx, userID)
	}

	log := logger.FromContext(ctx)

	query, args, err := psql.Update("profiles").
		SetMap(changes).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING " + strings.Join(profileColumns(""), ", ")).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.UpdateProfile").Msg("error building query")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var p models.Profile
	err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(profileTargets(&p)...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.UpdateProfile").Msg("error updating profile")
		return models.Profile{}, mapWriteError(err, ErrInvalidValue)
	}

	return p, nil
}
