package store

import (
	"strings"

	"github.com/MKhiriev/go-membership/models"
)

const userColumns = `id, email, username, password_hash, first_name, last_name, is_active, is_staff, is_superuser, date_joined, last_login`

const (
	// createUser inserts the identity and its profile in one statement so
	// that no reader ever observes a user without a profile.
	createUser = `WITH u AS (
		INSERT INTO users (email, username, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns + `
	), p AS (
		INSERT INTO profiles (user_id, zipcode)
		SELECT id, $6 FROM u
	)
	SELECT ` + userColumns + ` FROM u;`

	findUserByEmail = `SELECT ` + userColumns + `
	FROM users
	WHERE lower(email) = lower($1);`

	findUserByID = `SELECT ` + userColumns + `
	FROM users
	WHERE id = $1;`

	setPassword = `UPDATE users SET password_hash = $2 WHERE id = $1;`

	recordLogin = `WITH u AS (
		UPDATE users SET last_login = $2 WHERE id = $1 RETURNING last_login
	), p AS (
		UPDATE profiles SET sign_in_count = COALESCE(sign_in_count, 0) + 1 WHERE user_id = $1
	)
	SELECT last_login FROM u;`

	emailExists = `SELECT EXISTS (
		SELECT 1 FROM users WHERE lower(email) = lower($1)
		UNION ALL
		SELECT 1 FROM email_addresses WHERE lower(email) = lower($1)
	);`

	isInGroup = `SELECT EXISTS (
		SELECT 1
		FROM user_groups ug
		JOIN groups g ON g.id = ug.group_id
		WHERE ug.user_id = $1 AND g.name = $2
	);`
)

const emailAddressColumns = `id, user_id, email, verified, "primary"`

const (
	createEmailAddress = `INSERT INTO email_addresses (user_id, email, verified, "primary")
	VALUES ($1, $2, $3, $4)
	RETURNING ` + emailAddressColumns + `;`

	getEmailAddress = `SELECT ` + emailAddressColumns + ` FROM email_addresses WHERE id = $1;`

	findEmailAddress = `SELECT ` + emailAddressColumns + ` FROM email_addresses WHERE lower(email) = lower($1);`

	// markEmailVerified flips only unverified rows; a verified primary
	// address mirrors its flag onto the owner's profile.
	markEmailVerified = `WITH e AS (
		UPDATE email_addresses SET verified = TRUE
		WHERE id = $1 AND verified = FALSE
		RETURNING user_id, "primary"
	), p AS (
		UPDATE profiles SET verified = TRUE, updated_at = now()
		WHERE user_id IN (SELECT user_id FROM e WHERE "primary")
	)
	SELECT count(*) FROM e;`
)

const taskReturning = `id, kind, payload, run_at, attempts, last_error, created_at, claim_token`

const (
	claimTasks = `UPDATE tasks
	SET claim_token = gen_random_uuid(),
		claim_until = now() + ($2::double precision * interval '1 second'),
		attempts = attempts + 1
	WHERE id IN (
		SELECT id FROM tasks
		WHERE completed_at IS NULL
			AND dead_lettered_at IS NULL
			AND run_at <= now()
			AND (claim_until IS NULL OR claim_until < now())
		ORDER BY run_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING ` + taskReturning + `;`

	completeTask = `UPDATE tasks
	SET completed_at = now(), claim_token = NULL, claim_until = NULL
	WHERE claim_token = $1;`

	rescheduleTask = `UPDATE tasks
	SET run_at = $2, last_error = $3, claim_token = NULL, claim_until = NULL
	WHERE claim_token = $1;`

	deadLetterTask = `UPDATE tasks
	SET dead_lettered_at = now(), last_error = $2, claim_token = NULL, claim_until = NULL
	WHERE claim_token = $1;`
)

const (
	denyToken = `INSERT INTO token_denylist (jti, expires_at)
	VALUES ($1, $2)
	ON CONFLICT (jti) DO NOTHING;`

	isTokenDenied = `SELECT EXISTS (SELECT 1 FROM token_denylist WHERE jti = $1);`

	purgeDeniedTokens = `DELETE FROM token_denylist WHERE expires_at < $1;`
)

// profileColumns lists the profile columns in scan order, prefixed with
// alias when it is not empty.
func profileColumns(alias string) []string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}

	cols := make([]string, 0, len(models.ProfileFields)+3)
	cols = append(cols, prefix+"user_id")
	for _, f := range models.ProfileFields {
		cols = append(cols, prefix+f.Column)
	}
	cols = append(cols, prefix+"created_at", prefix+"updated_at")

	return cols
}

// catalogColumns lists the columns of a catalog resource in scan order.
func catalogColumns(res models.CatalogResource) []string {
	cols := make([]string, 0, len(res.Fields)+3)
	cols = append(cols, "id")
	for _, f := range res.Fields {
		cols = append(cols, f.Column)
	}
	cols = append(cols, "created_at", "updated_at")

	return cols
}

func returning(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}
