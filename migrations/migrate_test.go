// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations: acquiring the advisory lock fails
	err = Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, errNilDB)
}

// ─────────────────────────────────────────────
// Advisory lock
// ─────────────────────────────────────────────

func TestMigrate_AdvisoryLock(t *testing.T) {
	tests := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
	}{
		{
			name: "lock query fails before any schema work",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("pg_try_advisory_lock").
					WithArgs(lock.DefaultLockID).
					WillReturnError(errors.New("connection reset"))
			},
		},
		{
			name: "lock is released when the version table check fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("pg_try_advisory_lock").
					WithArgs(lock.DefaultLockID).
					WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
				mock.ExpectQuery("pg_tables").
					WillReturnError(errors.New("permission denied"))
				mock.ExpectQuery("pg_advisory_unlock").
					WithArgs(lock.DefaultLockID).
					WillReturnRows(sqlmock.NewRows([]string{"pg_advisory_unlock"}).AddRow(true))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.expect(mock)

			err = Migrate(context.Background(), db)
			require.Error(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEmbeddedMigrations_UpAndDown(t *testing.T) {
	names, err := fs.Glob(embedMigrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		body, err := fs.ReadFile(embedMigrations, name)
		require.NoError(t, err)

		text := string(body)
		assert.True(t, strings.Contains(text, "-- +goose Up"), "%s has no Up section", name)
		assert.True(t, strings.Contains(text, "-- +goose Down"), "%s has no Down section", name)
	}
}
