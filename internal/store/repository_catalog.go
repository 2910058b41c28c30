// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/models"
	sq "github.com/Masterminds/squirrel"
)

// catalogRepository serves every reference-data table from its
// [models.CatalogResource] definition.
type catalogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCatalogRepository constructs a [CatalogRepository] backed by db.
func NewCatalogRepository(db *DB, logger *logger.Logger) CatalogRepository {
	logger.Debug().Msg("creating catalog repository")
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

// recordScanner holds typed nullable destinations for one catalog row.
type recordScanner struct {
	res     models.CatalogResource
	id      int64
	values  []any
	created time.Time
	updated time.Time
}

func newRecordScanner(res models.CatalogResource) *recordScanner {
	s := &recordScanner{res: res, values: make([]any, len(res.Fields))}
	for i, f := range res.Fields {
		switch f.Kind {
		case models.FieldInt:
			s.values[i] = new(sql.NullInt64)
		case models.FieldFloat:
			s.values[i] = new(sql.NullFloat64)
		case models.FieldBool:
			s.values[i] = new(sql.NullBool)
		case models.FieldTime:
			s.values[i] = new(sql.NullTime)
		default:
			s.values[i] = new(sql.NullString)
		}
	}
	return s
}

func (s *recordScanner) targets() []any {
	dest := make([]any, 0, len(s.values)+3)
	dest = append(dest, &s.id)
	dest = append(dest, s.values...)
	return append(dest, &s.created, &s.updated)
}

func (s *recordScanner) record() models.Record {
	rec := models.Record{
		"id":        s.id,
		"createdAt": s.created,
		"updatedAt": s.updated,
	}
	for i, f := range s.res.Fields {
		var v any
		switch n := s.values[i].(type) {
		case *sql.NullInt64:
			if n.Valid {
				v = n.Int64
			}
		case *sql.NullFloat64:
			if n.Valid {
				v = n.Float64
			}
		case *sql.NullBool:
			if n.Valid {
				v = n.Bool
			}
		case *sql.NullTime:
			if n.Valid {
				v = n.Time
			}
		case *sql.NullString:
			if n.Valid {
				v = n.String
			}
		}
		rec[f.JSON] = v
	}
	return rec
}

func (r *catalogRepository) query(ctx context.Context, res models.CatalogResource, builder sq.Sqlizer) ([]models.Record, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError(err, ErrInvalidValue)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		s := newRecordScanner(res)
		if err := rows.Scan(s.targets()...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, s.record())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// List returns every row of res ordered by id, with children embedded.
func (r *catalogRepository) List(ctx context.Context, res models.CatalogResource) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	records, err := r.query(ctx, res, psql.Select(catalogColumns(res)...).From(res.Table).OrderBy("id"))
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.List").Str("resource", res.Name).Msg("error listing records")
		return nil, err
	}

	if err := r.attachChildren(ctx, res, records); err != nil {
		log.Err(err).Str("func", "*catalogRepository.List").Str("resource", res.Name).Msg("error loading children")
		return nil, err
	}

	return records, nil
}

// Get returns row id of res.
func (r *catalogRepository) Get(ctx context.Context, res models.CatalogResource, id int64) (models.Record, error) {
	records, err := r.query(ctx, res, psql.Select(catalogColumns(res)...).From(res.Table).Where(sq.Eq{"id": id}))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*catalogRepository.Get").Str("resource", res.Name).Msg("error reading record")
		return nil, err
	}

	return r.single(ctx, res, records)
}

// Create inserts a row built from changes.
func (r *catalogRepository) Create(ctx context.Context, res models.CatalogResource, changes models.Changes) (models.Record, error) {
	var builder sq.Sqlizer
	if len(changes) == 0 {
		builder = sq.Expr(fmt.Sprintf("INSERT INTO %s DEFAULT VALUES %s", res.Table, returning(catalogColumns(res))))
	} else {
		builder = psql.Insert(res.Table).SetMap(changes).Suffix(returning(catalogColumns(res)))
	}

	records, err := r.query(ctx, res, builder)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*catalogRepository.Create").Str("resource", res.Name).Msg("error creating record")
		return nil, err
	}

	return r.single(ctx, res, records)
}

// Update applies changes to row id.
func (r *catalogRepository) Update(ctx context.Context, res models.CatalogResource, id int64, changes models.Changes, owner *int64) (models.Record, error) {
	builder := psql.Update(res.Table).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(returning(catalogColumns(res)))
	for col, v := range changes {
		builder = builder.Set(col, v)
	}
	if owner != nil && res.OwnerColumn != "" {
		builder = builder.Where(sq.Eq{res.OwnerColumn: *owner})
	}

	records, err := r.query(ctx, res, builder)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*catalogRepository.Update").Str("resource", res.Name).Msg("error updating record")
		return nil, err
	}

	return r.single(ctx, res, records)
}

// Delete removes row id.
func (r *catalogRepository) Delete(ctx context.Context, res models.CatalogResource, id int64, owner *int64) error {
	builder := psql.Delete(res.Table).Where(sq.Eq{"id": id})
	if owner != nil && res.OwnerColumn != "" {
		builder = builder.Where(sq.Eq{res.OwnerColumn: *owner})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*catalogRepository.Delete").Str("resource", res.Name).Msg("error deleting record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(result, ErrRecordNotFound)
}

func (r *catalogRepository) single(ctx context.Context, res models.CatalogResource, records []models.Record) (models.Record, error) {
	if len(records) == 0 {
		return nil, ErrRecordNotFound
	}
	if err := r.attachChildren(ctx, res, records[:1]); err != nil {
		return nil, err
	}
	return records[0], nil
}

// attachChildren embeds child rows into parents with one query per child
// resource.
func (r *catalogRepository) attachChildren(ctx context.Context, res models.CatalogResource, parents []models.Record) error {
	if len(res.Children) == 0 || len(parents) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(parents))
	for _, p := range parents {
		ids = append(ids, p["id"].(int64))
	}

	for _, child := range res.Children {
		childRes, ok := models.LookupCatalogResource(child.Resource)
		if !ok {
			return fmt.Errorf("unknown child resource %q of %q", child.Resource, res.Name)
		}

		fkField, ok := fieldByColumn(childRes, child.ForeignKey)
		if !ok {
			return fmt.Errorf("child resource %q has no column %q", child.Resource, child.ForeignKey)
		}

		rows, err := r.query(ctx, childRes, psql.Select(catalogColumns(childRes)...).
			From(childRes.Table).
			Where(sq.Eq{child.ForeignKey: ids}).
			OrderBy("id"))
		if err != nil {
			return err
		}

		byParent := make(map[int64][]models.Record, len(parents))
		for _, row := range rows {
			if parentID, ok := row[fkField.JSON].(int64); ok {
				byParent[parentID] = append(byParent[parentID], row)
			}
		}

		for _, p := range parents {
			children := byParent[p["id"].(int64)]
			if children == nil {
				children = []models.Record{}
			}
			p[child.JSON] = children
		}
	}

	return nil
}

func fieldByColumn(res models.CatalogResource, column string) (models.Field, bool) {
	for _, f := range res.Fields {
		if strings.EqualFold(f.Column, column) {
			return f, true
		}
	}
	return models.Field{}, false
}

// IsNotFound reports whether err is one of the store's not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrEmailAddressNotFound) ||
		errors.Is(err, ErrRecordNotFound)
}
