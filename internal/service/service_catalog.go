// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/models"
)

type catalogService struct {
	catalogRepository store.CatalogRepository
	userRepository    store.UserRepository

	logger *logger.Logger
}

func NewCatalogService(repos *store.Repositories, logger *logger.Logger) CatalogService {
	return &catalogService{
		catalogRepository: repos.CatalogRepository,
		userRepository:    repos.UserRepository,
		logger:            logger,
	}
}

func (s *catalogService) List(ctx context.Context, caller *models.Claims, resource string) ([]models.Record, error) {
	res, err := s.authorize(ctx, caller, resource, readAccess)
	if err != nil {
		return nil, err
	}

	records, err := s.catalogRepository.List(ctx, res.CatalogResource)
	if err != nil {
		return nil, mapCatalogError(ctx, res.Name, err)
	}
	return records, nil
}

func (s *catalogService) Get(ctx context.Context, caller *models.Claims, resource string, id int64) (models.Record, error) {
	res, err := s.authorize(ctx, caller, resource, readAccess)
	if err != nil {
		return nil, err
	}

	record, err := s.catalogRepository.Get(ctx, res.CatalogResource, id)
	if err != nil {
		return nil, mapCatalogError(ctx, res.Name, err)
	}
	return record, nil
}

// Create inserts a row. For owned resources the owner column is always the
// caller, whatever the input says.
func (s *catalogService) Create(ctx context.Context, caller *models.Claims, resource string, input models.Input) (models.Record, error) {
	res, err := s.authorize(ctx, caller, resource, writeAccess)
	if err != nil {
		return nil, err
	}

	changes, err := decodeFields(res.Fields, input)
	if err != nil {
		return nil, err
	}
	if res.OwnerColumn != "" {
		changes[res.OwnerColumn] = caller.UserID
	}

	record, err := s.catalogRepository.Create(ctx, res.CatalogResource, changes)
	if err != nil {
		return nil, mapCatalogError(ctx, res.Name, err)
	}
	return record, nil
}

// Update patches row id. Full replacement is treated as a patch of the
// attributes present in input.
func (s *catalogService) Update(ctx context.Context, caller *models.Claims, resource string, id int64, input models.Input) (models.Record, error) {
	res, err := s.authorize(ctx, caller, resource, writeAccess)
	if err != nil {
		return nil, err
	}

	changes, err := decodeFields(res.Fields, input)
	if err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		return s.Get(ctx, caller, resource, id)
	}

	record, err := s.catalogRepository.Update(ctx, res.CatalogResource, id, changes, res.owner(caller))
	if err != nil {
		return nil, mapCatalogError(ctx, res.Name, err)
	}
	return record, nil
}

func (s *catalogService) Delete(ctx context.Context, caller *models.Claims, resource string, id int64) error {
	res, err := s.authorize(ctx, caller, resource, writeAccess)
	if err != nil {
		return err
	}

	if err = s.catalogRepository.Delete(ctx, res.CatalogResource, id, res.owner(caller)); err != nil {
		return mapCatalogError(ctx, res.Name, err)
	}
	return nil
}

type accessKind int

const (
	readAccess accessKind = iota
	writeAccess
)

// authorizedResource is a resource definition together with the caller's
// standing towards it.
type authorizedResource struct {
	models.CatalogResource
	staff bool
}

// owner returns the owner filter for changes and deletions: nil for staff
// and for resources without an owner column.
func (r authorizedResource) owner(caller *models.Claims) *int64 {
	if r.OwnerColumn == "" || r.staff || caller == nil {
		return nil
	}
	id := caller.UserID
	return &id
}

func (s *catalogService) authorize(ctx context.Context, caller *models.Claims, resource string, kind accessKind) (authorizedResource, error) {
	res, ok := models.LookupCatalogResource(resource)
	if !ok {
		return authorizedResource{}, ErrNotFound
	}

	required := res.Read
	if kind == writeAccess {
		required = res.Write
	}

	switch required {
	case models.AccessPublic:
		return authorizedResource{CatalogResource: res}, nil
	case models.AccessNone:
		return authorizedResource{}, ErrMethodNotAllowed
	}

	if caller == nil {
		return authorizedResource{}, ErrNotAuthenticated
	}

	staff, err := s.isStaff(ctx, caller.UserID)
	if err != nil {
		return authorizedResource{}, err
	}
	if required == models.AccessStaff && !staff {
		return authorizedResource{}, ErrForbidden
	}

	return authorizedResource{CatalogResource: res, staff: staff}, nil
}

func (s *catalogService) isStaff(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return false, ErrNotAuthenticated
	}
	if err != nil {
		return false, fmt.Errorf("user search by id failed: %w", err)
	}
	return user.IsStaff || user.IsSuperuser, nil
}

func mapCatalogError(ctx context.Context, resource string, err error) error {
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrInvalidReference):
		return ErrInvalidReference
	case errors.Is(err, store.ErrInvalidValue):
		return ErrInvalidValue
	default:
		logger.FromContext(ctx).Err(err).Str("resource", resource).Msg("catalog operation failed")
		return fmt.Errorf("catalog operation on %s failed: %w", resource, err)
	}
}
