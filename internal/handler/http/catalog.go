// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-membership/internal/service"
	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/models"
	"github.com/go-chi/chi/v5"
)

// caller returns the authenticated claims, or nil for anonymous requests.
func caller(r *http.Request) *models.Claims {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		return nil
	}
	return claims
}

// recordID parses the {id} URL parameter. Non-numeric ids never match a row.
func recordID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, service.ErrNotFound
	}
	return id, nil
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.services.CatalogService.List(r.Context(), caller(r), chi.URLParam(r, "resource"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	var input models.Input
	if err := decodeBody(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	record, err := h.services.CatalogService.Create(r.Context(), caller(r), chi.URLParam(r, "resource"), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusCreated)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	record, err := h.services.CatalogService.Get(r.Context(), caller(r), chi.URLParam(r, "resource"), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var input models.Input
	if err = decodeBody(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	record, err := h.services.CatalogService.Update(r.Context(), caller(r), chi.URLParam(r, "resource"), id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.CatalogService.Delete(r.Context(), caller(r), chi.URLParam(r, "resource"), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
