// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-membership/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		wantID int64
		wantOK bool
	}{
		{name: "present", value: int64(42), wantID: 42, wantOK: true},
		{name: "zero", value: int64(0), wantID: 0, wantOK: true},
		{name: "wrong type", value: "not-an-int64", wantID: 0, wantOK: false},
		{name: "missing", value: nil, wantID: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.value != nil {
				ctx = context.WithValue(ctx, UserIDCtxKey, tt.value)
			}

			id, ok := GetUserIDFromContext(ctx)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("got (%d, %v), want (%d, %v)", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestWithClaims(t *testing.T) {
	claims := &models.Claims{UserID: 9, Email: "jane@example.com"}
	ctx := WithClaims(context.Background(), claims)

	got, ok := GetClaimsFromContext(ctx)
	if !ok || got != claims {
		t.Fatalf("expected stored claims, got %v, %v", got, ok)
	}

	id, ok := GetUserIDFromContext(ctx)
	if !ok || id != 9 {
		t.Fatalf("expected user id 9, got %d, %v", id, ok)
	}

	if _, ok := GetClaimsFromContext(context.Background()); ok {
		t.Fatal("expected no claims on empty context")
	}
}
