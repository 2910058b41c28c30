package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCatalogService(t *testing.T) (CatalogService, *repoMocks) {
	t.Helper()

	m := newRepoMocks(t)
	return NewCatalogService(m.repositories(), logger.Nop()), m
}

var member = &models.Claims{UserID: 7}

func resourceNamed(name string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		res, ok := x.(models.CatalogResource)
		return ok && res.Name == name
	})
}

// ─────────────────────────────────────────────
// Access policy
// ─────────────────────────────────────────────

func TestCatalogService_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		caller  *models.Claims
		setup   func(m *repoMocks)
		call    func(svc CatalogService, caller *models.Claims) error
		wantErr error
	}{
		{
			name: "unknown resource",
			call: func(svc CatalogService, caller *models.Claims) error {
				_, err := svc.List(context.Background(), caller, "spaceships")
				return err
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "read-only resource rejects writes",
			caller: member,
			call: func(svc CatalogService, caller *models.Claims) error {
				_, err := svc.Create(context.Background(), caller, "teamMembers", models.Input{})
				return err
			},
			wantErr: ErrMethodNotAllowed,
		},
		{
			name: "anonymous vote",
			call: func(svc CatalogService, caller *models.Claims) error {
				_, err := svc.Create(context.Background(), caller, "votes", models.Input{})
				return err
			},
			wantErr: ErrNotAuthenticated,
		},
		{
			name:   "member writes staff resource",
			caller: member,
			setup: func(m *repoMocks) {
				m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7}, nil)
			},
			call: func(svc CatalogService, caller *models.Claims) error {
				return svc.Delete(context.Background(), caller, "codeschools", 1)
			},
			wantErr: ErrForbidden,
		},
		{
			name:   "member lists applications",
			caller: member,
			setup: func(m *repoMocks) {
				m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7}, nil)
			},
			call: func(svc CatalogService, caller *models.Claims) error {
				_, err := svc.List(context.Background(), caller, "scholarshipApplications")
				return err
			},
			wantErr: ErrForbidden,
		},
		{
			name:   "deleted caller",
			caller: member,
			setup: func(m *repoMocks) {
				m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{}, store.ErrUserNotFound)
			},
			call: func(svc CatalogService, caller *models.Claims) error {
				_, err := svc.Create(context.Background(), caller, "votes", models.Input{})
				return err
			},
			wantErr: ErrNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestCatalogService(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			assert.ErrorIs(t, tt.call(svc, tt.caller), tt.wantErr)
		})
	}
}

func TestCatalogService_PublicRead(t *testing.T) {
	svc, m := newTestCatalogService(t)

	m.catalog.EXPECT().List(gomock.Any(), resourceNamed("codeschools")).Return([]models.Record{{"id": int64(1)}}, nil)
	m.catalog.EXPECT().Get(gomock.Any(), resourceNamed("codeschools"), int64(9)).Return(nil, store.ErrRecordNotFound)

	records, err := svc.List(context.Background(), nil, "codeschools")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = svc.Get(context.Background(), nil, "codeschools", 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ─────────────────────────────────────────────
// Ownership
// ─────────────────────────────────────────────

func TestCatalogService_Create_SetsOwner(t *testing.T) {
	svc, m := newTestCatalogService(t)

	m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7}, nil)
	m.catalog.EXPECT().Create(gomock.Any(), resourceNamed("votes"), models.Changes{
		"resource_id": int64(3),
		"upvote":      true,
		"user_id":     int64(7),
	}).Return(models.Record{"id": int64(1)}, nil)

	_, err := svc.Create(context.Background(), member, "votes", rawInput(t, `{"resource":3,"upvote":true,"user":99}`))
	require.NoError(t, err)
}

func TestCatalogService_Delete_MemberLimitedToOwnRows(t *testing.T) {
	svc, m := newTestCatalogService(t)

	m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7}, nil)
	m.catalog.EXPECT().Delete(gomock.Any(), resourceNamed("votes"), int64(5), ptr(int64(7))).Return(store.ErrRecordNotFound)

	err := svc.Delete(context.Background(), member, "votes", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_Update_StaffUnrestricted(t *testing.T) {
	svc, m := newTestCatalogService(t)

	m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7, IsStaff: true}, nil)
	m.catalog.EXPECT().Update(gomock.Any(), resourceNamed("votes"), int64(5), models.Changes{"upvote": false}, gomock.Nil()).
		Return(models.Record{"id": int64(5), "upvote": false}, nil)

	record, err := svc.Update(context.Background(), member, "votes", 5, rawInput(t, `{"upvote":false}`))
	require.NoError(t, err)
	assert.Equal(t, false, record["upvote"])
}

func TestCatalogService_Update_EmptyChangesReads(t *testing.T) {
	svc, m := newTestCatalogService(t)

	m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7, IsSuperuser: true}, nil)
	m.catalog.EXPECT().Get(gomock.Any(), resourceNamed("tags"), int64(2)).Return(models.Record{"id": int64(2)}, nil)

	_, err := svc.Update(context.Background(), member, "tags", 2, rawInput(t, `{"id":2}`))
	require.NoError(t, err)
}

func TestCatalogService_StoreErrors(t *testing.T) {
	for storeErr, want := range map[error]error{
		store.ErrInvalidReference: ErrInvalidReference,
		store.ErrInvalidValue:     ErrInvalidValue,
		errDB:                     errDB,
	} {
		t.Run(storeErr.Error(), func(t *testing.T) {
			svc, m := newTestCatalogService(t)
			m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7}, nil)
			m.catalog.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storeErr)

			_, err := svc.Create(context.Background(), member, "votes", rawInput(t, `{"resource":404}`))
			assert.ErrorIs(t, err, want)
		})
	}
}

func TestCatalogService_Create_DecodeErrors(t *testing.T) {
	svc, m := newTestCatalogService(t)

	m.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{ID: 7}, nil)

	_, err := svc.Create(context.Background(), member, "votes", rawInput(t, `{"upvote":"sometimes"}`))
	requireFieldError(t, err, "upvote", MsgNotABoolean)
}
