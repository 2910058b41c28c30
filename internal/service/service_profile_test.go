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

func newTestProfileService(t *testing.T) (ProfileService, *repoMocks) {
	t.Helper()

	m := newRepoMocks(t)
	return NewProfileService(m.repositories(), logger.Nop()), m
}

// ─────────────────────────────────────────────
// Own profile
// ─────────────────────────────────────────────

func TestProfileService_GetProfile(t *testing.T) {
	svc, m := newTestProfileService(t)

	m.profiles.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(models.Profile{UserID: 7, City: ptr("Portland")}, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), int64(8)).Return(models.Profile{}, store.ErrProfileNotFound)

	profile, err := svc.GetProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Portland", *profile.City)

	_, err = svc.GetProfile(context.Background(), 8)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileService_UpdateProfile_TranslatesFields(t *testing.T) {
	svc, m := newTestProfileService(t)

	m.profiles.EXPECT().UpdateProfile(gomock.Any(), int64(7), models.Changes{
		"is_mentor":                       true,
		"military_occupational_specialty": "25B",
		"years_of_service":                4.5,
		"slack_id":                        nil,
	}).Return(models.Profile{UserID: 7}, nil)

	input := rawInput(t, `{
		"isMentor": true,
		"militaryOccupationalSpecialty": "25B",
		"yearsOfService": 4.5,
		"slackId": null,
		"signInCount": 100
	}`)

	_, err := svc.UpdateProfile(context.Background(), 7, input)
	require.NoError(t, err)
}

func TestProfileService_UpdateProfile_ValidationError(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, err := svc.UpdateProfile(context.Background(), 7, rawInput(t, `{"slackId":"ABCDEFGHIJKLMNOPQ"}`))

	requireFieldError(t, err, "slackId", "Ensure this field has no more than 16 characters.")
}

func TestProfileService_UpdateProfile_StoreErrors(t *testing.T) {
	for storeErr, want := range map[error]error{
		store.ErrProfileNotFound:  ErrNotFound,
		store.ErrInvalidValue:     ErrInvalidValue,
		store.ErrInvalidReference: ErrInvalidReference,
		errDB:                     errDB,
	} {
		t.Run(storeErr.Error(), func(t *testing.T) {
			svc, m := newTestProfileService(t)
			m.profiles.EXPECT().UpdateProfile(gomock.Any(), int64(7), gomock.Any()).Return(models.Profile{}, storeErr)

			_, err := svc.UpdateProfile(context.Background(), 7, rawInput(t, `{"roleId":3}`))
			assert.ErrorIs(t, err, want)
		})
	}
}

// ─────────────────────────────────────────────
// Admin profile
// ─────────────────────────────────────────────

func TestProfileService_AdminGetProfile_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		setup   func(m *repoMocks)
		wantErr error
	}{
		{
			name:  "regular member is forbidden even without email",
			email: "",
			setup: func(m *repoMocks) {
				m.users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{ID: 1}, nil)
				m.users.EXPECT().IsInGroup(gomock.Any(), int64(1), ProfileAdminGroup).Return(false, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:  "profile admin without email",
			email: "  ",
			setup: func(m *repoMocks) {
				m.users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{ID: 1}, nil)
				m.users.EXPECT().IsInGroup(gomock.Any(), int64(1), ProfileAdminGroup).Return(true, nil)
			},
			wantErr: ErrMissingEmailParam,
		},
		{
			name:  "staff with unknown email",
			email: "ghost@example.org",
			setup: func(m *repoMocks) {
				m.users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{ID: 1, IsStaff: true}, nil)
				m.profiles.EXPECT().GetProfileByEmail(gomock.Any(), "ghost@example.org").Return(models.Profile{}, store.ErrUserNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:  "group lookup failure",
			email: "ada@example.org",
			setup: func(m *repoMocks) {
				m.users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{ID: 1}, nil)
				m.users.EXPECT().IsInGroup(gomock.Any(), int64(1), ProfileAdminGroup).Return(false, errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestProfileService(t)
			tt.setup(m)

			_, err := svc.AdminGetProfile(context.Background(), 1, tt.email)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProfileService_AdminGetProfile_Superuser(t *testing.T) {
	svc, m := newTestProfileService(t)

	m.users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{ID: 1, IsSuperuser: true}, nil)
	m.profiles.EXPECT().GetProfileByEmail(gomock.Any(), "ada@example.org").Return(models.Profile{UserID: 7}, nil)

	profile, err := svc.AdminGetProfile(context.Background(), 1, " ada@example.org ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), profile.UserID)
}

func TestProfileService_AdminUpdateProfile(t *testing.T) {
	svc, m := newTestProfileService(t)

	m.users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{ID: 1}, nil)
	m.users.EXPECT().IsInGroup(gomock.Any(), int64(1), ProfileAdminGroup).Return(true, nil)
	m.profiles.EXPECT().GetProfileByEmail(gomock.Any(), "ada@example.org").Return(models.Profile{UserID: 7}, nil)
	m.profiles.EXPECT().UpdateProfile(gomock.Any(), int64(7), models.Changes{"city": "Boise"}).Return(models.Profile{UserID: 7, City: ptr("Boise")}, nil)

	profile, err := svc.AdminUpdateProfile(context.Background(), 1, "ada@example.org", rawInput(t, `{"city":"Boise"}`))
	require.NoError(t, err)
	assert.Equal(t, "Boise", *profile.City)
}
