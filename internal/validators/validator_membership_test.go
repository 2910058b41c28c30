package validators

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/MKhiriev/go-membership/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() models.Registration {
	return models.Registration{
		Email:     "jane@example.com",
		Password:  "correct-horse-battery",
		FirstName: "Jane",
		LastName:  "Doe",
		Zipcode:   "97201",
	}
}

func asValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return verr
}

func TestMembershipValidator_Registration(t *testing.T) {
	v := NewMembershipValidator()
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(r *models.Registration)
		fields   models.FieldErrors
		nonField []string
	}{
		{
			name:   "valid",
			mutate: func(r *models.Registration) {},
		},
		{
			name: "everything missing",
			mutate: func(r *models.Registration) {
				*r = models.Registration{}
			},
			fields: models.FieldErrors{
				"email":     {MsgRequired},
				"password":  {MsgRequired},
				"firstName": {MsgRequired},
				"lastName":  {MsgRequired},
			},
		},
		{
			name:   "invalid email",
			mutate: func(r *models.Registration) { r.Email = "not-an-email" },
			fields: models.FieldErrors{"email": {MsgInvalidEmail}},
		},
		{
			name:   "common numeric password",
			mutate: func(r *models.Registration) { r.Password = "12345678" },
			fields: models.FieldErrors{"password": {MsgPasswordCommon, MsgPasswordNumeric}},
		},
		{
			name: "password similar to first name",
			mutate: func(r *models.Registration) {
				r.FirstName = "Margaretta"
				r.Email = "nobody@example.com"
				r.Password = "margaretta1"
			},
			fields: models.FieldErrors{"password": {fmt.Sprintf(MsgPasswordSimilar, "first name")}},
		},
		{
			name:   "first name too long",
			mutate: func(r *models.Registration) { r.FirstName = strings.Repeat("a", 151) },
			fields: models.FieldErrors{"firstName": {fmt.Sprintf(MsgTooLong, 150)}},
		},
		{
			name:     "password confirmation mismatch",
			mutate:   func(r *models.Registration) { r.Password2 = "something-else-entirely" },
			nonField: []string{MsgPasswordsMismatch},
		},
		{
			name:   "matching password confirmation",
			mutate: func(r *models.Registration) { r.Password2 = r.Password },
		},
		{
			name: "legacy aliases",
			mutate: func(r *models.Registration) {
				*r = models.Registration{
					Email:          "jane@example.com",
					Password1:      "correct-horse-battery",
					FirstNameSnake: "Jane",
					LastNameSnake:  "Doe",
					Zip:            "97201",
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)

			err := v.Validate(ctx, &r)
			if tt.fields == nil && tt.nonField == nil {
				assert.NoError(t, err)
				return
			}

			verr := asValidationError(t, err)
			if tt.fields == nil {
				assert.Empty(t, verr.Fields)
			} else {
				assert.Equal(t, tt.fields, verr.Fields)
			}
			assert.Equal(t, tt.nonField, verr.NonField)
		})
	}
}

func TestMembershipValidator_MismatchReportedOnlyWhenFieldsValid(t *testing.T) {
	r := validRegistration()
	r.Email = ""
	r.Password2 = "different-password"

	verr := asValidationError(t, NewMembershipValidator().Validate(context.Background(), r))
	assert.Equal(t, models.FieldErrors{"email": {MsgRequired}}, verr.Fields)
	assert.Empty(t, verr.NonField)
}

func TestMembershipValidator_Credentials(t *testing.T) {
	v := NewMembershipValidator()

	assert.NoError(t, v.Validate(context.Background(), models.Credentials{Email: "a@b.io", Password: "x"}))

	verr := asValidationError(t, v.Validate(context.Background(), &models.Credentials{}))
	assert.Equal(t, models.FieldErrors{
		"email":    {MsgRequired},
		"password": {MsgRequired},
	}, verr.Fields)
}

func TestMembershipValidator_EmailRequest(t *testing.T) {
	v := NewMembershipValidator()

	assert.NoError(t, v.Validate(context.Background(), models.EmailRequest{Email: "jane@example.com"}))

	verr := asValidationError(t, v.Validate(context.Background(), models.EmailRequest{Email: "jane"}))
	assert.Equal(t, []string{MsgInvalidEmail}, verr.Fields["email"])

	verr = asValidationError(t, v.Validate(context.Background(), &models.EmailRequest{}))
	assert.Equal(t, []string{MsgRequired}, verr.Fields["email"])
}

func TestMembershipValidator_PasswordSet(t *testing.T) {
	user := models.User{Email: "jane@example.com", Username: "jane@example.com", FirstName: "Jane", LastName: "Doe"}
	v := NewMembershipValidator()

	tests := []struct {
		name string
		set  PasswordSet
		want models.FieldErrors
	}{
		{
			name: "valid",
			set:  PasswordSet{Password1: "correct-horse-battery", Password2: "correct-horse-battery", User: user},
		},
		{
			name: "both missing",
			set:  PasswordSet{User: user},
			want: models.FieldErrors{
				"new_password1": {MsgRequired},
				"new_password2": {MsgRequired},
			},
		},
		{
			name: "mismatch",
			set:  PasswordSet{Password1: "correct-horse-battery", Password2: "correct-horse-staple", User: user},
			want: models.FieldErrors{"new_password2": {MsgPasswordsMismatch}},
		},
		{
			name: "too short",
			set:  PasswordSet{Password1: "xk9#q", Password2: "xk9#q", User: user},
			want: models.FieldErrors{"new_password2": {fmt.Sprintf(MsgPasswordTooShort, 8)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.set)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, asValidationError(t, err).Fields)
		})
	}
}

func TestMembershipValidator_OnlyFields(t *testing.T) {
	err := NewMembershipValidator().Validate(context.Background(), models.Registration{}, "email")
	verr := asValidationError(t, err)
	assert.Equal(t, models.FieldErrors{"email": {MsgRequired}}, verr.Fields)
}

func TestMembershipValidator_UnsupportedType(t *testing.T) {
	err := NewMembershipValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
