package validators

import (
	"testing"

	"github.com/MKhiriev/go-membership/models"
	"github.com/stretchr/testify/assert"
)

func TestValidationError_FirstMessage(t *testing.T) {
	e := NewValidationError()
	assert.Equal(t, "", e.FirstMessage())

	e.AddField("zipcode", "bad zip")
	e.AddField("email", "bad email")
	assert.Equal(t, "bad email", e.FirstMessage())

	e.AddNonField("general")
	assert.Equal(t, "general", e.FirstMessage())
}

func TestValidationError_Err(t *testing.T) {
	var nilErr *ValidationError
	assert.NoError(t, nilErr.Err())
	assert.NoError(t, NewValidationError().Err())
	assert.Error(t, FieldError("email", MsgRequired).Err())
}

func TestValidationError_MergeAndOnly(t *testing.T) {
	e := FieldError("email", "a")
	e.Merge(FieldError("email", "b"))
	e.Merge(NonFieldError("c"))
	e.Merge(FieldError("password", "d"))
	e.Merge(nil)

	assert.Equal(t, models.FieldErrors{"email": {"a", "b"}, "password": {"d"}}, e.Fields)
	assert.Equal(t, []string{"c"}, e.NonField)

	e.Only("password")
	assert.Equal(t, models.FieldErrors{"password": {"d"}}, e.Fields)
	assert.Equal(t, []string{"c"}, e.NonField)
}

func TestValidationError_Error(t *testing.T) {
	e := FieldError("password", "too short")
	e.AddField("email", "taken")
	e.AddNonField("mismatch")

	assert.Equal(t, "validation failed: mismatch; email: taken; password: too short", e.Error())
}
