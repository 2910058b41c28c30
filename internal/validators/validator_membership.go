package validators

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-membership/models"
	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation"
)

// JSON field names reported in validation errors.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldZipcode      = "zipcode"
	FieldNewPassword1 = "new_password1"
	FieldNewPassword2 = "new_password2"
)

const (
	maxEmailLength   = 254
	maxNameLength    = 150
	maxZipcodeLength = 256
)

// PasswordSet is a new password typed twice by user. It is validated for
// password change and password reset confirmation.
type PasswordSet struct {
	Password1 string
	Password2 string
	User      models.User
}

var emailRule = validation.NewStringRule(govalidator.IsEmail, MsgInvalidEmail)

func maxLength(n int) validation.Rule {
	return validation.Length(0, n).Error(fmt.Sprintf(MsgTooLong, n))
}

// MembershipValidator implements [Validator] for account payloads:
// registrations, credentials, email requests and password sets. Both value
// and pointer forms are accepted.
type MembershipValidator struct {
}

// NewMembershipValidator constructs a new MembershipValidator
// and returns it as the Validator interface.
func NewMembershipValidator() Validator {
	return &MembershipValidator{}
}

// Validate returns a *ValidationError describing every problem with obj,
// or nil. Optional fields restrict the reported field errors.
func (v *MembershipValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var (
		verr *ValidationError
		err  error
	)

	switch value := obj.(type) {
	case models.Registration:
		verr, err = v.validateRegistration(value)
	case *models.Registration:
		verr, err = v.validateRegistration(*value)

	case models.Credentials:
		verr, err = v.validateCredentials(value)
	case *models.Credentials:
		verr, err = v.validateCredentials(*value)

	case models.EmailRequest:
		verr, err = v.validateEmailRequest(value)
	case *models.EmailRequest:
		verr, err = v.validateEmailRequest(*value)

	case PasswordSet:
		verr = v.validatePasswordSet(value)
	case *PasswordSet:
		verr = v.validatePasswordSet(*value)

	default:
		return ErrUnsupportedType
	}
	if err != nil {
		return err
	}

	verr.Only(fields...)
	return verr.Err()
}

func (v *MembershipValidator) validateRegistration(r models.Registration) (*ValidationError, error) {
	r.Normalize()

	verr := NewValidationError()
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error(MsgRequired), maxLength(maxEmailLength), emailRule),
		validation.Field(&r.Password, validation.Required.Error(MsgRequired)),
		validation.Field(&r.FirstName, validation.Required.Error(MsgRequired), maxLength(maxNameLength)),
		validation.Field(&r.LastName, validation.Required.Error(MsgRequired), maxLength(maxNameLength)),
		validation.Field(&r.Zipcode, maxLength(maxZipcodeLength)),
	)
	if err := collect(verr, err); err != nil {
		return nil, err
	}

	if _, bad := verr.Fields[FieldPassword]; !bad {
		for _, p := range PasswordProblems(r.Password, userAttributes(r.Email, r.FirstName, r.LastName)...) {
			verr.AddField(FieldPassword, p)
		}
	}

	// the confirmation is optional for current clients
	if verr.Empty() && r.Password2 != "" && r.Password2 != r.Password {
		verr.AddNonField(MsgPasswordsMismatch)
	}

	return verr, nil
}

func (v *MembershipValidator) validateCredentials(c models.Credentials) (*ValidationError, error) {
	verr := NewValidationError()
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required.Error(MsgRequired)),
		validation.Field(&c.Password, validation.Required.Error(MsgRequired)),
	)
	return verr, collect(verr, err)
}

func (v *MembershipValidator) validateEmailRequest(r models.EmailRequest) (*ValidationError, error) {
	verr := NewValidationError()
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error(MsgRequired), emailRule),
	)
	return verr, collect(verr, err)
}

func (v *MembershipValidator) validatePasswordSet(p PasswordSet) *ValidationError {
	verr := NewValidationError()

	if p.Password1 == "" {
		verr.AddField(FieldNewPassword1, MsgRequired)
	}
	if p.Password2 == "" {
		verr.AddField(FieldNewPassword2, MsgRequired)
	}
	if !verr.Empty() {
		return verr
	}

	if p.Password1 != p.Password2 {
		verr.AddField(FieldNewPassword2, MsgPasswordsMismatch)
		return verr
	}

	attrs := userAttributes(p.User.Email, p.User.FirstName, p.User.LastName)
	if p.User.Username != p.User.Email {
		attrs = append(attrs, Attribute{Name: "username", Value: p.User.Username})
	}
	for _, problem := range PasswordProblems(p.Password2, attrs...) {
		verr.AddField(FieldNewPassword2, problem)
	}

	return verr
}

func userAttributes(email, firstName, lastName string) []Attribute {
	return []Attribute{
		{Name: "email address", Value: email},
		{Name: "first name", Value: firstName},
		{Name: "last name", Value: lastName},
	}
}

// collect moves ozzo field errors into verr. Internal ozzo errors, such
// as a rule applied to the wrong type, are returned as they are.
func collect(verr *ValidationError, err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return fmt.Errorf("error running validation rules: %w", err)
	}
	for field, fieldErr := range errs {
		if fieldErr != nil {
			verr.AddField(field, fieldErr.Error())
		}
	}

	return nil
}
