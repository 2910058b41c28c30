package models

// Registration is a self-service signup submission.
//
// Legacy clients send snake_case names, password1 instead of password, and
// zip instead of zipcode; [Registration.Normalize] folds the aliases into
// the canonical fields.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password1 string `json:"password1,omitempty"`
	Password2 string `json:"password2"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Zipcode   string `json:"zipcode"`

	FirstNameSnake string `json:"first_name,omitempty"`
	LastNameSnake  string `json:"last_name,omitempty"`
	Zip            string `json:"zip,omitempty"`
}

// Normalize folds alias fields into their canonical counterparts.
// Canonical fields win when both spellings are present.
func (r *Registration) Normalize() {
	if r.Password == "" {
		r.Password = r.Password1
	}
	if r.FirstName == "" {
		r.FirstName = r.FirstNameSnake
	}
	if r.LastName == "" {
		r.LastName = r.LastNameSnake
	}
	if r.Zipcode == "" {
		r.Zipcode = r.Zip
	}
	r.Password1, r.FirstNameSnake, r.LastNameSnake, r.Zip = "", "", "", ""
}

// Credentials is a login submission.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued credentials. Token and Access always
// hold the same value so older clients keep working.
type LoginResponse struct {
	Token   string    `json:"token"`
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	User    LoginUser `json:"user"`
}

// LoginUser mirrors the identity and profile claims of the access token.
type LoginUser struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Zipcode   *string `json:"zipcode,omitempty"`
	IsMentor  *bool   `json:"isMentor,omitempty"`
}

// NewLoginResponse builds the login payload from an issued token pair.
func NewLoginResponse(pair TokenPair) LoginResponse {
	resp := LoginResponse{
		Token:   pair.Access,
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}
	if c := pair.Claims; c != nil {
		resp.User = LoginUser{
			ID:        c.UserID,
			Username:  c.Username,
			Email:     c.Email,
			FirstName: c.FirstName,
			LastName:  c.LastName,
		}
		if c.ProfileClaims != nil {
			resp.User.Zipcode = c.Zipcode
			resp.User.IsMentor = c.IsMentor
		}
	}

	return resp
}

// RefreshRequest carries a refresh token for refresh and logout.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// VerifyTokenRequest carries any token to be checked.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// AccessResponse is returned by the refresh endpoint.
type AccessResponse struct {
	Access string `json:"access"`
	Token  string `json:"token"`
}

// EmailKey is the body of the email verification endpoint.
type EmailKey struct {
	Key string `json:"key"`
}

// EmailRequest is the body of the password reset and resend endpoints.
type EmailRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm completes a password reset. Both the snake_case
// names used by the web client and camelCase aliases are accepted.
type PasswordResetConfirm struct {
	UID          string `json:"uid"`
	Token        string `json:"token"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`

	NewPassword1Camel string `json:"newPassword1,omitempty"`
	NewPassword2Camel string `json:"newPassword2,omitempty"`
}

// Normalize folds camelCase aliases into the canonical fields.
func (p *PasswordResetConfirm) Normalize() {
	if p.NewPassword1 == "" {
		p.NewPassword1 = p.NewPassword1Camel
	}
	if p.NewPassword2 == "" {
		p.NewPassword2 = p.NewPassword2Camel
	}
	p.NewPassword1Camel, p.NewPassword2Camel = "", ""
}

// PasswordChange sets a new password for an authenticated user.
type PasswordChange struct {
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`

	NewPassword1Camel string `json:"newPassword1,omitempty"`
	NewPassword2Camel string `json:"newPassword2,omitempty"`
}

// Normalize folds camelCase aliases into the canonical fields.
func (p *PasswordChange) Normalize() {
	if p.NewPassword1 == "" {
		p.NewPassword1 = p.NewPassword1Camel
	}
	if p.NewPassword2 == "" {
		p.NewPassword2 = p.NewPassword2Camel
	}
	p.NewPassword1Camel, p.NewPassword2Camel = "", ""
}
