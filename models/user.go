package models

import "time"

// User represents an authenticable member account.
// The email doubles as the login name and is unique case-insensitively.
// PasswordHash is a bcrypt digest and is never serialized.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Email is the login name of the user.
	Email string `json:"email"`

	// Username mirrors Email for accounts created through registration.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	IsActive    bool `json:"-"`
	IsStaff     bool `json:"-"`
	IsSuperuser bool `json:"-"`

	// DateJoined is the timestamp when the account was created.
	DateJoined time.Time `json:"dateJoined"`

	// LastLogin is updated on every successful login. It also feeds the
	// password reset token fingerprint, so a login invalidates older links.
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate carries the identity fields a member may change about
// themselves. Nil fields are left untouched.
type UserUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil
}

// UserDetails is the representation returned by the user endpoint: identity
// fields plus the nested profile.
type UserDetails struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Zipcode   *string  `json:"zipcode"`
	IsMentor  *bool    `json:"isMentor"`
	Profile   *Profile `json:"profile,omitempty"`
}

// NewUserDetails flattens user and its optional profile into [UserDetails].
func NewUserDetails(user User, profile *Profile) UserDetails {
	details := UserDetails{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Profile:   profile,
	}
	if profile != nil {
		details.Zipcode = profile.Zipcode
		details.IsMentor = profile.IsMentor
	}

	return details
}

// EmailAddress tracks verification state of an address owned by a user.
type EmailAddress struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Primary  bool   `json:"primary"`
}
