package models

import "time"

// Profile is the one-to-one extension of [User] holding membership data
// unrelated to authentication. Every field except the bookkeeping ones is
// optional because the profile is filled in progressively after signup.
type Profile struct {
	UserID int64 `json:"-"`

	Zipcode          *string    `json:"zipcode"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	RememberCreated  *time.Time `json:"rememberCreatedAt"`
	SignInCount      *int64     `json:"signInCount"`
	IsMentor         *bool      `json:"isMentor"`
	Timezone         *string    `json:"timezone"`
	Bio              *string    `json:"bio"`
	Verified         bool       `json:"verified"`
	State            *string    `json:"state"`
	Address1         *string    `json:"address1"`
	Address2         *string    `json:"address2"`
	City             *string    `json:"city"`
	IsVolunteer      *bool      `json:"isVolunteer"`
	BranchOfService  *string    `json:"branchOfService"`
	YearsOfService   *float64   `json:"yearsOfService"`
	PayGrade         *string    `json:"payGrade"`
	MilitaryMOS      *string    `json:"militaryOccupationalSpecialty"`
	GitHub           *string    `json:"github"`
	Twitter          *string    `json:"twitter"`
	LinkedIn         *string    `json:"linkedin"`
	EmploymentStatus *string    `json:"employmentStatus"`
	Education        *string    `json:"education"`
	CompanyRole      *string    `json:"companyRole"`
	CompanyName      *string    `json:"companyName"`
	EducationLevel   *string    `json:"educationLevel"`
	Interests        *string    `json:"interests"`
	WantsScholarship *bool      `json:"wantsScholarshipInfo"`
	RoleID           *int64     `json:"roleId"`
	MilitaryStatus   *string    `json:"militaryStatus"`
	Languages        *string    `json:"programmingLanguages"`
	Disciplines      *string    `json:"disciplines"`
	SlackID          string     `json:"slackId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}

// ProfileFields maps writable and readable profile attributes between the
// API and the profiles table. The order matches the column order used when
// scanning profile rows.
var ProfileFields = []Field{
	{JSON: "zipcode", Column: "zipcode", Kind: FieldString, MaxLength: 256},
	{JSON: "latitude", Column: "latitude", Kind: FieldFloat},
	{JSON: "longitude", Column: "longitude", Kind: FieldFloat},
	{JSON: "rememberCreatedAt", Column: "remember_created_at", Kind: FieldTime},
	{JSON: "signInCount", Column: "sign_in_count", Kind: FieldInt, ReadOnly: true},
	{JSON: "isMentor", Column: "is_mentor", Kind: FieldBool},
	{JSON: "timezone", Column: "timezone", Kind: FieldString, MaxLength: 256},
	{JSON: "bio", Column: "bio", Kind: FieldText},
	{JSON: "verified", Column: "verified", Kind: FieldBool},
	{JSON: "state", Column: "state", Kind: FieldString, MaxLength: 256},
	{JSON: "address1", Column: "address_1", Kind: FieldString, MaxLength: 256},
	{JSON: "address2", Column: "address_2", Kind: FieldString, MaxLength: 256},
	{JSON: "city", Column: "city", Kind: FieldString, MaxLength: 256},
	{JSON: "isVolunteer", Column: "is_volunteer", Kind: FieldBool},
	{JSON: "branchOfService", Column: "branch_of_service", Kind: FieldString, MaxLength: 256},
	{JSON: "yearsOfService", Column: "years_of_service", Kind: FieldFloat},
	{JSON: "payGrade", Column: "pay_grade", Kind: FieldString, MaxLength: 256},
	{JSON: "militaryOccupationalSpecialty", Column: "military_occupational_specialty", Kind: FieldString, MaxLength: 256},
	{JSON: "github", Column: "github", Kind: FieldString, MaxLength: 256},
	{JSON: "twitter", Column: "twitter", Kind: FieldString, MaxLength: 256},
	{JSON: "linkedin", Column: "linkedin", Kind: FieldString, MaxLength: 256},
	{JSON: "employmentStatus", Column: "employment_status", Kind: FieldString, MaxLength: 256},
	{JSON: "education", Column: "education", Kind: FieldString, MaxLength: 256},
	{JSON: "companyRole", Column: "company_role", Kind: FieldString, MaxLength: 256},
	{JSON: "companyName", Column: "company_name", Kind: FieldString, MaxLength: 256},
	{JSON: "educationLevel", Column: "education_level", Kind: FieldString, MaxLength: 256},
	{JSON: "interests", Column: "interests", Kind: FieldString, MaxLength: 256},
	{JSON: "wantsScholarshipInfo", Column: "wants_scholarship_info", Kind: FieldBool},
	{JSON: "roleId", Column: "role_id", Kind: FieldInt},
	{JSON: "militaryStatus", Column: "military_status", Kind: FieldString, MaxLength: 256},
	{JSON: "programmingLanguages", Column: "programming_languages", Kind: FieldString, MaxLength: 256},
	{JSON: "disciplines", Column: "disciplines", Kind: FieldString, MaxLength: 256},
	{JSON: "slackId", Column: "slack_id", Kind: FieldString, MaxLength: 16},
}
