// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Access is the minimum caller level required for a catalog operation.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessStaff
	// AccessNone disables the operation for everybody.
	AccessNone
)

// CatalogResource describes one reference-data collection served under
// /api/v1/{Name}/. Every resource row also carries id, created_at and
// updated_at, which are rendered but never written by clients.
type CatalogResource struct {
	// Name is the URL segment of the collection.
	Name string

	Table  string
	Fields []Field

	Read  Access
	Write Access

	// OwnerColumn, when set, is filled with the caller's user id on create,
	// and non-staff callers may only change or delete rows they own.
	OwnerColumn string

	Children []CatalogChild
}

// CatalogChild embeds rows of another resource into each parent row.
type CatalogChild struct {
	// JSON is the name of the embedded array in the parent record.
	JSON string

	// Resource is the Name of the child resource.
	Resource string

	// ForeignKey is the child column referencing the parent id.
	ForeignKey string
}

// Field returns the field with the given API name.
func (r CatalogResource) Field(jsonName string) (Field, bool) {
	for _, f := range r.Fields {
		if f.JSON == jsonName {
			return f, true
		}
	}
	return Field{}, false
}

// CatalogResources lists every reference-data collection.
var CatalogResources = []CatalogResource{
	{
		Name:  "codeschools",
		Table: "code_schools",
		Fields: []Field{
			{JSON: "name", Column: "name", Kind: FieldString, MaxLength: 256},
			{JSON: "url", Column: "url", Kind: FieldString, MaxLength: 256},
			{JSON: "logo", Column: "logo", Kind: FieldString, MaxLength: 256},
			{JSON: "fullTime", Column: "full_time", Kind: FieldBool},
			{JSON: "hardwareIncluded", Column: "hardware_included", Kind: FieldBool},
			{JSON: "hasOnline", Column: "has_online", Kind: FieldBool},
			{JSON: "hasHousing", Column: "has_housing", Kind: FieldBool},
			{JSON: "onlineOnly", Column: "online_only", Kind: FieldBool},
			{JSON: "notes", Column: "notes", Kind: FieldText},
			{JSON: "mooc", Column: "mooc", Kind: FieldBool},
			{JSON: "isPartner", Column: "is_partner", Kind: FieldBool},
			{JSON: "repName", Column: "rep_name", Kind: FieldString, MaxLength: 256},
			{JSON: "repEmail", Column: "rep_email", Kind: FieldString, MaxLength: 256},
			{JSON: "isVetTecApproved", Column: "is_vet_tec_approved", Kind: FieldBool},
		},
		Read:     AccessPublic,
		Write:    AccessStaff,
		Children: []CatalogChild{{JSON: "locations", Resource: "locations", ForeignKey: "code_school_id"}},
	},
	{
		Name:  "locations",
		Table: "locations",
		Fields: []Field{
			{JSON: "vaAccepted", Column: "va_accepted", Kind: FieldBool},
			{JSON: "address1", Column: "address1", Kind: FieldString, MaxLength: 256},
			{JSON: "address2", Column: "address2", Kind: FieldString, MaxLength: 256},
			{JSON: "city", Column: "city", Kind: FieldString, MaxLength: 256},
			{JSON: "state", Column: "state", Kind: FieldString, MaxLength: 256},
			{JSON: "zip", Column: "zip", Kind: FieldInt},
			{JSON: "codeSchool", Column: "code_school_id", Kind: FieldInt},
		},
		Read:  AccessPublic,
		Write: AccessStaff,
	},
	{
		Name:  "scholarships",
		Table: "scholarships",
		Fields: []Field{
			{JSON: "name", Column: "name", Kind: FieldString, MaxLength: 256},
			{JSON: "description", Column: "description", Kind: FieldText},
			{JSON: "location", Column: "location", Kind: FieldString, MaxLength: 256},
			{JSON: "terms", Column: "terms", Kind: FieldText},
			{JSON: "openTime", Column: "open_time", Kind: FieldTime},
			{JSON: "closeTime", Column: "close_time", Kind: FieldTime},
		},
		Read:  AccessPublic,
		Write: AccessStaff,
	},
	{
		Name:  "scholarshipApplications",
		Table: "scholarship_applications",
		Fields: []Field{
			{JSON: "reason", Column: "reason", Kind: FieldText},
			{JSON: "termsAccepted", Column: "terms_accepted", Kind: FieldBool},
			{JSON: "user", Column: "user_id", Kind: FieldInt, ReadOnly: true},
			{JSON: "scholarship", Column: "scholarship_id", Kind: FieldInt},
		},
		Read:        AccessStaff,
		Write:       AccessAuthenticated,
		OwnerColumn: "user_id",
	},
	{
		Name:  "teamMembers",
		Table: "team_members",
		Fields: []Field{
			{JSON: "name", Column: "name", Kind: FieldString, MaxLength: 256},
			{JSON: "role", Column: "role", Kind: FieldString, MaxLength: 256},
			{JSON: "description", Column: "description", Kind: FieldText},
			{JSON: "group", Column: "group_name", Kind: FieldString, MaxLength: 256},
			{JSON: "imageSrc", Column: "image_src", Kind: FieldString, MaxLength: 256},
			{JSON: "email", Column: "email", Kind: FieldString, MaxLength: 255},
		},
		Read:  AccessPublic,
		Write: AccessNone,
	},
	{
		Name:  "resources",
		Table: "resources",
		Fields: []Field{
			{JSON: "name", Column: "name", Kind: FieldString, MaxLength: 256},
			{JSON: "url", Column: "url", Kind: FieldString, MaxLength: 256},
			{JSON: "category", Column: "category", Kind: FieldString, MaxLength: 256},
			{JSON: "language", Column: "language", Kind: FieldString, MaxLength: 256},
			{JSON: "paid", Column: "paid", Kind: FieldBool},
			{JSON: "notes", Column: "notes", Kind: FieldText},
		},
		Read:  AccessPublic,
		Write: AccessStaff,
	},
	{
		Name:  "events",
		Table: "events",
		Fields: []Field{
			{JSON: "name", Column: "name", Kind: FieldString, MaxLength: 256},
			{JSON: "description", Column: "description", Kind: FieldText},
			{JSON: "url", Column: "url", Kind: FieldString, MaxLength: 256},
			{JSON: "startDate", Column: "start_date", Kind: FieldTime},
			{JSON: "endDate", Column: "end_date", Kind: FieldTime},
			{JSON: "address1", Column: "address1", Kind: FieldString, MaxLength: 256},
			{JSON: "address2", Column: "address2", Kind: FieldString, MaxLength: 256},
			{JSON: "city", Column: "city", Kind: FieldString, MaxLength: 256},
			{JSON: "state", Column: "state", Kind: FieldString, MaxLength: 256},
			{JSON: "zip", Column: "zip", Kind: FieldString, MaxLength: 16},
		},
		Read:  AccessPublic,
		Write: AccessStaff,
	},
	{
		Name:  "tags",
		Table: "tags",
		Fields: []Field{
			{JSON: "name", Column: "name", Kind: FieldString, MaxLength: 128},
		},
		Read:  AccessPublic,
		Write: AccessStaff,
	},
	{
		Name:  "gitHubUsers",
		Table: "github_users",
		Fields: []Field{
			{JSON: "login", Column: "login", Kind: FieldString, MaxLength: 256},
			{JSON: "avatarUrl", Column: "avatar_url", Kind: FieldString, MaxLength: 512},
			{JSON: "apiUrl", Column: "api_url", Kind: FieldString, MaxLength: 512},
			{JSON: "htmlUrl", Column: "html_url", Kind: FieldString, MaxLength: 512},
		},
		Read:  AccessPublic,
		Write: AccessStaff,
	},
	{
		Name:  "gitHubStatistics",
		Table: "github_statistics",
		Fields: []Field{
			{JSON: "sourceId", Column: "source_id", Kind: FieldString, MaxLength: 256},
			{JSON: "sourceType", Column: "source_type", Kind: FieldString, MaxLength: 16},
			{JSON: "state", Column: "state", Kind: FieldString, MaxLength: 16},
			{JSON: "additions", Column: "additions", Kind: FieldInt},
			{JSON: "deletions", Column: "deletions", Kind: FieldInt},
			{JSON: "repository", Column: "repository", Kind: FieldString, MaxLength: 256},
			{JSON: "url", Column: "url", Kind: FieldString, MaxLength: 512},
			{JSON: "title", Column: "title", Kind: FieldString, MaxLength: 512},
			{JSON: "number", Column: "number", Kind: FieldInt},
			{JSON: "completedOn", Column: "completed_on", Kind: FieldTime},
			{JSON: "gitHubUser", Column: "github_user_id", Kind: FieldInt},
		},
		Read:  AccessPublic,
		Write: AccessStaff,
	},
	{
		Name:  "votes",
		Table: "votes",
		Fields: []Field{
			{JSON: "resource", Column: "resource_id", Kind: FieldInt},
			{JSON: "user", Column: "user_id", Kind: FieldInt, ReadOnly: true},
			{JSON: "upvote", Column: "upvote", Kind: FieldBool},
		},
		Read:        AccessPublic,
		Write:       AccessAuthenticated,
		OwnerColumn: "user_id",
	},
}

// LookupCatalogResource returns the resource served under name.
func LookupCatalogResource(name string) (CatalogResource, bool) {
	for _, r := range CatalogResources {
		if r.Name == name {
			return r, true
		}
	}
	return CatalogResource{}, false
}
