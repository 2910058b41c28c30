package models

import "encoding/json"

// FieldKind describes how a JSON value is decoded before it is bound to a
// database column.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldText
	FieldInt
	FieldFloat
	FieldBool
	FieldTime
)

// String returns the human-readable name of the kind used in validation
// messages.
func (k FieldKind) String() string {
	switch k {
	case FieldString, FieldText:
		return "string"
	case FieldInt:
		return "integer"
	case FieldFloat:
		return "number"
	case FieldBool:
		return "boolean"
	case FieldTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Field maps one API attribute to its database column.
//
// The mapping tables built from Field values are the only place where
// camelCase API names are translated to snake_case columns.
type Field struct {
	// JSON is the camelCase name used at the API boundary.
	JSON string

	// Column is the snake_case column name in the database.
	Column string

	Kind FieldKind

	// MaxLength bounds string values; zero means unbounded.
	MaxLength int

	// ReadOnly fields are rendered but never accepted on input.
	ReadOnly bool
}

// Record is a decoded row keyed by API field name.
type Record map[string]any

// Changes are validated column assignments keyed by column name,
// ready to be passed to an UPDATE or INSERT builder.
type Changes map[string]any

// Input is a partially decoded request body: every attribute is kept raw
// until it is matched against its [Field] and decoded by kind.
type Input map[string]json.RawMessage
