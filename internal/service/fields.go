// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-membership/internal/validators"
	"github.com/MKhiriev/go-membership/models"
)

// Field decoding messages.
const (
	MsgNotAString     = "Not a valid string."
	MsgNotAnInteger   = "A valid integer is required."
	MsgNotANumber     = "A valid number is required."
	MsgNotABoolean    = "Must be a valid boolean."
	MsgInvalidDateFmt = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
)

var jsonNull = []byte("null")

// decodeFields turns raw input into column changes using the fields table.
// Unknown and read-only attributes are ignored. JSON null clears a column.
// All failing attributes are reported together.
func decodeFields(fields []models.Field, input models.Input) (models.Changes, error) {
	changes := make(models.Changes, len(input))
	verr := validators.NewValidationError()

	for _, f := range fields {
		raw, ok := input[f.JSON]
		if !ok || f.ReadOnly {
			continue
		}

		value, msg := decodeField(f, raw)
		if msg != "" {
			verr.AddField(f.JSON, msg)
			continue
		}
		changes[f.Column] = value
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}

	return changes, nil
}

// decodeField returns the column value for raw or a validation message.
func decodeField(f models.Field, raw json.RawMessage) (any, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil, ""
	}

	switch f.Kind {
	case models.FieldString, models.FieldText:
		return decodeString(f, raw)
	case models.FieldInt:
		return decodeInt(raw)
	case models.FieldFloat:
		return decodeFloat(raw)
	case models.FieldBool:
		return decodeBool(raw)
	case models.FieldTime:
		return decodeTime(raw)
	default:
		return nil, fmt.Sprintf("Unsupported field kind %s.", f.Kind)
	}
}

func decodeString(f models.Field, raw json.RawMessage) (any, string) {
	var s string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, MsgNotAString
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, MsgNotAString
		}
		s = n.String()
	default:
		return nil, MsgNotAString
	}

	if f.MaxLength > 0 && utf8.RuneCountInString(s) > f.MaxLength {
		return nil, fmt.Sprintf(validators.MsgTooLong, f.MaxLength)
	}

	return s, ""
}

// numberText extracts the text of a JSON number or a numeric JSON string.
func numberText(raw json.RawMessage) (string, bool) {
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		s = strings.TrimSpace(s)
		return s, s != ""
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n.String(), true
}

func decodeInt(raw json.RawMessage) (any, string) {
	text, ok := numberText(raw)
	if !ok {
		return nil, MsgNotAnInteger
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, ""
	}

	// 3.0 is an integer, 3.5 is not.
	fl, err := strconv.ParseFloat(text, 64)
	if err != nil || fl != math.Trunc(fl) || fl >= math.MaxInt64 || fl < math.MinInt64 {
		return nil, MsgNotAnInteger
	}

	return int64(fl), ""
}

func decodeFloat(raw json.RawMessage) (any, string) {
	text, ok := numberText(raw)
	if !ok {
		return nil, MsgNotANumber
	}

	fl, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(fl) || math.IsInf(fl, 0) {
		return nil, MsgNotANumber
	}

	return fl, ""
}

func decodeBool(raw json.RawMessage) (any, string) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, ""
	}

	text, ok := numberText(raw)
	if !ok {
		return nil, MsgNotABoolean
	}

	switch strings.ToLower(text) {
	case "true", "1", "yes", "on":
		return true, ""
	case "false", "0", "no", "off":
		return false, ""
	default:
		return nil, MsgNotABoolean
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func decodeTime(raw json.RawMessage) (any, string) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, MsgInvalidDateFmt
	}

	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), ""
		}
	}

	return nil, MsgInvalidDateFmt
}
