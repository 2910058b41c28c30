package models

// ErrorResponse is the body of every non-field error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetailResponse is the body of simple acknowledgement responses.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// FieldErrors maps API field names to their validation messages.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}
