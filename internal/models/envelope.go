package models

import "encoding/json"

// FieldError is a single field-level validation failure from the backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the uniform response wrapper every backend endpoint uses:
// {success, statusCode, message, data?, errors?, timestamp}. Data is kept
// raw so each caller can decode it into its own typed payload.
type Envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	Errors     []FieldError    `json:"errors,omitempty"`
	Timestamp  string          `json:"timestamp"`
}

// DecodeData unmarshals the envelope payload into out. A nil or empty
// payload leaves out untouched and returns nil.
func (e *Envelope) DecodeData(out any) error {
	if out == nil || len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, out)
}
