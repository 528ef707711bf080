package backend

import (
	"encoding/json"
)

// InvalidSession is the error code the backend uses for unknown or expired
// session ids.
const InvalidSession = "INVALID_SESSION"

// Envelope is the standard backend reply.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     json.RawMessage `json:"error,omitempty"`
	Timestamp float64         `json:"timestamp,omitempty"`

	// Raw is the undecoded reply body.
	Raw json.RawMessage `json:"-"`
}

// ErrorCode returns the machine readable error code from the top-level
// "error" field or from "data.error", whichever is a non-empty string.
func (e *Envelope) ErrorCode() string {
	if code := rawString(e.Error); code != "" {
		return code
	}
	var data struct {
		Error json.RawMessage `json:"error"`
	}
	if len(e.Data) > 0 && json.Unmarshal(e.Data, &data) == nil {
		return rawString(data.Error)
	}
	return ""
}

// DecodeData unmarshals the data field into v. A missing or null data field
// leaves v untouched.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
