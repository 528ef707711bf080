// Package common holds small helpers and wire constants shared by the folio
// client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer session id on authenticated
	// backend calls.
	AuthorizationHeaderName = "Authorization"

	// ContentTypeTextPlain is sent instead of application/json so the script
	// backend accepts the POST without a CORS preflight.
	ContentTypeTextPlain = "text/plain;charset=UTF-8"

	// SessionIDBytes is the amount of randomness behind a session id.
	SessionIDBytes = 32
)
