package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured   = errors.New("backend endpoint is not configured")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrMissingUserData = errors.New("authentication failed: missing user data in response")
	ErrNoSession       = errors.New("no valid session found")
	ErrSessionExpired  = errors.New("session expired, please login again")
	ErrActionFailed    = errors.New("backend action failed")
)

// AuthError carries the message the backend returned for a rejected login.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Is(target error) bool { return target == ErrAuthFailed }

// ActionError is an authenticated action answered with success=false.
type ActionError struct {
	Action  string
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

func (e *ActionError) Is(target error) bool { return target == ErrActionFailed }
