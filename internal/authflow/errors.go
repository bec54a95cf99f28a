package authflow

import (
	"errors"
	"fmt"
)

var (
	ErrAuthorizationDenied      = errors.New("authorization denied")
	ErrMissingAuthorizationCode = errors.New("missing authorization code")
	ErrCsrfValidationFailed     = errors.New("csrf validation failed")
	ErrTokenExchangeFailed      = errors.New("token exchange failed")
	ErrVerificationFailed       = errors.New("verification failed")
	ErrRefreshFailed            = errors.New("refresh failed")
)

// CallbackError describes why a callback could not complete. Kind is one of
// the package sentinels and matches with errors.Is.
type CallbackError struct {
	Kind          error
	ProviderError string
	Description   string
	Err           error
}

func (e *CallbackError) Error() string {
	msg := e.Kind.Error()
	if e.ProviderError != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.ProviderError)
	}
	if e.Description != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Description)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CallbackError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Code is a stable machine-readable name for Kind.
func (e *CallbackError) Code() string {
	switch e.Kind {
	case ErrAuthorizationDenied:
		return "authorization_denied"
	case ErrMissingAuthorizationCode:
		return "missing_authorization_code"
	case ErrCsrfValidationFailed:
		return "csrf_validation_failed"
	case ErrTokenExchangeFailed:
		return "token_exchange_failed"
	case ErrVerificationFailed:
		return "verification_failed"
	case ErrRefreshFailed:
		return "refresh_failed"
	default:
		return "unknown_error"
	}
}

// Message is text suitable for showing to the user.
func (e *CallbackError) Message() string {
	switch e.Kind {
	case ErrAuthorizationDenied:
		if e.Description != "" {
			return "Threads authorization was denied: " + e.Description
		}
		if e.ProviderError != "" {
			return "Threads authorization was denied: " + e.ProviderError
		}
		return "Threads authorization was denied."
	case ErrMissingAuthorizationCode:
		return "No authorization code was received from Threads."
	case ErrCsrfValidationFailed:
		return "The login request could not be verified. Please try signing in again."
	case ErrTokenExchangeFailed:
		return "We could not complete sign in with Threads. Please try again."
	case ErrVerificationFailed:
		return "Your session could not be verified. Please sign in again."
	case ErrRefreshFailed:
		return "Your session could not be refreshed."
	default:
		return "Authentication failed."
	}
}

func newCallbackError(kind error, err error) *CallbackError {
	return &CallbackError{Kind: kind, Err: err}
}
