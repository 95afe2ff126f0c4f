package domain

import "errors"

var (
	// ErrAuthFailure is returned by Login/Register when the identity provider rejects the call.
	ErrAuthFailure = errors.New("authentication failed")

	// ErrAlreadyAuthenticated is returned by Login/Register when a session is already active.
	ErrAlreadyAuthenticated = errors.New("already authenticated")

	ErrInvalidInput = errors.New("invalid input")
)
