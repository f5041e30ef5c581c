// Package login provides the HTTP handler for user authentication.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrInvalidRequestBody is returned when the submitted login payload cannot
	// be parsed or misses a credential field.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidCredentials is returned when the provided username and/or
	// password are not valid.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInternalServerError is returned for unexpected failures during the
	// login process.
	ErrInternalServerError = errors.New("internal server error")
)
