package domain

import "errors"

var (
	// ErrInvalidCredentials is returned when a signin exchange is rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired marks a 401 on an authenticated call. It triggers
	// the forced-logout path; it is never returned by the signin call itself.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden marks a 403: authenticated but lacking the required role.
	// It must never be conflated with ErrSessionExpired.
	ErrForbidden = errors.New("access forbidden")
	// ErrNotFound maps a 404 from any catalog endpoint.
	ErrNotFound = errors.New("resource not found")
	// ErrUserExists maps a 409 from the signup endpoint.
	ErrUserExists = errors.New("user already exists")
	// ErrNoSession is returned by operations that require a live session
	// when none is present.
	ErrNoSession = errors.New("no active session")
	// ErrKeyNotFound is returned by credential storage backends for an
	// absent entry.
	ErrKeyNotFound = errors.New("storage key not found")
)
