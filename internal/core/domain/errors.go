package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrIndexing indicates a normalization/indexing pass failed; the
	// previous index, if any, is left in place
	ErrIndexing = errors.New("indexing failed")

	// ErrNotIndexed indicates a search was attempted before the first
	// successful indexing pass
	ErrNotIndexed = errors.New("search index not ready")

	// ErrSearchExecution indicates an unexpected failure during
	// filtering, scoring or sorting
	ErrSearchExecution = errors.New("search execution failed")

	// ErrPersistence indicates the history/popularity store failed to
	// load or save; callers treat this as non-fatal
	ErrPersistence = errors.New("persistence failed")

	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")
)
