package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRepoURL indicates a repository URL could not be parsed.
	ErrInvalidRepoURL = errors.New("invalid repository URL")

	// ErrInvalidSnowflake indicates a malformed snowflake identifier.
	ErrInvalidSnowflake = errors.New("invalid snowflake")

	// Authentication Errors.

	// ErrAuthRequired indicates an operation requires a token but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the supplied token was rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// Collection Errors.

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrRetriesExhausted indicates a request failed after all retry attempts.
	// Collection runs treat this as a skip, not a fatal error.
	ErrRetriesExhausted = errors.New("retries exhausted")
)
