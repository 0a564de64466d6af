package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrMovieNotFound indicates the requested movie does not exist
	ErrMovieNotFound = errors.New("movie not found")

	// ErrAPIUnreachable indicates the metadata API could not be reached
	ErrAPIUnreachable = errors.New("movie API is unreachable")

	// ErrUnauthorized indicates the API rejected the access token
	ErrUnauthorized = errors.New("access token is invalid")

	// ErrNoTrailer indicates the movie has no YouTube trailer. This is an
	// expected absence and is rendered as a disabled affordance.
	ErrNoTrailer = errors.New("trailer not available")
)
