package services

import "errors"

// Error taxonomy shared by services and mapped to HTTP status codes in the
// handlers layer.
var (
	// ErrNotFound covers scope misses and ownership mismatches. Ownership
	// mismatches deliberately surface as 404 rather than 403 so tenants
	// cannot probe for resources they do not own.
	ErrNotFound = errors.New("resource not found")

	ErrInvalidCategory      = errors.New("invalid category")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrUnreadableDocument   = errors.New("document could not be read")
	ErrEmptyDocument        = errors.New("document contains no readable text")

	// ErrGenerationUnavailable is any transport-level failure reaching the
	// generation backend.
	ErrGenerationUnavailable = errors.New("generation backend unavailable")

	// ErrMalformedGenerationOutput means the backend answered but the reply
	// was not parseable JSON.
	ErrMalformedGenerationOutput = errors.New("generation output was not valid JSON")

	// ErrNoValidItems means the JSON parsed but nothing matched the declared
	// schema. Still an upstream contract failure, not an empty success.
	ErrNoValidItems = errors.New("no valid items in generation output")
)
