package model

// ValidationError reports malformed or missing intake fields, keyed by the
// JSON field name.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// ReferenceNotFoundError means a registration referenced a listing id that
// does not resolve to a stored listing of that kind.
type ReferenceNotFoundError struct {
	Kind ListingKind
}

func (e *ReferenceNotFoundError) Error() string {
	return e.Kind.Label() + " not found"
}

// CapacityExceededError means the referenced listing has no spots left.
type CapacityExceededError struct {
	Kind ListingKind
}

func (e *CapacityExceededError) Error() string {
	return e.Kind.Label() + " is full"
}

// ListingClosedError means the referenced listing is inactive and the server
// is configured to reject registrations against inactive listings.
type ListingClosedError struct {
	Kind ListingKind
}

func (e *ListingClosedError) Error() string {
	return e.Kind.Label() + " is not open for registration"
}
