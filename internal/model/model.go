// Package model defines the core domain types for the community hub:
// capacity-bearing listings (events, programs, trips) and the registrations
// filed against them.
package model

import "time"

// ListingKind tags a Listing as an event, program, or trip. The three kinds
// share one capacity-bearing shape and differ only in how the site presents
// them.
type ListingKind string

const (
	KindEvent   ListingKind = "event"
	KindProgram ListingKind = "program"
	KindTrip    ListingKind = "trip"
)

// Kinds returns every listing kind in stable order.
func Kinds() []ListingKind {
	return []ListingKind{KindEvent, KindProgram, KindTrip}
}

// Valid reports whether k is a known listing kind.
func (k ListingKind) Valid() bool {
	switch k {
	case KindEvent, KindProgram, KindTrip:
		return true
	}
	return false
}

// Label returns the capitalized display name used in API messages,
// e.g. "Event is full".
func (k ListingKind) Label() string {
	switch k {
	case KindEvent:
		return "Event"
	case KindProgram:
		return "Program"
	case KindTrip:
		return "Trip"
	}
	return "Listing"
}

// Path returns the URL segment for the kind's API collection.
func (k ListingKind) Path() string {
	switch k {
	case KindEvent:
		return "events"
	case KindProgram:
		return "programs"
	case KindTrip:
		return "trips"
	}
	return ""
}

// Listing is a capacity-bearing entity the public can register for.
type Listing struct {
	ID              string      `json:"id"`
	Kind            ListingKind `json:"kind"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Location        string      `json:"location,omitempty"`
	StartDate       *time.Time  `json:"startDate,omitempty"`
	EndDate         *time.Time  `json:"endDate,omitempty"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	Capacity        int         `json:"capacity"`
	RegisteredCount int         `json:"registeredCount"`
	IsActive        bool        `json:"isActive"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Remaining returns the number of open spots.
func (l *Listing) Remaining() int {
	return l.Capacity - l.RegisteredCount
}

// IsFull returns true when no spots remain.
func (l *Listing) IsFull() bool {
	return l.RegisteredCount >= l.Capacity
}

// ParticipationType distinguishes participants from volunteers.
type ParticipationType string

const (
	Participant ParticipationType = "participant"
	Volunteer   ParticipationType = "volunteer"
)

// Valid reports whether t is a known participation type.
func (t ParticipationType) Valid() bool {
	return t == Participant || t == Volunteer
}

// RegistrationStatus is the admin-managed state of a registration.
// Every status is reachable from every other status: transitions are an
// administrative correction tool, not a workflow engine, so none are guarded.
type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusConfirmed RegistrationStatus = "confirmed"
	StatusCancelled RegistrationStatus = "cancelled"
)

// Valid reports whether s is a known registration status.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Registration is a contact's signup against a listing, or a standalone
// general-interest signup when no listing reference is set.
//
// At most one of EventID/ProgramID/TripID is set by convention. The store
// does not enforce mutual exclusivity; the capacity guard checks each
// supplied reference independently.
type Registration struct {
	ID                string             `json:"id"`
	EventID           *string            `json:"eventId,omitempty"`
	ProgramID         *string            `json:"programId,omitempty"`
	TripID            *string            `json:"tripId,omitempty"`
	FirstName         string             `json:"firstName"`
	LastName          string             `json:"lastName"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone"`
	Notes             string             `json:"notes,omitempty"`
	ParticipationType ParticipationType  `json:"participationType"`
	Status            RegistrationStatus `json:"status"`
	IsArchived        bool               `json:"isArchived"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// FullName returns the contact's display name.
func (r *Registration) FullName() string {
	return r.FirstName + " " + r.LastName
}

// Reference pairs a listing kind with the id a registration points at.
type Reference struct {
	Kind ListingKind
	ID   string
}

// References returns the listing references carried by the registration, in
// stable event/program/trip order. Empty for general-interest registrations.
func (r *Registration) References() []Reference {
	var refs []Reference
	if r.EventID != nil {
		refs = append(refs, Reference{Kind: KindEvent, ID: *r.EventID})
	}
	if r.ProgramID != nil {
		refs = append(refs, Reference{Kind: KindProgram, ID: *r.ProgramID})
	}
	if r.TripID != nil {
		refs = append(refs, Reference{Kind: KindTrip, ID: *r.TripID})
	}
	return refs
}

// CreateListingRequest is the admin payload for creating a listing.
// The kind comes from the route, never the body.
type CreateListingRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	ImageURL    string     `json:"imageUrl"`
	Capacity    int        `json:"capacity"`
	IsActive    *bool      `json:"isActive"`
}

// UpdateListingRequest is a partial-field merge: only non-nil fields change.
type UpdateListingRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	ImageURL    *string    `json:"imageUrl"`
	Capacity    *int       `json:"capacity"`
	IsActive    *bool      `json:"isActive"`
}

// CreateRegistrationRequest is the public intake payload.
type CreateRegistrationRequest struct {
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Notes             string  `json:"notes"`
	ParticipationType string  `json:"participationType"`
	EventID           *string `json:"eventId"`
	ProgramID         *string `json:"programId"`
	TripID            *string `json:"tripId"`
}

// UpdateRegistrationRequest is the admin payload for lifecycle changes.
// Only non-nil fields change.
type UpdateRegistrationRequest struct {
	Status     *string `json:"status"`
	IsArchived *bool   `json:"isArchived"`
	Notes      *string `json:"notes"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
