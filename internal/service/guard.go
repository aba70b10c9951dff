package service

import "github.com/maplegrovecc/communityhub/internal/model"

// CheckCapacity decides whether a registration against the resolved listing
// may proceed. It is a pure decision over a point-in-time read: the store
// re-checks atomically when the registration is persisted, so a stale read
// here can only produce a friendlier early rejection, never an overbooking.
//
// listing is nil when the supplied reference did not resolve. requireActive
// additionally rejects inactive listings; by default they still accept
// registrations even though they are hidden from public views.
func CheckCapacity(kind model.ListingKind, listing *model.Listing, requireActive bool) error {
	if listing == nil {
		return &model.ReferenceNotFoundError{Kind: kind}
	}
	if requireActive && !listing.IsActive {
		return &model.ListingClosedError{Kind: kind}
	}
	if listing.IsFull() {
		return &model.CapacityExceededError{Kind: kind}
	}
	return nil
}
