package model

import "time"

// BuyerIdentity is the tagged union of the two actor classes the storefront
// serves. Exactly one of Platform or Guest is non-nil; use Kind or an
// exhaustive switch on the pointers at every branch point.
type BuyerIdentity struct {
	Platform *PlatformBuyer
	Guest    *GuestBuyer
}

// PlatformBuyer is a bot user verified through the platform handshake.
type PlatformBuyer struct {
	TelegramID int64
}

// GuestBuyer is an anonymous buyer identified by a locally generated id.
// Guests have no balance and are routed to human support for fulfillment.
type GuestBuyer struct {
	GuestID   string    `json:"guest_id"`
	FirstName string    `json:"first_name"`
	Phone     string    `json:"phone"`
	IsGuest   bool      `json:"is_guest"`
	CreatedAt time.Time `json:"created_at"`
}

// BuyerKind discriminates BuyerIdentity variants.
type BuyerKind int

const (
	BuyerPlatform BuyerKind = iota
	BuyerGuest
)

// Kind returns the identity class. A BuyerIdentity is only constructed by the
// identity resolver, so one of the two variants is always set.
func (b BuyerIdentity) Kind() BuyerKind {
	if b.Guest != nil {
		return BuyerGuest
	}
	return BuyerPlatform
}

// DisplayName returns the name shown in greetings and order summaries.
func (b BuyerIdentity) DisplayName() string {
	if b.Guest != nil {
		return b.Guest.FirstName
	}
	return ""
}

// NewPlatformIdentity wraps a verified platform user id.
func NewPlatformIdentity(telegramID int64) BuyerIdentity {
	return BuyerIdentity{Platform: &PlatformBuyer{TelegramID: telegramID}}
}

// NewGuestIdentity wraps a guest profile.
func NewGuestIdentity(g GuestBuyer) BuyerIdentity {
	g.IsGuest = true
	return BuyerIdentity{Guest: &g}
}
