// Package identity resolves the buyer identity for a storefront session:
// a platform-verified bot user, a previously stored guest, or a freshly
// registered guest.
package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"abod-card-app/internal/model"
	"abod-card-app/pkg/uid"
)

// ErrNoIdentity means neither a platform handshake nor a stored guest
// profile was found; the caller must run guest registration.
var ErrNoIdentity = errors.New("no identity available")

// phonePattern is deliberately permissive: 8-20 characters of digits,
// plus sign, spaces and dashes.
var phonePattern = regexp.MustCompile(`^[0-9+\s-]{8,20}$`)

// ValidationError reports a rejected registration input. It is recoverable:
// re-prompt and retry, never fatal.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Store is the durable guest profile storage the resolver reads and writes.
type Store interface {
	Load(ctx context.Context) (model.GuestBuyer, bool, error)
	Save(ctx context.Context, g model.GuestBuyer) error
}

// Resolver determines the buyer identity for the session.
type Resolver struct {
	platformUserID int64
	store          Store
}

// NewResolver creates a resolver. platformUserID is the id from the platform
// handshake, zero when the app was opened outside the bot.
func NewResolver(platformUserID int64, store Store) *Resolver {
	return &Resolver{platformUserID: platformUserID, store: store}
}

// Resolve returns the session identity. Resolution order, first match wins:
// verified platform handshake, then stored guest profile. With neither it
// returns ErrNoIdentity and the caller must invoke RegisterGuest.
// Resolving again in the same session yields an identical identity.
func (r *Resolver) Resolve(ctx context.Context) (model.BuyerIdentity, error) {
	if r.platformUserID > 0 {
		return model.NewPlatformIdentity(r.platformUserID), nil
	}

	guest, ok, err := r.store.Load(ctx)
	if err != nil {
		return model.BuyerIdentity{}, fmt.Errorf("loading guest profile: %w", err)
	}
	if ok {
		return model.NewGuestIdentity(guest), nil
	}

	return model.BuyerIdentity{}, ErrNoIdentity
}

// RegisterGuest validates the collected contact details, generates a guest
// id, persists the profile and returns the new guest identity.
func (r *Resolver) RegisterGuest(ctx context.Context, name, phone string) (model.BuyerIdentity, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Guest"
	}

	if phone == "" {
		return model.BuyerIdentity{}, &ValidationError{Field: "phone", Reason: "phone number is required"}
	}
	if !phonePattern.MatchString(phone) {
		return model.BuyerIdentity{}, &ValidationError{Field: "phone", Reason: "must be 8-20 characters of digits, +, spaces or dashes"}
	}

	guest := model.GuestBuyer{
		GuestID:   uid.NewGuestID(),
		FirstName: name,
		Phone:     phone,
		IsGuest:   true,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.store.Save(ctx, guest); err != nil {
		return model.BuyerIdentity{}, fmt.Errorf("saving guest profile: %w", err)
	}

	return model.NewGuestIdentity(guest), nil
}
