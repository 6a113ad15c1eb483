// Package session holds the per-session buyer context: the resolved
// identity, the locally cached balance and the buyer's order history.
package session

import (
	"context"
	"fmt"
	"sort"

	"abod-card-app/internal/model"
	"abod-card-app/internal/shopapi"
)

// Hydrator is the slice of the backend client the session reads from.
type Hydrator interface {
	Users(ctx context.Context) ([]shopapi.User, error)
	Orders(ctx context.Context) ([]model.Order, error)
}

// Session is the storefront session state. All mutation happens on the
// single UI flow; the balance is a locally cached copy, never fetched
// synchronously during a purchase.
type Session struct {
	buyer       model.BuyerIdentity
	balance     model.Cents
	ordersCount int
	orders      []model.Order
}

// New creates a session for the resolved buyer. Balance and order history
// are zero until Hydrate runs.
func New(buyer model.BuyerIdentity) *Session {
	return &Session{buyer: buyer}
}

// Buyer returns the session identity.
func (s *Session) Buyer() model.BuyerIdentity {
	return s.buyer
}

// Balance returns the cached balance. Guests always have zero.
func (s *Session) Balance() model.Cents {
	return s.balance
}

// OrdersCount returns the backend-reported order count.
func (s *Session) OrdersCount() int {
	return s.ordersCount
}

// Orders returns the buyer's order history, newest first.
func (s *Session) Orders() []model.Order {
	out := make([]model.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Debit decrements the cached balance copy. Called optimistically after a
// successful purchase; the backend owns the authoritative balance.
func (s *Session) Debit(amount model.Cents) {
	s.balance -= amount
	if s.balance < 0 {
		s.balance = 0
	}
}

// Hydrate loads balance, order count and order history for platform buyers.
// Guests have no backend record, so their session stays empty.
func (s *Session) Hydrate(ctx context.Context, backend Hydrator) error {
	platform := s.buyer.Platform
	if platform == nil {
		return nil
	}

	users, err := backend.Users(ctx)
	if err != nil {
		return fmt.Errorf("hydrating user: %w", err)
	}
	for _, u := range users {
		if u.TelegramID == platform.TelegramID {
			s.balance = model.CentsFromDollars(u.Balance)
			s.ordersCount = u.OrdersCount
			break
		}
	}

	orders, err := backend.Orders(ctx)
	if err != nil {
		return fmt.Errorf("hydrating orders: %w", err)
	}
	s.orders = s.orders[:0]
	for _, o := range orders {
		if o.TelegramID == platform.TelegramID {
			s.orders = append(s.orders, o)
		}
	}
	sort.Slice(s.orders, func(i, j int) bool {
		return s.orders[i].OrderDate.After(s.orders[j].OrderDate)
	})
	return nil
}
