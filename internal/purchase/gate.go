package purchase

import (
	"time"

	"abod-card-app/internal/model"
	"abod-card-app/internal/session"
	"abod-card-app/internal/ui"
)

// GateResult is the outcome of the balance check.
type GateResult struct {
	Allowed bool
	// Shortfall is price minus balance when not allowed.
	Shortfall model.Cents
}

// Gate compares the buyer's locally cached balance against a price. It
// never fetches; the session balance is the only input.
type Gate struct {
	navigator     ui.Navigator
	redirectDelay time.Duration
}

// NewGate creates a balance gate. redirectDelay is how long an
// insufficient-balance message stays on screen before the wallet hint fires.
func NewGate(navigator ui.Navigator, redirectDelay time.Duration) *Gate {
	return &Gate{navigator: navigator, redirectDelay: redirectDelay}
}

// Check validates affordability. Guests pass unconditionally: they hold no
// balance and settle through the support channel instead. On insufficient
// balance it schedules a non-blocking navigation hint toward the wallet
// top-up surface.
func (g *Gate) Check(sess *session.Session, price model.Cents) GateResult {
	if sess.Buyer().Kind() == model.BuyerGuest {
		return GateResult{Allowed: true}
	}

	balance := sess.Balance()
	if balance >= price {
		return GateResult{Allowed: true}
	}

	g.navigator.NavigateAfter(ui.TargetWallet, g.redirectDelay)
	return GateResult{Shortfall: price - balance}
}
