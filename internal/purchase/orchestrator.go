// Package purchase implements the order fulfillment flow: it turns the
// intent to buy a catalog variant into a correctly shaped purchase request,
// collecting delivery inputs, gating on the cached balance, confirming with
// the buyer and interpreting the backend outcome. Guest buyers are escalated
// to the human support channel instead of the backend.
package purchase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"abod-card-app/internal/model"
	"abod-card-app/internal/session"
	"abod-card-app/internal/shopapi"
	"abod-card-app/internal/ui"
)

// Submitter is the slice of the backend client the flow submits through.
type Submitter interface {
	Purchase(ctx context.Context, req shopapi.PurchaseRequest) (*shopapi.PurchaseResult, error)
}

// Config holds purchase flow settings.
type Config struct {
	// SupportPhone is the WhatsApp contact guest orders are handed off to.
	SupportPhone string
	// DefaultWindow is the fulfillment estimate shown for pending orders
	// when the backend supplies none.
	DefaultWindow string
	// SubmitTimeout bounds the single network call of the Submitting state.
	SubmitTimeout time.Duration
	// NavigateDelay is how long outcome messages stay on screen before the
	// flow navigates away.
	NavigateDelay time.Duration
}

// Flow runs purchase attempts for one session. Only one attempt may be
// active at a time; a concurrent Buy fails fast with ErrPurchaseInProgress.
type Flow struct {
	backend   Submitter
	dialog    *Dialog
	gate      *Gate
	confirmer ui.Confirmer
	notifier  ui.Notifier
	navigator ui.Navigator
	cfg       Config

	mu sync.Mutex
}

// NewFlow creates the purchase flow for a session.
func NewFlow(backend Submitter, dialog *Dialog, gate *Gate, confirmer ui.Confirmer, notifier ui.Notifier, navigator ui.Navigator, cfg Config) *Flow {
	if cfg.DefaultWindow == "" {
		cfg.DefaultWindow = "10-30 minutes"
	}
	if cfg.SubmitTimeout == 0 {
		cfg.SubmitTimeout = 30 * time.Second
	}
	return &Flow{
		backend:   backend,
		dialog:    dialog,
		gate:      gate,
		confirmer: confirmer,
		notifier:  notifier,
		navigator: navigator,
		cfg:       cfg,
	}
}

// Result is the terminal record of one purchase attempt.
type Result struct {
	State State
	// Outcome is set when the attempt reached the backend (or was rejected
	// before it, with a reason). Nil for plain aborts.
	Outcome *model.PurchaseOutcome
	// Shortfall is set when the balance gate rejected the attempt.
	Shortfall model.Cents
	// Handoff is the support deep link for guest orders. A non-empty
	// Handoff distinguishes the guest hand-off from a plain abort: the flow
	// ended without a backend request, but the order lives on in the
	// support channel.
	Handoff string
}

// Buy runs one purchase attempt to a terminal state. Every attempt starts a
// fresh PurchaseIntent; a Result is returned for every terminal state, an
// error only when the attempt could not run at all.
func (f *Flow) Buy(ctx context.Context, sess *session.Session, variant model.CatalogVariant) (*Result, error) {
	if !f.mu.TryLock() {
		return nil, ErrPurchaseInProgress
	}
	defer f.mu.Unlock()

	o := &orchestrator{
		flow:  f,
		sess:  sess,
		state: StateSelecting,
		intent: model.PurchaseIntent{
			Buyer:   sess.Buyer(),
			Variant: variant,
		},
	}
	return o.run(ctx)
}

// orchestrator is the per-attempt state machine. Discarded after reaching a
// terminal state.
type orchestrator struct {
	flow   *Flow
	sess   *session.Session
	intent model.PurchaseIntent
	state  State
}

func (o *orchestrator) run(ctx context.Context) (*Result, error) {
	f := o.flow

	// Selecting -> CollectingInput, only when the mechanism needs input.
	req := RequirementFor(o.intent.Variant.Delivery)
	if req != RequireNone {
		o.state = StateCollectingInput
		value, err := f.dialog.Collect(ctx, req)
		if err != nil {
			if errors.Is(err, ErrCollectionCancelled) {
				o.state = StateAborted
				return &Result{State: StateAborted}, nil
			}
			return nil, err
		}
		o.intent.CollectedInput = value
	}

	// CheckingBalance: strictly before any network effect.
	o.state = StateCheckingBalance
	gate := f.gate.Check(o.sess, o.intent.Variant.Price)
	if !gate.Allowed {
		o.state = StateRejected
		f.notifier.Notify(ui.NotifyError, fmt.Sprintf(
			"Insufficient balance\nYour balance: %s\nRequired: %s\n\nYou can top up your wallet from the bot",
			o.sess.Balance(), o.intent.Variant.Price))
		return &Result{
			State:     StateRejected,
			Shortfall: gate.Shortfall,
			Outcome:   &model.PurchaseOutcome{Kind: model.OutcomeRejected, Reason: "insufficient balance"},
		}, nil
	}

	// Confirming: an explicit acknowledgment gate, distinct from input
	// collection.
	o.state = StateConfirming
	if !f.confirmer.Confirm(o.summary()) {
		o.state = StateAborted
		return &Result{State: StateAborted}, nil
	}

	if o.intent.Buyer.Kind() == model.BuyerGuest {
		return o.escalate()
	}
	return o.submit(ctx)
}

// summary builds the human-readable confirmation text.
func (o *orchestrator) summary() string {
	v := o.intent.Variant
	s := fmt.Sprintf("Confirm purchase\n\nProduct: %s\nPrice: %s\nDelivery: %s",
		v.Name, v.Price, v.Delivery.Description())
	if o.intent.CollectedInput != "" {
		s += fmt.Sprintf("\nProvided info: %s", o.intent.CollectedInput)
	}
	return s
}

// escalate hands a guest order to the support channel. No backend call, no
// balance mutation; the flow ends aborted-with-handoff.
func (o *orchestrator) escalate() (*Result, error) {
	esc := Escalation{SupportPhone: o.flow.cfg.SupportPhone}
	url := esc.HandoffURL(o.intent)

	o.flow.notifier.Notify(ui.NotifySuccess,
		"Please complete the order via WhatsApp. Support will reply within minutes")

	o.state = StateAborted
	return &Result{State: StateAborted, Handoff: url}, nil
}

// submit issues the single backend call and interprets the outcome.
func (o *orchestrator) submit(ctx context.Context) (*Result, error) {
	f := o.flow
	o.state = StateSubmitting

	req := shopapi.PurchaseRequest{
		UserTelegramID: o.intent.Buyer.Platform.TelegramID,
		CategoryID:     o.intent.Variant.ID,
		DeliveryType:   o.intent.Variant.Delivery,
	}
	if o.intent.CollectedInput != "" {
		req.AdditionalInfo = map[string]string{
			RequirementFor(o.intent.Variant.Delivery).infoKey(): o.intent.CollectedInput,
		}
	}

	submitCtx, cancel := context.WithTimeout(ctx, f.cfg.SubmitTimeout)
	defer cancel()

	result, err := f.backend.Purchase(submitCtx, req)
	if err != nil {
		o.state = StateRejected
		reason := o.rejectionReason(submitCtx, err)
		f.notifier.Notify(ui.NotifyError, reason)
		return &Result{
			State:   StateRejected,
			Outcome: &model.PurchaseOutcome{Kind: model.OutcomeRejected, Reason: reason},
		}, nil
	}

	// Optimistic decrement of the cached balance copy; the backend owns the
	// authoritative balance.
	o.sess.Debit(o.intent.Variant.Price)

	var outcome model.PurchaseOutcome
	if result.OrderType == "instant" {
		outcome = model.PurchaseOutcome{Kind: model.OutcomeInstant}
		f.notifier.Notify(ui.NotifySuccess, fmt.Sprintf(
			"Purchase successful!\n%s\nThe code was sent to the bot", o.intent.Variant.Name))
	} else {
		window := result.EstimatedTime
		if window == "" {
			window = f.cfg.DefaultWindow
		}
		outcome = model.PurchaseOutcome{Kind: model.OutcomePending, EstimatedWindow: window}
		f.notifier.Notify(ui.NotifySuccess, fmt.Sprintf(
			"Order created!\n%s\nFulfillment within %s", o.intent.Variant.Name, window))
	}

	// Let the success message be read before moving to order history.
	f.navigator.NavigateAfter(ui.TargetOrders, f.cfg.NavigateDelay)

	o.state = StateCompleted
	return &Result{State: StateCompleted, Outcome: &outcome}, nil
}

// rejectionReason favors the server-supplied message, then names a timeout,
// then falls back to a generic failure.
func (o *orchestrator) rejectionReason(submitCtx context.Context, err error) string {
	var rej *shopapi.RejectionError
	if errors.As(err, &rej) && rej.Reason != "" {
		return rej.Reason
	}
	if errors.Is(err, shopapi.ErrRejected) {
		return "Could not complete the purchase"
	}
	if errors.Is(submitCtx.Err(), context.DeadlineExceeded) {
		return "The purchase request timed out, please try again"
	}
	return "Something went wrong during the purchase"
}
