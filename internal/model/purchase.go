package model

import "time"

// PurchaseIntent is the ephemeral record of one purchase attempt. It lives
// for a single orchestration pass and is never persisted.
type PurchaseIntent struct {
	Buyer          BuyerIdentity
	Variant        CatalogVariant
	CollectedInput string
}

// OutcomeKind discriminates PurchaseOutcome variants.
type OutcomeKind int

const (
	// OutcomeInstant means the item was fulfilled immediately with a code.
	OutcomeInstant OutcomeKind = iota
	// OutcomePending means an operator will fulfill the order later.
	OutcomePending
	// OutcomeRejected means the backend declined or the submission failed.
	OutcomeRejected
)

// PurchaseOutcome is the interpreted result of submitting a PurchaseIntent.
type PurchaseOutcome struct {
	Kind OutcomeKind

	// DeliveredCode is set for OutcomeInstant.
	DeliveredCode string
	// EstimatedWindow is set for OutcomePending, e.g. "10-30 minutes".
	EstimatedWindow string
	// Reason is set for OutcomeRejected.
	Reason string
}

// Order is an order-history record as returned by the backend.
type Order struct {
	ID           string    `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	ProductName  string    `json:"product_name"`
	CategoryName string    `json:"category_name"`
	Price        float64   `json:"price"`
	DeliveryType string    `json:"delivery_type"`
	Status       string    `json:"status"`
	CodeSent     string    `json:"code_sent,omitempty"`
	OrderDate    time.Time `json:"order_date"`
}

// Completed reports whether the order has been fulfilled.
func (o Order) Completed() bool {
	return o.Status == "completed"
}
