package purchase

import (
	"fmt"
	"net/url"
	"strings"

	"abod-card-app/internal/model"
)

// Escalation formats guest orders for hand-off to the human support channel.
// Guests never reach the backend purchase endpoint; an operator completes
// the order over WhatsApp.
type Escalation struct {
	// SupportPhone is the WhatsApp contact in international format without
	// the plus sign, e.g. "967783380906".
	SupportPhone string
}

// Message builds the order summary sent to support.
func (e Escalation) Message(intent model.PurchaseIntent) string {
	guest := intent.Buyer.Guest

	var b strings.Builder
	fmt.Fprintf(&b, "New order from %s\n\n", guest.FirstName)
	fmt.Fprintf(&b, "Product: %s\n", intent.Variant.Name)
	fmt.Fprintf(&b, "Price: %s\n", intent.Variant.Price)
	fmt.Fprintf(&b, "Phone: %s\n", guest.Phone)
	if intent.CollectedInput != "" {
		fmt.Fprintf(&b, "Additional info: %s\n", intent.CollectedInput)
	}
	return b.String()
}

// HandoffURL builds the wa.me deep link pre-filled with the order summary.
// This is a one-way hand-off, not a request the client waits on.
func (e Escalation) HandoffURL(intent model.PurchaseIntent) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", e.SupportPhone, url.QueryEscape(e.Message(intent)))
}
