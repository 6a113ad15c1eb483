package purchase

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abod-card-app/internal/model"
)

func guestIntent(input string) model.PurchaseIntent {
	return model.PurchaseIntent{
		Buyer: model.NewGuestIdentity(model.GuestBuyer{
			GuestID:   "guest_1700000000000_abcd1234",
			FirstName: "Sara",
			Phone:     "+967 700 000 000",
		}),
		Variant:        testVariant(25.00, model.DeliveryAccountID),
		CollectedInput: input,
	}
}

func TestEscalationMessage(t *testing.T) {
	esc := Escalation{SupportPhone: "967783380906"}

	msg := esc.Message(guestIntent("player-99"))
	assert.Contains(t, msg, "New order from Sara")
	assert.Contains(t, msg, "Product: Gold Package")
	assert.Contains(t, msg, "Price: $25.00")
	assert.Contains(t, msg, "Phone: +967 700 000 000")
	assert.Contains(t, msg, "Additional info: player-99")
}

func TestEscalationMessageOmitsEmptyInput(t *testing.T) {
	esc := Escalation{SupportPhone: "967783380906"}

	msg := esc.Message(guestIntent(""))
	assert.NotContains(t, msg, "Additional info")
}

func TestEscalationHandoffURL(t *testing.T) {
	esc := Escalation{SupportPhone: "967783380906"}
	intent := guestIntent("")

	link := esc.HandoffURL(intent)
	require.True(t, strings.HasPrefix(link, "https://wa.me/967783380906?text="), link)

	// the text parameter round-trips to the plain message
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, esc.Message(intent), u.Query().Get("text"))
}
