package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyerIdentityKind(t *testing.T) {
	platform := NewPlatformIdentity(42)
	assert.Equal(t, BuyerPlatform, platform.Kind())
	require.NotNil(t, platform.Platform)
	assert.Nil(t, platform.Guest)

	guest := NewGuestIdentity(GuestBuyer{GuestID: "guest_1_x", FirstName: "Sara"})
	assert.Equal(t, BuyerGuest, guest.Kind())
	require.NotNil(t, guest.Guest)
	assert.Nil(t, guest.Platform)
	// the constructor forces the flag regardless of input
	assert.True(t, guest.Guest.IsGuest)
}

func TestBuyerDisplayName(t *testing.T) {
	guest := NewGuestIdentity(GuestBuyer{GuestID: "guest_1_x", FirstName: "Sara"})
	assert.Equal(t, "Sara", guest.DisplayName())
	assert.Empty(t, NewPlatformIdentity(42).DisplayName())
}

func TestGuestBuyerJSONShape(t *testing.T) {
	data, err := json.Marshal(GuestBuyer{GuestID: "guest_1_x", FirstName: "Sara", Phone: "12345678", IsGuest: true})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "guest_1_x", m["guest_id"])
	assert.Equal(t, "Sara", m["first_name"])
	assert.Equal(t, true, m["is_guest"])
}

func TestDeliveryMechanismValid(t *testing.T) {
	for _, m := range []DeliveryMechanism{DeliveryCode, DeliveryPhone, DeliveryEmail, DeliveryAccountID, DeliveryManual} {
		assert.True(t, m.Valid(), "mechanism %q", m)
	}
	assert.False(t, DeliveryMechanism("").Valid())
	assert.False(t, DeliveryMechanism("teleport").Valid())
}
