package model

// DeliveryMechanism is the closed set of ways a purchased item reaches the
// buyer. Values match the backend wire names.
type DeliveryMechanism string

const (
	// DeliveryCode delivers a prepaid code instantly through the bot.
	DeliveryCode DeliveryMechanism = "code"
	// DeliveryPhone tops up a phone number supplied by the buyer.
	DeliveryPhone DeliveryMechanism = "phone"
	// DeliveryEmail sends the item to an email address supplied by the buyer.
	DeliveryEmail DeliveryMechanism = "email"
	// DeliveryAccountID credits an external account id supplied by the buyer.
	// Wire name is "id" for historical reasons.
	DeliveryAccountID DeliveryMechanism = "id"
	// DeliveryManual is fulfilled by an operator; the order is always pending.
	DeliveryManual DeliveryMechanism = "manual"
)

// Valid reports whether m is one of the known mechanisms.
func (m DeliveryMechanism) Valid() bool {
	switch m {
	case DeliveryCode, DeliveryPhone, DeliveryEmail, DeliveryAccountID, DeliveryManual:
		return true
	}
	return false
}

// Description returns a human-readable delivery description for confirmation
// summaries.
func (m DeliveryMechanism) Description() string {
	switch m {
	case DeliveryAccountID:
		return "sent to your account ID"
	case DeliveryEmail:
		return "sent to your email address"
	case DeliveryPhone:
		return "sent to your phone number"
	case DeliveryManual:
		return "fulfilled manually by an operator"
	default:
		return "instant code"
	}
}

// Product is a storefront product grouping one or more purchasable variants.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CategoryType string `json:"category_type"`
}

// CatalogVariant is a purchasable unit under a product. The backend calls
// these "categories". Immutable once fetched; owned by the catalog cache.
type CatalogVariant struct {
	ID          string            `json:"id"`
	ProductID   string            `json:"product_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       Cents             `json:"-"`
	Delivery    DeliveryMechanism `json:"delivery_type"`
}
