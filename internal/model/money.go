package model

import (
	"fmt"
	"math"
)

// Cents is a USD amount in minor units. The backend exchanges prices and
// balances as decimal dollar numbers; converting to cents at the wire
// boundary keeps balance arithmetic exact.
type Cents int64

// CentsFromDollars converts a decimal dollar amount to cents.
// Examples: 99.0 → 9900, 12.345 → 1235 (rounded).
func CentsFromDollars(d float64) Cents {
	return Cents(math.Round(d * 100))
}

// Dollars returns the amount as a decimal dollar value.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// String formats the amount the way the storefront displays it: "$5.00".
func (c Cents) String() string {
	return fmt.Sprintf("$%.2f", c.Dollars())
}
