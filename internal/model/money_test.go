package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentsFromDollars(t *testing.T) {
	assert.Equal(t, Cents(9900), CentsFromDollars(99.0))
	assert.Equal(t, Cents(1235), CentsFromDollars(12.345))
	assert.Equal(t, Cents(1), CentsFromDollars(0.01))
	assert.Equal(t, Cents(0), CentsFromDollars(0))

	// float artifacts round away: 0.1+0.2 is not exactly 0.3
	assert.Equal(t, Cents(30), CentsFromDollars(0.1+0.2))
}

func TestCentsRoundTrip(t *testing.T) {
	assert.Equal(t, 12.35, CentsFromDollars(12.35).Dollars())
	assert.Equal(t, 0.0, Cents(0).Dollars())
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "$5.00", CentsFromDollars(5).String())
	assert.Equal(t, "$12.35", Cents(1235).String())
	assert.Equal(t, "$0.00", Cents(0).String())
}
