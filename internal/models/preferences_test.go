package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditBandIsValid(t *testing.T) {
	for _, band := range AllCreditBands {
		assert.True(t, band.IsValid(), string(band))
	}
	assert.True(t, CreditScoreBand("").IsValid())

	assert.False(t, CreditScoreBand("exellent").IsValid())
	assert.False(t, CreditScoreBand("very good").IsValid())
	assert.False(t, CreditScoreBand("Excellent").IsValid())
}

func TestCreditBandMeets(t *testing.T) {
	// Undeclared standings pass; only a declared band can fail a gate.
	assert.True(t, CreditBandUnknown.Meets(800))
	assert.True(t, CreditScoreBand("").Meets(800))

	assert.True(t, CreditBandGood.Meets(700))
	assert.False(t, CreditBandGood.Meets(750))
	assert.True(t, CreditBandExcellent.Meets(750))

	// A zero requirement gates nothing.
	assert.True(t, CreditBandFair.Meets(0))

	// Out-of-vocabulary bands never waive a requirement.
	assert.False(t, CreditScoreBand("exellent").Meets(750))
}

func TestBandForScore(t *testing.T) {
	assert.Equal(t, CreditBandExcellent, BandForScore(810))
	assert.Equal(t, CreditBandVeryGood, BandForScore(750))
	assert.Equal(t, CreditBandGood, BandForScore(720))
	assert.Equal(t, CreditBandFair, BandForScore(650))
	assert.Equal(t, CreditBandUnknown, BandForScore(600))
}
