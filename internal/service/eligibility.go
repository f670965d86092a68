package service

import (
	"cardwise/internal/models"
)

// FilterEligible applies the hard eligibility gates and returns the cards
// the user can structurally obtain, in catalog order. An empty result is a
// valid outcome, not an error; the orchestrator decides how to react.
//
// A card passes iff all of:
//   - declared annual income meets the card's minimum
//   - declared credit band meets the card's minimum score
//   - bank-customer-only cards require a declared relationship with that
//     bank; with no declared relationships the card is excluded
//   - the card's bank was not excluded earlier in the session
func FilterEligible(cards []models.CardRecord, prefs *models.UserPreferences, excludedBanks map[string]struct{}) []models.CardRecord {
	var eligible []models.CardRecord

	for i := range cards {
		card := &cards[i]

		if _, excluded := excludedBanks[card.Bank]; excluded {
			continue
		}
		if prefs.AnnualIncome < card.MinIncome {
			continue
		}
		if !prefs.CreditBand.Meets(card.MinCreditScore) {
			continue
		}
		if card.BankCustomerOnly && !prefs.IsBankCustomer(card.Bank) {
			continue
		}

		eligible = append(eligible, *card)
	}

	return eligible
}

// FilterRelaxed repeats the eligibility pass with the bank-customer-only
// gate waived. It is the single relaxation step used when the strict pass
// returns nothing: the customer-only gate is the one conservative default
// in the filter, so it is the first constraint to give way.
func FilterRelaxed(cards []models.CardRecord, prefs *models.UserPreferences, excludedBanks map[string]struct{}) []models.CardRecord {
	var eligible []models.CardRecord

	for i := range cards {
		card := &cards[i]

		if _, excluded := excludedBanks[card.Bank]; excluded {
			continue
		}
		if prefs.AnnualIncome < card.MinIncome {
			continue
		}
		if !prefs.CreditBand.Meets(card.MinCreditScore) {
			continue
		}

		eligible = append(eligible, *card)
	}

	return eligible
}
