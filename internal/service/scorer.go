package service

import (
	"cardwise/internal/models"
)

// ScoreCard computes the preference match score for one card. It is a pure
// function of (card, prefs, weights): deterministic, no side effects and no
// dependency on other cards. Every applied rule appends a reason entry; the
// total is the sum of the entries. A card matching nothing scores 0 and
// stays rankable.
func ScoreCard(card *models.CardRecord, prefs *models.UserPreferences, w models.ScoringWeights) models.ScoredCard {
	scored := models.ScoredCard{CardID: card.ID}

	add := func(code models.ReasonCode, points int) {
		if points <= 0 {
			return
		}
		scored.Score += points
		scored.Reasons = append(scored.Reasons, models.ScoreReason{Code: code, Points: points})
	}

	// Category matching. Exact matches first; a category already counted
	// exactly is not re-counted through the adjacency table.
	exact := make(map[models.Category]bool)
	for _, cat := range prefs.Categories {
		if card.HasCategory(cat) {
			exact[cat] = true
			add(models.ReasonCategoryExact, w.ExactCategory)
		}
	}
	for _, cat := range prefs.Categories {
		if exact[cat] {
			continue
		}
		for _, related := range models.RelatedCategories[cat] {
			if card.HasCategory(related) {
				add(models.ReasonCategoryRelated, w.RelatedCategory)
				break
			}
		}
	}

	// Priority matching against the card's benefit flags. Low fees counts
	// as the no-annual-fee signal, matching the original intake vocabulary.
	if (prefs.HasPriority(models.PriorityNoAnnualFee) || prefs.HasPriority(models.PriorityLowFees)) && card.Benefits.NoAnnualFee {
		add(models.ReasonNoAnnualFee, w.NoAnnualFee)
	}
	if prefs.HasPriority(models.PriorityLoungeAccess) && card.Benefits.LoungeAccess {
		add(models.ReasonLoungeAccess, w.LoungeAccess)
	}
	if prefs.HasPriority(models.PriorityCashback) && card.Benefits.Cashback {
		add(models.ReasonCashback, w.Cashback)
	}
	if prefs.HasPriority(models.PriorityTravelRewards) && card.Benefits.TravelRewards {
		add(models.ReasonTravelRewards, w.TravelRewards)
	}
	if prefs.HasPriority(models.PriorityFuelWaiver) && card.Benefits.FuelWaiver {
		add(models.ReasonFuelWaiver, w.FuelWaiver)
	}
	if prefs.HasPriority(models.PriorityMovieBenefits) && card.Benefits.MovieBenefits {
		add(models.ReasonMovieBenefits, w.MovieBenefits)
	}
	if prefs.HasPriority(models.PriorityDiningDiscounts) && card.Benefits.DiningDiscounts {
		add(models.ReasonDiningDiscounts, w.DiningDiscounts)
	}
	if prefs.HasPriority(models.PriorityRailwayBenefits) && card.Benefits.RailwayBenefit {
		add(models.ReasonRailwayBenefits, w.RailwayBenefits)
	}
	if prefs.HasPriority(models.PriorityInsurance) && card.Benefits.Insurance {
		add(models.ReasonInsurance, w.Insurance)
	}
	if prefs.HasPriority(models.PriorityMilestoneRewards) && card.Benefits.MilestoneRewards {
		add(models.ReasonMilestoneRewards, w.MilestoneRewards)
	}
	if prefs.HasPriority(models.PriorityWelcomeBenefits) && card.Benefits.WelcomeBenefits {
		add(models.ReasonWelcomeBenefits, w.WelcomeBenefits)
	}

	if prefs.PreferredBank != "" && prefs.PreferredBank == card.Bank {
		add(models.ReasonPreferredBank, w.PreferredBank)
	}

	if prefs.AnnualIncome > w.PremiumIncomeThreshold && card.Tier == models.TierPremium {
		add(models.ReasonPremiumTier, w.PremiumTier)
	}

	return scored
}

// ScoreCards scores every eligible card, preserving input order.
func ScoreCards(cards []models.CardRecord, prefs *models.UserPreferences, w models.ScoringWeights) []models.ScoredCard {
	scored := make([]models.ScoredCard, 0, len(cards))
	for i := range cards {
		scored = append(scored, ScoreCard(&cards[i], prefs, w))
	}
	return scored
}
