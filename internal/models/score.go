package models

// ReasonCode identifies a single scoring rule that contributed points.
type ReasonCode string

const (
	ReasonCategoryExact    ReasonCode = "category_exact"
	ReasonCategoryRelated  ReasonCode = "category_related"
	ReasonNoAnnualFee      ReasonCode = "no_annual_fee"
	ReasonLoungeAccess     ReasonCode = "lounge_access"
	ReasonCashback         ReasonCode = "cashback"
	ReasonTravelRewards    ReasonCode = "travel_rewards"
	ReasonFuelWaiver       ReasonCode = "fuel_waiver"
	ReasonMovieBenefits    ReasonCode = "movie_benefits"
	ReasonDiningDiscounts  ReasonCode = "dining_discounts"
	ReasonRailwayBenefits  ReasonCode = "railway_benefits"
	ReasonInsurance        ReasonCode = "insurance"
	ReasonMilestoneRewards ReasonCode = "milestone_rewards"
	ReasonWelcomeBenefits  ReasonCode = "welcome_benefits"
	ReasonPreferredBank    ReasonCode = "preferred_bank"
	ReasonPremiumTier      ReasonCode = "premium_tier"
)

// ScoreReason is one applied rule and the points it awarded.
type ScoreReason struct {
	Code   ReasonCode `json:"code"`
	Points int        `json:"points"`
}

// ScoredCard is the result of scoring one eligible card. The reason list is
// ordered by rule application and explains the total.
type ScoredCard struct {
	CardID  string        `json:"card_id"`
	Score   int           `json:"score"`
	Reasons []ScoreReason `json:"reasons"`
}

// ScoringWeights holds the point values of every scoring rule. They are
// fixed design constants surfaced as configuration rather than literals.
type ScoringWeights struct {
	ExactCategory    int
	RelatedCategory  int
	NoAnnualFee      int
	LoungeAccess     int
	Cashback         int
	TravelRewards    int
	FuelWaiver       int
	MovieBenefits    int
	DiningDiscounts  int
	RailwayBenefits  int
	Insurance        int
	MilestoneRewards int
	WelcomeBenefits  int
	PreferredBank    int
	PremiumTier      int

	// PremiumIncomeThreshold is the annual income (rupees) above which
	// premium-tier cards receive the tier bonus.
	PremiumIncomeThreshold int64
}

// DefaultScoringWeights returns the standard point table.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		ExactCategory:          15,
		RelatedCategory:        8,
		NoAnnualFee:            20,
		LoungeAccess:           18,
		Cashback:               18,
		TravelRewards:          16,
		FuelWaiver:             15,
		MovieBenefits:          12,
		DiningDiscounts:        12,
		RailwayBenefits:        12,
		Insurance:              8,
		MilestoneRewards:       10,
		WelcomeBenefits:        8,
		PreferredBank:          25,
		PremiumTier:            10,
		PremiumIncomeThreshold: 1000000,
	}
}
