package models

type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "salaried"
	EmploymentSelfEmployed EmploymentType = "self-employed"
)

// CreditScoreBand is the user's declared credit standing. Bands map to a
// floor score used against a card's minimum credit score requirement.
type CreditScoreBand string

const (
	CreditBandUnknown   CreditScoreBand = "unknown"
	CreditBandFair      CreditScoreBand = "fair"
	CreditBandGood      CreditScoreBand = "good"
	CreditBandVeryGood  CreditScoreBand = "very_good"
	CreditBandExcellent CreditScoreBand = "excellent"
)

// AllCreditBands lists the declared credit standings.
var AllCreditBands = []CreditScoreBand{
	CreditBandUnknown, CreditBandFair, CreditBandGood,
	CreditBandVeryGood, CreditBandExcellent,
}

var creditBandFloors = map[CreditScoreBand]int{
	CreditBandFair:      650,
	CreditBandGood:      700,
	CreditBandVeryGood:  750,
	CreditBandExcellent: 800,
}

// IsValid reports whether b belongs to the known vocabulary. The empty
// string counts as an undeclared standing.
func (b CreditScoreBand) IsValid() bool {
	if b == "" {
		return true
	}
	for _, known := range AllCreditBands {
		if b == known {
			return true
		}
	}
	return false
}

// Meets reports whether the band satisfies a card's minimum credit score.
// An unknown band passes: only a declared standing can fail the gate.
// Out-of-vocabulary bands fail; intake validation rejects them before any
// gate runs.
func (b CreditScoreBand) Meets(minScore int) bool {
	if minScore <= 0 || b == CreditBandUnknown || b == "" {
		return true
	}
	floor, ok := creditBandFloors[b]
	if !ok {
		return false
	}
	return floor >= minScore
}

// BandForScore maps a raw score to its band.
func BandForScore(score int) CreditScoreBand {
	switch {
	case score >= 800:
		return CreditBandExcellent
	case score >= 750:
		return CreditBandVeryGood
	case score >= 700:
		return CreditBandGood
	case score >= 650:
		return CreditBandFair
	default:
		return CreditBandUnknown
	}
}

// Priority is a user priority drawn from the fixed 12-value vocabulary.
type Priority string

const (
	PriorityCashback         Priority = "cashback"
	PriorityTravelRewards    Priority = "travel rewards"
	PriorityLowFees          Priority = "low fees"
	PriorityLoungeAccess     Priority = "lounge access"
	PriorityFuelWaiver       Priority = "fuel waiver"
	PriorityMovieBenefits    Priority = "movie benefits"
	PriorityDiningDiscounts  Priority = "dining discounts"
	PriorityRailwayBenefits  Priority = "railway benefits"
	PriorityInsurance        Priority = "insurance"
	PriorityMilestoneRewards Priority = "milestone rewards"
	PriorityWelcomeBenefits  Priority = "welcome benefits"
	PriorityNoAnnualFee      Priority = "no annual fee"
)

// AllPriorities lists the full priority vocabulary in presentation order.
var AllPriorities = []Priority{
	PriorityCashback, PriorityTravelRewards, PriorityLowFees,
	PriorityLoungeAccess, PriorityFuelWaiver, PriorityMovieBenefits,
	PriorityDiningDiscounts, PriorityRailwayBenefits, PriorityInsurance,
	PriorityMilestoneRewards, PriorityWelcomeBenefits, PriorityNoAnnualFee,
}

// IsValid reports whether p belongs to the known vocabulary.
func (p Priority) IsValid() bool {
	for _, known := range AllPriorities {
		if p == known {
			return true
		}
	}
	return false
}

// UserPreferences is the declared profile a recommendation cycle runs
// against. Built once per cycle; amended in place on explicit revision.
type UserPreferences struct {
	Employment        EmploymentType  `json:"employment"`
	AnnualIncome      int64           `json:"annual_income"` // rupees
	CreditBand        CreditScoreBand `json:"credit_band"`
	Categories        []Category      `json:"categories"`
	Priorities        []Priority      `json:"priorities"`
	PreferredBank     string          `json:"preferred_bank,omitempty"`
	BankRelationships []string        `json:"bank_relationships,omitempty"`
}

// HasCategory reports whether the user selected the given spending category.
func (p *UserPreferences) HasCategory(cat Category) bool {
	for _, c := range p.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// HasPriority reports whether the user selected the given priority.
func (p *UserPreferences) HasPriority(pr Priority) bool {
	for _, existing := range p.Priorities {
		if existing == pr {
			return true
		}
	}
	return false
}

// IsBankCustomer reports whether the user declared a relationship with bank.
func (p *UserPreferences) IsBankCustomer(bank string) bool {
	for _, b := range p.BankRelationships {
		if b == bank {
			return true
		}
	}
	return false
}

// AddCategory appends cat if not already selected.
func (p *UserPreferences) AddCategory(cat Category) {
	if !p.HasCategory(cat) {
		p.Categories = append(p.Categories, cat)
	}
}

// AddPriority appends pr if not already selected.
func (p *UserPreferences) AddPriority(pr Priority) {
	if !p.HasPriority(pr) {
		p.Priorities = append(p.Priorities, pr)
	}
}

// Clone returns a deep copy, used to compute a revision without touching the
// live preferences until the new ranking is fully installed.
func (p *UserPreferences) Clone() *UserPreferences {
	cp := *p
	cp.Categories = append([]Category(nil), p.Categories...)
	cp.Priorities = append([]Priority(nil), p.Priorities...)
	cp.BankRelationships = append([]string(nil), p.BankRelationships...)
	return &cp
}
