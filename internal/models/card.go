package models

// Category is a spending category tag drawn from the fixed 16-value vocabulary.
type Category string

const (
	CategoryTravel        Category = "Travel"
	CategoryShopping      Category = "Shopping"
	CategoryDining        Category = "Dining"
	CategoryFuel          Category = "Fuel"
	CategoryEntertainment Category = "Entertainment"
	CategoryOnline        Category = "Online"
	CategoryPremium       Category = "Premium"
	CategoryRewards       Category = "Rewards"
	CategoryLifestyle     Category = "Lifestyle"
	CategoryCoBranded     Category = "Co-branded"
	CategoryMovies        Category = "Movies"
	CategoryBusiness      Category = "Business"
	CategorySecured       Category = "Secured"
	CategoryCashback      Category = "Cashback"
	CategoryLoungeAccess  Category = "Lounge Access"
	CategoryRailway       Category = "Railway"
)

// AllCategories lists the full category vocabulary in presentation order.
var AllCategories = []Category{
	CategoryTravel, CategoryShopping, CategoryDining, CategoryFuel,
	CategoryEntertainment, CategoryOnline, CategoryPremium, CategoryRewards,
	CategoryLifestyle, CategoryCoBranded, CategoryMovies, CategoryBusiness,
	CategorySecured, CategoryCashback, CategoryLoungeAccess, CategoryRailway,
}

// IsValid reports whether c belongs to the known vocabulary.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// RelatedCategories is the fixed adjacency table used for partial category
// matches. Entries are symmetric: if a relates to b, b relates to a.
var RelatedCategories = map[Category][]Category{
	CategoryMovies:        {CategoryEntertainment},
	CategoryEntertainment: {CategoryMovies},
	CategoryTravel:        {CategoryLoungeAccess, CategoryCoBranded, CategoryRailway},
	CategoryLoungeAccess:  {CategoryTravel, CategoryPremium},
	CategoryCoBranded:     {CategoryTravel},
	CategoryRailway:       {CategoryTravel},
	CategoryPremium:       {CategoryLoungeAccess},
	CategoryCashback:      {CategoryRewards},
	CategoryRewards:       {CategoryCashback},
	CategoryShopping:      {CategoryOnline},
	CategoryOnline:        {CategoryShopping},
	CategoryDining:        {CategoryLifestyle},
	CategoryLifestyle:     {CategoryDining},
}

type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// BenefitFlags captures the boolean benefit attributes of a card.
type BenefitFlags struct {
	LoungeAccess     bool `json:"lounge_access"`
	Cashback         bool `json:"cashback"`
	TravelRewards    bool `json:"travel_rewards"`
	FuelWaiver       bool `json:"fuel_waiver"`
	NoAnnualFee      bool `json:"no_annual_fee"`
	RailwayBenefit   bool `json:"railway_benefit"`
	MovieBenefits    bool `json:"movie_benefits"`
	DiningDiscounts  bool `json:"dining_discounts"`
	Insurance        bool `json:"insurance"`
	MilestoneRewards bool `json:"milestone_rewards"`
	WelcomeBenefits  bool `json:"welcome_benefits"`
}

// CardLink is an official page associated with a card. Only these URLs are
// ever passed to the content fetcher.
type CardLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CardRecord is an immutable catalog entry, loaded once at startup.
type CardRecord struct {
	ID               string       `json:"id" db:"id"`
	Bank             string       `json:"bank" db:"bank"`
	Name             string       `json:"name" db:"name"`
	Categories       []Category   `json:"categories" db:"categories"`
	Benefits         BenefitFlags `json:"benefits" db:"benefits"`
	MinIncome        int64        `json:"min_income" db:"min_income"` // annual, rupees
	MinCreditScore   int          `json:"min_credit_score" db:"min_credit_score"`
	BankCustomerOnly bool         `json:"bank_customer_only" db:"bank_customer_only"`
	Tier             Tier         `json:"tier" db:"tier"`
	Links            []CardLink   `json:"links,omitempty" db:"links"`
}

// HasCategory reports whether the card carries the given tag.
func (c *CardRecord) HasCategory(cat Category) bool {
	for _, tag := range c.Categories {
		if tag == cat {
			return true
		}
	}
	return false
}
