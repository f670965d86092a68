package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardwise/internal/catalog"
	"cardwise/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerator struct {
	calls    int
	lastRole PromptRole
	response string
	err      error
}

func (g *stubGenerator) Generate(_ context.Context, role PromptRole, _ PromptPayload) (string, error) {
	g.calls++
	g.lastRole = role
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type stubFetcher struct {
	calls   int
	content string
	err     error
}

func (f *stubFetcher) Fetch(_ context.Context, _ string, _ int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func advisorCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]models.CardRecord{
		{
			ID:         "alpha-travel",
			Bank:       "Alpha Bank",
			Name:       "Alpha Travel Card",
			Categories: []models.Category{models.CategoryTravel, models.CategoryLoungeAccess},
			Benefits:   models.BenefitFlags{LoungeAccess: true, FuelWaiver: true, TravelRewards: true},
			MinIncome:  500000,
			Tier:       models.TierPremium,
			Links:      []models.CardLink{{Title: "Official page", URL: "https://example.com/alpha-travel"}},
		},
		{
			ID:         "beta-cash",
			Bank:       "Beta Bank",
			Name:       "Beta Cashback Card",
			Categories: []models.Category{models.CategoryCashback, models.CategoryOnline},
			Benefits:   models.BenefitFlags{Cashback: true, NoAnnualFee: true},
			MinIncome:  200000,
			Tier:       models.TierStandard,
		},
		{
			ID:         "beta-dining",
			Bank:       "Beta Bank",
			Name:       "Beta Dining Card",
			Categories: []models.Category{models.CategoryDining},
			Benefits:   models.BenefitFlags{DiningDiscounts: true},
			MinIncome:  250000,
			Tier:       models.TierStandard,
		},
		{
			ID:         "gamma-fuel",
			Bank:       "Gamma Bank",
			Name:       "Gamma Fuel Card",
			Categories: []models.Category{models.CategoryFuel},
			Benefits:   models.BenefitFlags{FuelWaiver: true},
			MinIncome:  300000,
			Tier:       models.TierStandard,
		},
		{
			ID:               "delta-club",
			Bank:             "Delta Bank",
			Name:             "Delta Club Card",
			Categories:       []models.Category{models.CategoryPremium},
			Benefits:         models.BenefitFlags{LoungeAccess: true},
			MinIncome:        400000,
			BankCustomerOnly: true,
			Tier:             models.TierPremium,
		},
	})
	require.NoError(t, err)
	return cat
}

func newTestAdvisor(cat *catalog.Catalog, gen Generator, fetch Fetcher) *AdvisorService {
	return NewAdvisorService(cat, gen, fetch, models.DefaultScoringWeights(), time.Second, 2000, zap.NewNop())
}

func basePrefs() *models.UserPreferences {
	return &models.UserPreferences{
		Employment:   models.EmploymentSalaried,
		AnnualIncome: 800000,
		CreditBand:   models.CreditBandExcellent,
		Categories: []models.Category{
			models.CategoryTravel, models.CategoryDining,
			models.CategoryFuel, models.CategoryLoungeAccess,
		},
		Priorities: []models.Priority{
			models.PriorityTravelRewards, models.PriorityLoungeAccess,
			models.PriorityFuelWaiver,
		},
	}
}

func TestSetPreferencesPicksLoungeAndFuelCard(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()

	rec, err := advisor.SetPreferences(context.Background(), st, basePrefs())
	require.NoError(t, err)

	// Travel plus fuel habits with lounge and fuel priorities must land on
	// the card carrying both benefits.
	assert.Equal(t, "alpha-travel", rec.Card.ID)
	assert.True(t, rec.Card.Benefits.LoungeAccess)
	assert.True(t, rec.Card.Benefits.FuelWaiver)

	// The winner must strictly outscore every candidate lacking both
	// benefits, not merely tie-break past them.
	for _, alt := range rec.Alternates {
		card, err := advisor.Catalog().ByID(alt.CardID)
		require.NoError(t, err)
		if !card.Benefits.LoungeAccess && !card.Benefits.FuelWaiver {
			assert.Less(t, alt.Score, rec.Scored.Score)
		}
	}

	assert.Equal(t, models.PhaseConversing, st.Phase)
	assert.Equal(t, "alpha-travel", st.CurrentCardID)
	assert.NotEmpty(t, st.RankedAlternates)
	assert.NotContains(t, st.RankedAlternates, "alpha-travel")
	assert.Contains(t, rec.Presentation, "Alpha Travel Card")
	assert.Zero(t, st.ExternalCallCount())
}

func TestSetPreferencesValidation(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.UserPreferences)
	}{
		{"unknown employment", func(p *models.UserPreferences) { p.Employment = "freelancer" }},
		{"negative income", func(p *models.UserPreferences) { p.AnnualIncome = -1 }},
		{"misspelled credit band", func(p *models.UserPreferences) { p.CreditBand = "exellent" }},
		{"spaced credit band", func(p *models.UserPreferences) { p.CreditBand = "very good" }},
		{"no categories", func(p *models.UserPreferences) { p.Categories = nil }},
		{"unknown category", func(p *models.UserPreferences) { p.Categories = []models.Category{"Groceries"} }},
		{"unknown priority", func(p *models.UserPreferences) { p.Priorities = []models.Priority{"prestige"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := advisor.StartSession()
			prefs := basePrefs()
			tt.mutate(prefs)

			_, err := advisor.SetPreferences(ctx, st, prefs)
			assert.ErrorIs(t, err, ErrInvalidPreference)
			assert.Equal(t, models.PhaseCollecting, st.Phase)
		})
	}
}

func TestSetPreferencesNoEligibleLeavesStateUntouched(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()

	prefs := basePrefs()
	prefs.AnnualIncome = 100000 // below every card's minimum

	_, err := advisor.SetPreferences(context.Background(), st, prefs)

	assert.ErrorIs(t, err, ErrNoEligibleCards)
	assert.Equal(t, models.PhaseCollecting, st.Phase)
	assert.Empty(t, st.CurrentCardID)
	assert.Nil(t, st.ActivePrefs)
}

func TestSetPreferencesRelaxesCustomerOnlyGate(t *testing.T) {
	cat, err := catalog.New([]models.CardRecord{
		{
			ID:               "delta-club",
			Bank:             "Delta Bank",
			Name:             "Delta Club Card",
			Categories:       []models.Category{models.CategoryPremium},
			Benefits:         models.BenefitFlags{LoungeAccess: true},
			MinIncome:        400000,
			BankCustomerOnly: true,
			Tier:             models.TierPremium,
		},
	})
	require.NoError(t, err)

	advisor := newTestAdvisor(cat, nil, nil)
	st := advisor.StartSession()

	prefs := basePrefs()
	prefs.BankRelationships = nil // strict pass returns nothing

	rec, err := advisor.SetPreferences(context.Background(), st, prefs)
	require.NoError(t, err)
	assert.Equal(t, "delta-club", rec.Card.ID)
}

func TestCachedTurnsSpendNoExternalCalls(t *testing.T) {
	gen := &stubGenerator{response: "generated"}
	fetch := &stubFetcher{content: "fetched"}
	advisor := newTestAdvisor(advisorCatalog(t), gen, fetch)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)

	alt, err := advisor.HandleTurn(ctx, st, "show me another card")
	require.NoError(t, err)
	assert.Equal(t, models.IntentAlternativeRequest, alt.Intent)

	exit, err := advisor.HandleTurn(ctx, st, "exit")
	require.NoError(t, err)
	assert.Equal(t, models.IntentExit, exit.Intent)

	assert.Zero(t, st.ExternalCallCount())
	assert.Zero(t, gen.calls)
	assert.Zero(t, fetch.calls)
}

func TestInfoQueryGeneratesFromCatalogData(t *testing.T) {
	gen := &stubGenerator{response: "The card has no joining fee."}
	advisor := newTestAdvisor(advisorCatalog(t), gen, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)

	result, err := advisor.HandleTurn(ctx, st, "What is the annual fee?")
	require.NoError(t, err)

	assert.Equal(t, models.IntentInfoQuery, result.Intent)
	assert.Equal(t, "The card has no joining fee.", result.Response)
	assert.Equal(t, PromptFollowupCatalog, gen.lastRole)
	assert.Equal(t, 1, st.ExternalCallCount())
	require.Len(t, st.TurnHistory, 1)
	assert.Equal(t, "What is the annual fee?", st.TurnHistory[0].Utterance)
}

func TestInfoQueryWithWebContentCountsOneCallPerTurn(t *testing.T) {
	gen := &stubGenerator{response: "Current welcome offer is 5000 points."}
	fetch := &stubFetcher{content: "welcome offer details"}
	advisor := newTestAdvisor(advisorCatalog(t), gen, fetch)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)

	result, err := advisor.HandleTurn(ctx, st, "What is the latest welcome offer?")
	require.NoError(t, err)

	assert.Equal(t, models.IntentInfoQuery, result.Intent)
	assert.Equal(t, PromptFollowupWithWeb, gen.lastRole)
	assert.Equal(t, 1, fetch.calls)
	// Fetch plus generation is still one external turn.
	assert.Equal(t, 1, st.ExternalCallCount())
}

func TestInfoQueryFallsBackToCatalogSummary(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream unavailable")}
	advisor := newTestAdvisor(advisorCatalog(t), gen, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)

	result, err := advisor.HandleTurn(ctx, st, "Tell me about this card")
	require.NoError(t, err)

	assert.Equal(t, models.IntentInfoQuery, result.Intent)
	assert.Contains(t, result.Response, "Alpha Travel Card")
	assert.Equal(t, 1, gen.calls)
}

func TestInfoQueryWithoutGeneratorUsesCatalogOnly(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)

	result, err := advisor.HandleTurn(ctx, st, "Tell me about this card")
	require.NoError(t, err)

	assert.Contains(t, result.Response, "Alpha Travel Card")
	assert.Zero(t, st.ExternalCallCount())
}

func TestAlternativePromotesNextRankedCard(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)
	expected := st.RankedAlternates[0]

	result, err := advisor.HandleTurn(ctx, st, "I don't like this one, show me another card")
	require.NoError(t, err)

	assert.Equal(t, models.IntentAlternativeRequest, result.Intent)
	assert.Equal(t, expected, result.CardID)
	assert.Equal(t, expected, st.CurrentCardID)
}

func TestAlternativesExhaustedExcludesBankAndReranks(t *testing.T) {
	cat, err := catalog.New([]models.CardRecord{
		{
			ID:         "alpha-travel",
			Bank:       "Alpha Bank",
			Name:       "Alpha Travel Card",
			Categories: []models.Category{models.CategoryTravel},
			Benefits:   models.BenefitFlags{LoungeAccess: true, FuelWaiver: true},
			MinIncome:  500000,
			Tier:       models.TierPremium,
		},
		{
			ID:         "gamma-fuel",
			Bank:       "Gamma Bank",
			Name:       "Gamma Fuel Card",
			Categories: []models.Category{models.CategoryFuel},
			Benefits:   models.BenefitFlags{FuelWaiver: true},
			MinIncome:  300000,
			Tier:       models.TierStandard,
		},
	})
	require.NoError(t, err)

	advisor := newTestAdvisor(cat, nil, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err = advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)
	require.Equal(t, "alpha-travel", st.CurrentCardID)

	// First request drains the single alternate.
	result, err := advisor.HandleTurn(ctx, st, "another card please")
	require.NoError(t, err)
	assert.Equal(t, "gamma-fuel", st.CurrentCardID)
	assert.Empty(t, st.RankedAlternates)

	// Second request exhausts the list: the current card's bank is
	// excluded and the remaining catalog is re-ranked.
	result, err = advisor.HandleTurn(ctx, st, "another card please")
	require.NoError(t, err)
	assert.Equal(t, "alpha-travel", result.CardID)
	assert.Equal(t, "alpha-travel", st.CurrentCardID)
	assert.True(t, st.IsExcluded("Gamma Bank"))

	// Third request has nowhere left to go; the state stays put and the
	// current bank is not excluded on failure.
	result, err = advisor.HandleTurn(ctx, st, "another card please")
	require.NoError(t, err)
	assert.Equal(t, "alpha-travel", st.CurrentCardID)
	assert.False(t, st.IsExcluded("Alpha Bank"))
	assert.Contains(t, result.Response, "every card")

	assert.Zero(t, st.ExternalCallCount())
}

func TestRevisionReRanksWithNewIncome(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)
	require.Equal(t, "alpha-travel", st.CurrentCardID)

	result, err := advisor.HandleTurn(ctx, st, "actually my income is 3 lakh")
	require.NoError(t, err)

	assert.Equal(t, models.IntentPreferenceRevision, result.Intent)
	assert.Equal(t, int64(300000), st.ActivePrefs.AnnualIncome)
	// alpha-travel's minimum is out of reach now.
	assert.NotEqual(t, "alpha-travel", st.CurrentCardID)
	assert.Zero(t, st.ExternalCallCount())
}

func TestRevisionWithNoEligibleResultKeepsState(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)

	result, err := advisor.HandleTurn(ctx, st, "my income is 1 lakh")
	require.NoError(t, err)

	assert.Equal(t, models.IntentPreferenceRevision, result.Intent)
	assert.Equal(t, int64(800000), st.ActivePrefs.AnnualIncome)
	assert.Equal(t, "alpha-travel", st.CurrentCardID)
}

func TestRevisionExcludesMentionedBank(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)
	require.Equal(t, "alpha-travel", st.CurrentCardID)

	result, err := advisor.HandleTurn(ctx, st, "please avoid Alpha Bank")
	require.NoError(t, err)

	assert.Equal(t, models.IntentPreferenceRevision, result.Intent)
	assert.True(t, st.IsExcluded("Alpha Bank"))
	assert.NotEqual(t, "alpha-travel", st.CurrentCardID)
}

func TestRevisionUnparsedAsksForClarification(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)
	before := st.CurrentCardID

	result, err := advisor.HandleTurn(ctx, st, "i want something nicer")
	require.NoError(t, err)

	assert.Equal(t, models.IntentPreferenceRevision, result.Intent)
	assert.Equal(t, before, st.CurrentCardID)
	assert.Contains(t, result.Response, "couldn't map")
}

func TestExitClosesSession(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()
	ctx := context.Background()

	_, err := advisor.SetPreferences(ctx, st, basePrefs())
	require.NoError(t, err)

	result, err := advisor.HandleTurn(ctx, st, "bye")
	require.NoError(t, err)
	assert.Equal(t, models.IntentExit, result.Intent)
	assert.Equal(t, models.PhaseDone, st.Phase)

	_, err = advisor.HandleTurn(ctx, st, "one more thing")
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = advisor.SetPreferences(ctx, st, basePrefs())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestTurnBeforeRecommendation(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	st := advisor.StartSession()

	_, err := advisor.HandleTurn(context.Background(), st, "hello")

	assert.ErrorIs(t, err, ErrNoRecommendation)
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		utterance string
		want      models.Intent
	}{
		{"exit", models.IntentExit},
		{"  QUIT  ", models.IntentExit},
		{"bye", models.IntentExit},
		{"show me an alternative", models.IntentAlternativeRequest},
		{"I don't like this card", models.IntentAlternativeRequest},
		{"something else maybe?", models.IntentAlternativeRequest},
		{"my income is 5 lakh", models.IntentPreferenceRevision},
		{"i prefer dining discounts", models.IntentPreferenceRevision},
		{"please avoid Beta Bank", models.IntentPreferenceRevision},
		{"what are the lounge benefits?", models.IntentInfoQuery},
		{"does it have a fuel surcharge waiver?", models.IntentInfoQuery},
		{"how much is the joining fee", models.IntentInfoQuery},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.utterance))
		})
	}
}

func TestRepeatedPreferencesAreIdempotent(t *testing.T) {
	advisor := newTestAdvisor(advisorCatalog(t), nil, nil)
	ctx := context.Background()

	st1 := advisor.StartSession()
	rec1, err := advisor.SetPreferences(ctx, st1, basePrefs())
	require.NoError(t, err)

	st2 := advisor.StartSession()
	rec2, err := advisor.SetPreferences(ctx, st2, basePrefs())
	require.NoError(t, err)

	assert.Equal(t, rec1.Card.ID, rec2.Card.ID)
	assert.Equal(t, rec1.Scored, rec2.Scored)
	assert.Equal(t, rec1.Alternates, rec2.Alternates)
}
