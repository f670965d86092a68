package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cardwise/internal/catalog"
	"cardwise/internal/models"
	"cardwise/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNoEligibleCards means the filter returned nothing even after the
	// relaxation pass. Recovered at the orchestrator boundary.
	ErrNoEligibleCards = errors.New("no eligible cards for the given preferences")

	// ErrInvalidPreference means a selection was malformed or outside the
	// known vocabularies. The caller should re-prompt, never default.
	ErrInvalidPreference = errors.New("invalid preference selection")

	// ErrNoRecommendation means a conversational turn arrived before any
	// ranking pass installed a recommendation.
	ErrNoRecommendation = errors.New("no recommendation installed yet")

	// ErrSessionClosed means the session already reached its terminal state.
	ErrSessionClosed = errors.New("session is closed")
)

const apologyMessage = "I'm sorry, I can't answer that right now. Please ask about your recommended card's features, fees or benefits, or request an alternative."

// Recommendation is the outcome of one successful ranking pass.
type Recommendation struct {
	Card         *models.CardRecord  `json:"card"`
	Scored       models.ScoredCard   `json:"scored"`
	Alternates   []models.ScoredCard `json:"alternates"`
	Presentation string              `json:"presentation"`
}

// TurnResult is the advisor's answer to one conversational turn.
type TurnResult struct {
	Intent   models.Intent `json:"intent"`
	Response string        `json:"response"`
	CardID   string        `json:"card_id,omitempty"`
}

// AdvisorService orchestrates the filter, scorer and ranker over one
// session's state and decides, per turn, whether to answer from cached
// state, promote an alternate, or re-rank. All external collaborator use
// goes through the Generator and Fetcher interfaces and is degraded through
// an ordered fallback chain; a failed call never leaves the session state
// partially updated.
type AdvisorService struct {
	catalog   *catalog.Catalog
	generator Generator
	fetcher   Fetcher
	weights   models.ScoringWeights

	callTimeout   time.Duration
	maxFetchChars int
	logger        *zap.Logger
}

func NewAdvisorService(
	cat *catalog.Catalog,
	generator Generator,
	fetcher Fetcher,
	weights models.ScoringWeights,
	callTimeout time.Duration,
	maxFetchChars int,
	logger *zap.Logger,
) *AdvisorService {
	return &AdvisorService{
		catalog:       cat,
		generator:     generator,
		fetcher:       fetcher,
		weights:       weights,
		callTimeout:   callTimeout,
		maxFetchChars: maxFetchChars,
		logger:        logger,
	}
}

// Catalog exposes the shared read-only catalog.
func (s *AdvisorService) Catalog() *catalog.Catalog {
	return s.catalog
}

// StartSession creates a fresh session in the collecting phase.
func (s *AdvisorService) StartSession() *models.ConversationState {
	st := models.NewConversationState(uuid.New().String())
	metrics.SessionsStarted.Inc()
	s.logger.Info("Session started", zap.String("session_id", st.ID))
	return st
}

// ValidatePreferences checks a preference set against the closed
// vocabularies and the structural invariants.
func (s *AdvisorService) ValidatePreferences(prefs *models.UserPreferences) error {
	if prefs == nil {
		return fmt.Errorf("%w: preferences missing", ErrInvalidPreference)
	}
	if prefs.Employment != models.EmploymentSalaried && prefs.Employment != models.EmploymentSelfEmployed {
		return fmt.Errorf("%w: unknown employment type %q", ErrInvalidPreference, prefs.Employment)
	}
	if prefs.AnnualIncome < 0 {
		return fmt.Errorf("%w: negative income", ErrInvalidPreference)
	}
	if !prefs.CreditBand.IsValid() {
		return fmt.Errorf("%w: unknown credit band %q", ErrInvalidPreference, prefs.CreditBand)
	}
	if len(prefs.Categories) == 0 {
		return fmt.Errorf("%w: at least one spending category is required", ErrInvalidPreference)
	}
	for _, cat := range prefs.Categories {
		if !cat.IsValid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidPreference, cat)
		}
	}
	for _, pr := range prefs.Priorities {
		if !pr.IsValid() {
			return fmt.Errorf("%w: unknown priority %q", ErrInvalidPreference, pr)
		}
	}
	return nil
}

// SetPreferences installs a complete preference set and runs the full
// pipeline. On success the session moves to the conversing phase. On
// ErrNoEligibleCards the session state is left untouched, still collecting.
func (s *AdvisorService) SetPreferences(ctx context.Context, st *models.ConversationState, prefs *models.UserPreferences) (*Recommendation, error) {
	if st.Phase == models.PhaseDone {
		return nil, ErrSessionClosed
	}
	if err := s.ValidatePreferences(prefs); err != nil {
		return nil, err
	}

	result, err := s.runPipeline(prefs, st.ExcludedBanks())
	if err != nil {
		return nil, err
	}

	// Ranking computed; only now touch the state.
	st.ActivePrefs = prefs
	st.InstallRecommendation(result.Primary.CardID, result.AlternateIDs())
	metrics.Recommendations.Inc()

	card, err := s.catalog.ByID(result.Primary.CardID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Recommendation installed",
		zap.String("session_id", st.ID),
		zap.String("card_id", card.ID),
		zap.Int("score", result.Primary.Score),
		zap.Int("alternates", len(result.Alternates)),
	)

	return &Recommendation{
		Card:         card,
		Scored:       result.Primary,
		Alternates:   result.Alternates,
		Presentation: s.renderRecommendation(card, result.Primary),
	}, nil
}

// HandleTurn classifies and answers one conversational turn. Recovered
// failures become user-visible responses; only structural misuse (no
// recommendation yet, closed session) surfaces as an error.
func (s *AdvisorService) HandleTurn(ctx context.Context, st *models.ConversationState, utterance string) (*TurnResult, error) {
	if st.Phase == models.PhaseDone {
		return nil, ErrSessionClosed
	}
	if st.Phase != models.PhaseConversing {
		return nil, ErrNoRecommendation
	}

	intent := ClassifyIntent(utterance)
	metrics.Turns.WithLabelValues(string(intent)).Inc()

	// External-call accounting: at most one increment per turn, however
	// many collaborator calls the turn made.
	usedExternal := false
	markExternal := func(kind string) {
		metrics.ExternalCalls.WithLabelValues(kind).Inc()
		usedExternal = true
	}

	var result *TurnResult
	switch intent {
	case models.IntentExit:
		result = s.handleExit(st)
	case models.IntentAlternativeRequest:
		result = s.handleAlternative(st)
	case models.IntentPreferenceRevision:
		result = s.handleRevision(st, utterance)
	default:
		result = s.handleInfoQuery(ctx, st, utterance, markExternal)
	}

	if usedExternal {
		st.MarkExternalCall()
	}
	st.RecordTurn(utterance, summarize(result.Response))

	return result, nil
}

func (s *AdvisorService) handleExit(st *models.ConversationState) *TurnResult {
	// Rendered from state on purpose: a farewell never spends an external
	// call.
	msg := "Thanks for stopping by. Good luck with your application!"
	if card, err := s.catalog.ByID(st.CurrentCardID); err == nil {
		msg = fmt.Sprintf("Great choice! The %s from %s fits what you told me. Use it responsibly and enjoy the benefits.", card.Name, card.Bank)
	}
	st.Phase = models.PhaseDone
	return &TurnResult{Intent: models.IntentExit, Response: msg, CardID: st.CurrentCardID}
}

func (s *AdvisorService) handleAlternative(st *models.ConversationState) *TurnResult {
	bankOf := func(cardID string) string {
		card, err := s.catalog.ByID(cardID)
		if err != nil {
			return ""
		}
		return card.Bank
	}

	if id, ok := st.PromoteAlternate(bankOf); ok {
		card, err := s.catalog.ByID(id)
		if err != nil {
			return &TurnResult{Intent: models.IntentAlternativeRequest, Response: apologyMessage}
		}
		return &TurnResult{
			Intent:   models.IntentAlternativeRequest,
			Response: "Here's another option.\n\n" + s.renderCardSummary(card),
			CardID:   card.ID,
		}
	}

	// Alternates exhausted: re-rank with the current card's bank excluded.
	prev, err := s.catalog.ByID(st.CurrentCardID)
	if err != nil {
		return &TurnResult{Intent: models.IntentAlternativeRequest, Response: apologyMessage}
	}

	excluded := st.ExcludedBanks()
	excluded[prev.Bank] = struct{}{}

	result, err := s.runPipeline(st.ActivePrefs, excluded)
	if err != nil {
		// No further candidates; keep the state as it is.
		return &TurnResult{
			Intent:   models.IntentAlternativeRequest,
			Response: "I've shown you every card that matches your criteria. Would you like to revise your preferences instead?",
			CardID:   st.CurrentCardID,
		}
	}

	st.ExcludeBank(prev.Bank)
	st.InstallRecommendation(result.Primary.CardID, result.AlternateIDs())
	metrics.Recommendations.Inc()

	card, err := s.catalog.ByID(result.Primary.CardID)
	if err != nil {
		return &TurnResult{Intent: models.IntentAlternativeRequest, Response: apologyMessage}
	}

	s.logger.Info("Re-ranked after exhausting alternates",
		zap.String("session_id", st.ID),
		zap.String("excluded_bank", prev.Bank),
		zap.String("new_card_id", card.ID),
	)

	return &TurnResult{
		Intent:   models.IntentAlternativeRequest,
		Response: fmt.Sprintf("I've set %s aside and looked again.\n\n%s", prev.Bank, s.renderCardSummary(card)),
		CardID:   card.ID,
	}
}

func (s *AdvisorService) handleRevision(st *models.ConversationState, utterance string) *TurnResult {
	revised, excludeBanks, changed := s.parseRevision(utterance, st.ActivePrefs)
	if !changed {
		return &TurnResult{
			Intent:   models.IntentPreferenceRevision,
			Response: "I couldn't map that to a preference I know. You can name a spending category, a priority like cashback or lounge access, your income in lakhs, or a bank to prefer or avoid.",
			CardID:   st.CurrentCardID,
		}
	}

	// Exclusions from the revision join the session's grow-only set; the
	// re-rank is computed before any of it is committed.
	excluded := st.ExcludedBanks()
	for _, bank := range excludeBanks {
		excluded[bank] = struct{}{}
	}

	result, err := s.runPipeline(revised, excluded)
	if err != nil {
		return &TurnResult{
			Intent:   models.IntentPreferenceRevision,
			Response: "With those changes nothing in the catalog qualifies, so I've kept your previous recommendation. You could raise the income figure or drop a constraint.",
			CardID:   st.CurrentCardID,
		}
	}

	st.ActivePrefs = revised
	for _, bank := range excludeBanks {
		st.ExcludeBank(bank)
	}
	st.InstallRecommendation(result.Primary.CardID, result.AlternateIDs())
	metrics.Recommendations.Inc()

	card, err := s.catalog.ByID(result.Primary.CardID)
	if err != nil {
		return &TurnResult{Intent: models.IntentPreferenceRevision, Response: apologyMessage}
	}

	return &TurnResult{
		Intent:   models.IntentPreferenceRevision,
		Response: "Got it, I've updated your preferences.\n\n" + s.renderCardSummary(card),
		CardID:   card.ID,
	}
}

// handleInfoQuery walks the ordered fallback chain:
// generation with fetched content, generation with catalog data only,
// direct catalog rendering, generic apology.
func (s *AdvisorService) handleInfoQuery(ctx context.Context, st *models.ConversationState, question string, markExternal func(kind string)) *TurnResult {
	card, err := s.catalog.ByID(st.CurrentCardID)
	if err != nil {
		return &TurnResult{Intent: models.IntentInfoQuery, Response: apologyMessage}
	}

	payload := PromptPayload{
		Question:     question,
		CardData:     mustJSON(card),
		Alternatives: mustJSON(s.alternateCards(st)),
		Preferences:  mustJSON(st.ActivePrefs),
		History:      s.recentHistory(st),
	}

	// Stage 1: current-info questions get web-augmented generation, using
	// only the card's own links.
	if s.fetcher != nil && s.generator != nil && wantsCurrentInfo(question) && len(card.Links) > 0 {
		webContent := s.fetchCardLinks(ctx, card, markExternal)
		if webContent != "" {
			payload.WebContent = webContent
			if text, err := s.generate(ctx, PromptFollowupWithWeb, payload, markExternal); err == nil {
				return &TurnResult{Intent: models.IntentInfoQuery, Response: text, CardID: card.ID}
			}
		}
	}

	// Stage 2: generation from catalog data only.
	if s.generator != nil {
		payload.WebContent = ""
		if text, err := s.generate(ctx, PromptFollowupCatalog, payload, markExternal); err == nil {
			return &TurnResult{Intent: models.IntentInfoQuery, Response: text, CardID: card.ID}
		}
	}

	// Stage 3: direct catalog data.
	return &TurnResult{
		Intent:   models.IntentInfoQuery,
		Response: s.renderCardSummary(card),
		CardID:   card.ID,
	}
}

func (s *AdvisorService) generate(ctx context.Context, role PromptRole, payload PromptPayload, markExternal func(kind string)) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	markExternal("generate")
	text, err := s.generator.Generate(callCtx, role, payload)
	if err != nil {
		s.logger.Warn("Generation failed, falling back", zap.String("role", string(role)), zap.Error(err))
		return "", err
	}
	return text, nil
}

// fetchCardLinks pulls text from up to three of the card's own links.
func (s *AdvisorService) fetchCardLinks(ctx context.Context, card *models.CardRecord, markExternal func(kind string)) string {
	var b strings.Builder
	links := card.Links
	if len(links) > 3 {
		links = links[:3]
	}

	for _, link := range links {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		markExternal("fetch")
		content, err := s.fetcher.Fetch(callCtx, link.URL, s.maxFetchChars)
		cancel()
		if err != nil {
			s.logger.Warn("Link fetch failed", zap.String("url", link.URL), zap.Error(err))
			continue
		}
		if content != "" {
			fmt.Fprintf(&b, "From %s: %s\n", link.Title, content)
		}
	}

	return b.String()
}

// runPipeline executes filter, score and rank without touching any session
// state. The relaxation pass waives only the bank-customer-only gate.
func (s *AdvisorService) runPipeline(prefs *models.UserPreferences, excludedBanks map[string]struct{}) (RankResult, error) {
	all := s.catalog.All()

	eligible := FilterEligible(all, prefs, excludedBanks)
	if len(eligible) == 0 {
		eligible = FilterRelaxed(all, prefs, excludedBanks)
	}
	if len(eligible) == 0 {
		return RankResult{}, ErrNoEligibleCards
	}

	scored := ScoreCards(eligible, prefs, s.weights)
	result, ok := RankCards(scored, prefs, func(id string) *models.CardRecord {
		card, _ := s.catalog.ByID(id)
		return card
	})
	if !ok {
		return RankResult{}, ErrNoEligibleCards
	}
	return result, nil
}

// GenerateRecommendationText asks the generator to present a freshly
// installed recommendation conversationally. Callers treat failure as
// non-fatal and fall back to the deterministic presentation. The call is
// charged against the session's external budget.
func (s *AdvisorService) GenerateRecommendationText(ctx context.Context, st *models.ConversationState, rec *Recommendation) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("no generator configured")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	metrics.ExternalCalls.WithLabelValues("generate").Inc()
	st.MarkExternalCall()

	text, err := s.generator.Generate(callCtx, PromptRecommendation, PromptPayload{
		CardData:    mustJSON(rec.Card),
		Preferences: mustJSON(st.ActivePrefs),
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// renderRecommendation builds the deterministic presentation from the score
// reasons; no collaborator involved.
func (s *AdvisorService) renderRecommendation(card *models.CardRecord, scored models.ScoredCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recommended: %s from %s\n", card.Name, card.Bank)
	if len(scored.Reasons) > 0 {
		b.WriteString("Why this card:\n")
		for _, reason := range scored.Reasons {
			fmt.Fprintf(&b, "  - %s (+%d)\n", reasonText(reason.Code), reason.Points)
		}
	} else {
		b.WriteString("This is the strongest match you're eligible for, though none of your stated preferences lined up directly.\n")
	}
	b.WriteString("\n")
	b.WriteString(s.renderCardSummary(card))
	return b.String()
}

// renderCardSummary prints key card details directly from catalog data.
func (s *AdvisorService) renderCardSummary(card *models.CardRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", card.Name, card.Bank)
	fmt.Fprintf(&b, "Tier: %s\n", card.Tier)
	fmt.Fprintf(&b, "Minimum income: ₹%s per year\n", formatRupees(card.MinIncome))
	if card.MinCreditScore > 0 {
		fmt.Fprintf(&b, "Minimum credit score: %d\n", card.MinCreditScore)
	}
	if card.BankCustomerOnly {
		fmt.Fprintf(&b, "Available to existing %s customers only\n", card.Bank)
	}
	if benefits := benefitList(card); len(benefits) > 0 {
		fmt.Fprintf(&b, "Benefits: %s\n", strings.Join(benefits, ", "))
	}
	if len(card.Categories) > 0 {
		cats := make([]string, 0, len(card.Categories))
		for _, cat := range card.Categories {
			cats = append(cats, string(cat))
		}
		fmt.Fprintf(&b, "Good for: %s\n", strings.Join(cats, ", "))
	}
	return b.String()
}

func (s *AdvisorService) alternateCards(st *models.ConversationState) []models.CardRecord {
	var cards []models.CardRecord
	for _, id := range st.RankedAlternates {
		if card, err := s.catalog.ByID(id); err == nil {
			cards = append(cards, *card)
		}
	}
	return cards
}

func (s *AdvisorService) recentHistory(st *models.ConversationState) string {
	turns := st.TurnHistory
	if len(turns) > 3 {
		turns = turns[len(turns)-3:]
	}
	var b strings.Builder
	for _, turn := range turns {
		fmt.Fprintf(&b, "User: %s\nAdvisor: %s\n", turn.Utterance, turn.ResponseSummary)
	}
	if b.Len() == 0 {
		return "No previous conversation"
	}
	return b.String()
}

var exitTokens = map[string]bool{
	"exit": true, "quit": true, "bye": true, "done": true, "goodbye": true,
}

var alternativePhrases = []string{
	"alternative", "another card", "different card", "something else",
	"other card", "don't like", "do not like", "not interested", "next option",
}

var revisionPhrases = []string{
	"i want", "i prefer", "i'd rather", "change my", "update my", "instead of",
	"my income is", "avoid ", "exclude ", "add ", "also care about",
}

// ClassifyIntent maps one utterance onto a turn intent. Rule-based and
// deterministic so the state machine is testable without a collaborator.
func ClassifyIntent(utterance string) models.Intent {
	text := strings.ToLower(strings.TrimSpace(utterance))

	if exitTokens[text] {
		return models.IntentExit
	}
	for _, phrase := range alternativePhrases {
		if strings.Contains(text, phrase) {
			return models.IntentAlternativeRequest
		}
	}
	for _, phrase := range revisionPhrases {
		if strings.Contains(text, phrase) {
			return models.IntentPreferenceRevision
		}
	}
	return models.IntentInfoQuery
}

var incomePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*lakh`)

// parseRevision extracts preference changes from an utterance. It returns a
// revised copy of prefs (the original is untouched), any banks to exclude,
// and whether anything actionable was found.
func (s *AdvisorService) parseRevision(utterance string, prefs *models.UserPreferences) (*models.UserPreferences, []string, bool) {
	text := strings.ToLower(utterance)
	revised := prefs.Clone()
	changed := false

	for _, pr := range models.AllPriorities {
		if strings.Contains(text, string(pr)) && !revised.HasPriority(pr) {
			revised.AddPriority(pr)
			changed = true
		}
	}

	for _, cat := range models.AllCategories {
		if strings.Contains(text, strings.ToLower(string(cat))) && !revised.HasCategory(cat) {
			revised.AddCategory(cat)
			changed = true
		}
	}

	if m := incomePattern.FindStringSubmatch(text); m != nil {
		if lakhs, err := strconv.ParseFloat(m[1], 64); err == nil {
			revised.AnnualIncome = int64(lakhs * 100000)
			changed = true
		}
	}

	// Bank mentions resolve against catalog banks only; free-text bank
	// names never enter the exclusion set.
	var excludeBanks []string
	for _, card := range s.catalog.All() {
		bankLower := strings.ToLower(card.Bank)
		if !strings.Contains(text, bankLower) {
			continue
		}
		switch {
		case strings.Contains(text, "avoid") || strings.Contains(text, "exclude") || strings.Contains(text, "not from"):
			excludeBanks = append(excludeBanks, card.Bank)
			changed = true
		case strings.Contains(text, "prefer") || strings.Contains(text, "i want"):
			revised.PreferredBank = card.Bank
			changed = true
		}
	}

	return revised, dedupe(excludeBanks), changed
}

var currentInfoKeywords = []string{
	"latest", "current", "offer", "apply", "application", "website", "official",
}

func wantsCurrentInfo(question string) bool {
	text := strings.ToLower(question)
	for _, kw := range currentInfoKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func reasonText(code models.ReasonCode) string {
	switch code {
	case models.ReasonCategoryExact:
		return "matches one of your spending categories"
	case models.ReasonCategoryRelated:
		return "covers a category related to your spending"
	case models.ReasonNoAnnualFee:
		return "no annual fee, which you asked for"
	case models.ReasonLoungeAccess:
		return "includes lounge access"
	case models.ReasonCashback:
		return "earns cashback"
	case models.ReasonTravelRewards:
		return "earns travel rewards"
	case models.ReasonFuelWaiver:
		return "waives fuel surcharges"
	case models.ReasonMovieBenefits:
		return "movie ticket benefits"
	case models.ReasonDiningDiscounts:
		return "dining discounts"
	case models.ReasonRailwayBenefits:
		return "railway booking benefits"
	case models.ReasonInsurance:
		return "insurance coverage"
	case models.ReasonMilestoneRewards:
		return "milestone spending rewards"
	case models.ReasonWelcomeBenefits:
		return "welcome benefits"
	case models.ReasonPreferredBank:
		return "issued by your preferred bank"
	case models.ReasonPremiumTier:
		return "premium card matching your income level"
	default:
		return string(code)
	}
}

func benefitList(card *models.CardRecord) []string {
	var out []string
	b := card.Benefits
	if b.NoAnnualFee {
		out = append(out, "no annual fee")
	}
	if b.LoungeAccess {
		out = append(out, "lounge access")
	}
	if b.Cashback {
		out = append(out, "cashback")
	}
	if b.TravelRewards {
		out = append(out, "travel rewards")
	}
	if b.FuelWaiver {
		out = append(out, "fuel surcharge waiver")
	}
	if b.RailwayBenefit {
		out = append(out, "railway benefits")
	}
	if b.MovieBenefits {
		out = append(out, "movie benefits")
	}
	if b.DiningDiscounts {
		out = append(out, "dining discounts")
	}
	if b.Insurance {
		out = append(out, "insurance cover")
	}
	if b.MilestoneRewards {
		out = append(out, "milestone rewards")
	}
	if b.WelcomeBenefits {
		out = append(out, "welcome benefits")
	}
	return out
}

func formatRupees(amount int64) string {
	if amount >= 100000 && amount%100000 == 0 {
		return fmt.Sprintf("%d lakh", amount/100000)
	}
	return strconv.FormatInt(amount, 10)
}

func summarize(response string) string {
	const maxLen = 120
	line := response
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	runes := []rune(line)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return line
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func mustJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
