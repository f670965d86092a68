package dto

import "cardwise/internal/models"

// CreateSessionResponse carries the new session's ID and its bearer token.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

// PreferencesRequest is the completed questionnaire.
type PreferencesRequest struct {
	Employment        string   `json:"employment"`
	AnnualIncome      int64    `json:"annual_income"`
	CreditBand        string   `json:"credit_band"`
	Categories        []string `json:"categories"`
	Priorities        []string `json:"priorities"`
	PreferredBank     string   `json:"preferred_bank,omitempty"`
	BankRelationships []string `json:"bank_relationships,omitempty"`
}

// ToModel converts the request into domain preferences. Validation happens
// in the service, not here.
func (r *PreferencesRequest) ToModel() *models.UserPreferences {
	prefs := &models.UserPreferences{
		Employment:        models.EmploymentType(r.Employment),
		AnnualIncome:      r.AnnualIncome,
		CreditBand:        models.CreditScoreBand(r.CreditBand),
		PreferredBank:     r.PreferredBank,
		BankRelationships: r.BankRelationships,
	}
	for _, c := range r.Categories {
		prefs.Categories = append(prefs.Categories, models.Category(c))
	}
	for _, p := range r.Priorities {
		prefs.Priorities = append(prefs.Priorities, models.Priority(p))
	}
	return prefs
}

// RecommendationResponse presents a ranking result.
type RecommendationResponse struct {
	CardID       string          `json:"card_id"`
	Bank         string          `json:"bank"`
	Name         string          `json:"name"`
	Score        int             `json:"score"`
	Reasons      []ScoreReason   `json:"reasons"`
	Alternates   []AlternateCard `json:"alternates"`
	Presentation string          `json:"presentation"`
}

type ScoreReason struct {
	Code   string `json:"code"`
	Points int    `json:"points"`
}

type AlternateCard struct {
	CardID string `json:"card_id"`
	Score  int    `json:"score"`
}

// TurnRequest is one conversational utterance.
type TurnRequest struct {
	Message string `json:"message"`
}

// TurnResponse is the advisor's answer to one turn.
type TurnResponse struct {
	Intent   string `json:"intent"`
	Response string `json:"response"`
	CardID   string `json:"card_id,omitempty"`
	Phase    string `json:"phase"`
}

// SessionStateResponse is a read-only view of the session.
type SessionStateResponse struct {
	SessionID     string   `json:"session_id"`
	Phase         string   `json:"phase"`
	CurrentCardID string   `json:"current_card_id,omitempty"`
	Alternates    []string `json:"alternates,omitempty"`
	ExcludedBanks []string `json:"excluded_banks,omitempty"`
	Turns         int      `json:"turns"`
	ExternalCalls int      `json:"external_calls"`
}
