package models

// Phase is the lifecycle state of one advisory session.
type Phase string

const (
	PhaseCollecting   Phase = "collecting_preferences"
	PhaseRecommending Phase = "recommending"
	PhaseConversing   Phase = "conversing"
	PhaseDone         Phase = "done"
)

// Intent classifies a single conversational turn.
type Intent string

const (
	IntentInfoQuery          Intent = "info_query"
	IntentAlternativeRequest Intent = "alternative_request"
	IntentPreferenceRevision Intent = "preference_revision"
	IntentExit               Intent = "exit"
)

// Turn is one exchange recorded in the session history.
type Turn struct {
	Utterance       string `json:"utterance"`
	ResponseSummary string `json:"response_summary"`
}

// ConversationState is the mutable record of one session. It is owned by
// exactly one session, never shared and never persisted. Excluded banks only
// grow for the life of the session.
type ConversationState struct {
	ID               string
	Phase            Phase
	CurrentCardID    string
	RankedAlternates []string
	TurnHistory      []Turn
	ActivePrefs      *UserPreferences

	excludedBanks map[string]struct{}
	externalCalls int
}

// NewConversationState starts a session in the collecting phase.
func NewConversationState(id string) *ConversationState {
	return &ConversationState{
		ID:            id,
		Phase:         PhaseCollecting,
		excludedBanks: make(map[string]struct{}),
	}
}

// InstallRecommendation replaces the current card and alternates atomically
// and moves the session to the conversing phase. Callers must fully compute
// the new ranking before calling, so a failed turn never leaves the state
// partially updated.
func (s *ConversationState) InstallRecommendation(primaryID string, alternateIDs []string) {
	s.CurrentCardID = primaryID
	s.RankedAlternates = append([]string(nil), alternateIDs...)
	s.Phase = PhaseConversing
}

// PromoteAlternate pops the best unused alternate whose bank is not
// excluded and makes it current. bankOf resolves a card id to its bank.
func (s *ConversationState) PromoteAlternate(bankOf func(cardID string) string) (string, bool) {
	for len(s.RankedAlternates) > 0 {
		next := s.RankedAlternates[0]
		s.RankedAlternates = s.RankedAlternates[1:]
		if _, excluded := s.excludedBanks[bankOf(next)]; excluded {
			continue
		}
		s.CurrentCardID = next
		return next, true
	}
	return "", false
}

// ExcludeBank permanently removes a bank from consideration. There is no
// way to un-exclude within a session.
func (s *ConversationState) ExcludeBank(bank string) {
	if bank == "" {
		return
	}
	s.excludedBanks[bank] = struct{}{}
}

// ExcludedBanks returns a copy of the excluded set.
func (s *ConversationState) ExcludedBanks() map[string]struct{} {
	out := make(map[string]struct{}, len(s.excludedBanks))
	for bank := range s.excludedBanks {
		out[bank] = struct{}{}
	}
	return out
}

// IsExcluded reports whether the bank was excluded earlier in the session.
func (s *ConversationState) IsExcluded(bank string) bool {
	_, ok := s.excludedBanks[bank]
	return ok
}

// RecordTurn appends one exchange to the history.
func (s *ConversationState) RecordTurn(utterance, responseSummary string) {
	s.TurnHistory = append(s.TurnHistory, Turn{
		Utterance:       utterance,
		ResponseSummary: responseSummary,
	})
}

// MarkExternalCall accounts for one turn that invoked an external
// collaborator. At most one increment per turn regardless of how many
// collaborator calls the turn made.
func (s *ConversationState) MarkExternalCall() {
	s.externalCalls++
}

// ExternalCallCount returns the number of turns that reached an external
// collaborator.
func (s *ConversationState) ExternalCallCount() int {
	return s.externalCalls
}
