package service

import (
	"sort"

	"cardwise/internal/models"
)

// maxAlternates bounds the alternate list installed after the primary.
const maxAlternates = 4

// RankResult is a completed ranking pass: one primary and the ordered
// alternates that follow it.
type RankResult struct {
	Primary    models.ScoredCard
	Alternates []models.ScoredCard
}

// RankCards orders scored cards best first and splits off the primary and
// alternates. Input order must be catalog load order; the sort is stable,
// so equal entries keep that order. Ties prefer no-annual-fee cards when
// the user selected that priority (or low fees), otherwise load order
// decides. Never random: repeated calls on the same input produce the same
// ranking, even when every score is zero.
func RankCards(scored []models.ScoredCard, prefs *models.UserPreferences, cardByID func(id string) *models.CardRecord) (RankResult, bool) {
	if len(scored) == 0 {
		return RankResult{}, false
	}

	ranked := append([]models.ScoredCard(nil), scored...)

	preferNoFee := prefs.HasPriority(models.PriorityNoAnnualFee) || prefs.HasPriority(models.PriorityLowFees)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if preferNoFee {
			// A missing lookup falls back to load order.
			ci, cj := cardByID(ranked[i].CardID), cardByID(ranked[j].CardID)
			if ci != nil && cj != nil && ci.Benefits.NoAnnualFee != cj.Benefits.NoAnnualFee {
				return ci.Benefits.NoAnnualFee
			}
		}
		return false // stable sort keeps load order
	})

	result := RankResult{Primary: ranked[0]}
	rest := ranked[1:]
	if len(rest) > maxAlternates {
		rest = rest[:maxAlternates]
	}
	result.Alternates = append([]models.ScoredCard(nil), rest...)

	return result, true
}

// AlternateIDs extracts the alternate card ids in rank order.
func (r RankResult) AlternateIDs() []string {
	ids := make([]string, 0, len(r.Alternates))
	for _, alt := range r.Alternates {
		ids = append(ids, alt.CardID)
	}
	return ids
}
