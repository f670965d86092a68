package service

import (
	"fmt"
	"strings"
)

// PromptRole selects the prompt template for a generation call.
type PromptRole string

const (
	PromptRecommendation     PromptRole = "recommendation"
	PromptFollowupWithWeb    PromptRole = "followup_with_web"
	PromptFollowupCatalog    PromptRole = "followup_catalog_only"
	PromptAlternativePresent PromptRole = "alternative_presentation"
)

// PromptPayload is the structured context handed to the generator. Fields
// not used by the selected role stay empty.
type PromptPayload struct {
	Question     string
	CardData     string
	Alternatives string
	Preferences  string
	WebContent   string
	History      string
}

const advisorSystemInstruction = `You are a credit card advisor. You may only use the structured card data provided in each request.

Rules:
- Only recommend or describe cards present in the provided data.
- Never invent features, fees or offers that are not in the data.
- If the data does not contain the requested information, say so plainly.
- Keep responses concise: two to four sentences.
- Be direct about mismatches between the user's preferences and a card's actual benefits.`

func buildPrompt(role PromptRole, p PromptPayload) string {
	switch role {
	case PromptRecommendation:
		return fmt.Sprintf(`Present this credit card recommendation to the user.

User preferences:
%s

Recommended card (structured data):
%s

Explain in two or three sentences why this card fits the stated preferences, mentioning any notable limitation. Do not list raw data fields.`,
			p.Preferences, p.CardData)

	case PromptFollowupWithWeb:
		return fmt.Sprintf(`Answer the user's question about their recommended card.

Question: %s

User preferences:
%s

Card data:
%s

Current information fetched from the card's official pages:
%s

Answer directly from the card data and the fetched content. If the card lacks the requested feature, say so and note that an alternative card type would be needed.`,
			p.Question, p.Preferences, p.CardData, p.WebContent)

	case PromptFollowupCatalog:
		return fmt.Sprintf(`Answer the user's question using only the card data below.

Question: %s

User preferences:
%s

Current card:
%s

Alternative cards available:
%s

Recent conversation:
%s

If the current card lacks the requested feature, point to an alternative from the list that has it. If nothing in the data answers the question, say the information is not available.`,
			p.Question, p.Preferences, p.CardData, p.Alternatives, p.History)

	case PromptAlternativePresent:
		return fmt.Sprintf(`The user rejected the previous suggestion. Present this alternative card.

User preferences:
%s

Alternative card (structured data):
%s

In two sentences, explain what this card offers over the rejected one for these preferences.`,
			p.Preferences, p.CardData)
	}

	// Unknown role: fall back to the raw question so the call still works.
	var b strings.Builder
	b.WriteString(p.Question)
	if p.CardData != "" {
		b.WriteString("\n\nCard data:\n")
		b.WriteString(p.CardData)
	}
	return b.String()
}
