package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cardwise/internal/catalog"
	"cardwise/internal/models"
	"cardwise/internal/service"
	"cardwise/pkg/config"
	"cardwise/pkg/logger"

	"go.uber.org/zap"
)

// Interactive terminal advisor: runs the questionnaire, recommends a card
// and holds the follow-up conversation on stdin.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	cat, err := catalog.LoadFile(cfg.Catalog.Path, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load card catalog", zap.Error(err))
	}

	var generator service.Generator
	if cfg.GigaChat.APIKey != "" {
		llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
		}
		defer llmService.Close()
		generator = llmService
	} else {
		appLogger.Warn("GIGACHAT_API_KEY not set, answers will come from catalog data only")
	}

	fetcher := service.NewFetchService(&cfg.Fetch, appLogger)

	advisor := service.NewAdvisorService(
		cat,
		generator,
		fetcher,
		models.DefaultScoringWeights(),
		cfg.GigaChat.RequestTimeout,
		cfg.Fetch.MaxContentChars,
		appLogger,
	)

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)
	st := advisor.StartSession()

	fmt.Println("Welcome to Cardwise. Answer a few questions and I'll suggest a credit card for you.")
	fmt.Println()

	for {
		prefs := runQuestionnaire(in)

		rec, err := advisor.SetPreferences(ctx, st, prefs)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidPreference):
				fmt.Printf("That didn't look right: %v. Let's try again.\n\n", err)
				continue
			case errors.Is(err, service.ErrNoEligibleCards):
				fmt.Println("No card in the catalog matches those criteria. You could lower the bar on one of them; let's go again.")
				fmt.Println()
				continue
			default:
				appLogger.Fatal("Recommendation failed", zap.Error(err))
			}
		}

		// Prefer a conversational presentation when a generator is
		// configured; the deterministic one is the fallback.
		presentation := rec.Presentation
		if generator != nil {
			if text, err := advisor.GenerateRecommendationText(ctx, st, rec); err == nil {
				presentation = text
			}
		}

		fmt.Println()
		fmt.Println(presentation)
		break
	}

	fmt.Println()
	fmt.Println("Ask me anything about this card, request an alternative, or type 'exit' to finish.")

	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		result, err := advisor.HandleTurn(ctx, st, line)
		if err != nil {
			if errors.Is(err, service.ErrSessionClosed) {
				break
			}
			appLogger.Error("Turn failed", zap.Error(err))
			continue
		}

		fmt.Println()
		fmt.Println(result.Response)
		fmt.Println()

		if st.Phase == models.PhaseDone {
			break
		}
	}
}

func runQuestionnaire(in *bufio.Scanner) *models.UserPreferences {
	prefs := &models.UserPreferences{}

	switch askChoice(in, "What is your employment type?", []string{"Salaried", "Self-employed"}) {
	case 1:
		prefs.Employment = models.EmploymentSalaried
	default:
		prefs.Employment = models.EmploymentSelfEmployed
	}

	lakhs := askFloat(in, "What is your annual income in lakhs? (e.g. 8.5)")
	prefs.AnnualIncome = int64(lakhs * 100000)

	score := askOptionalInt(in, "What is your credit score? (press Enter if you don't know)")
	if score > 0 {
		prefs.CreditBand = models.BandForScore(score)
	} else {
		prefs.CreditBand = models.CreditBandUnknown
	}

	catChoices := askMultiChoice(in, "Where do you spend the most? Pick one or more, comma-separated.", categoryLabels())
	for _, idx := range catChoices {
		prefs.Categories = append(prefs.Categories, models.AllCategories[idx])
	}

	prChoices := askMultiChoice(in, "What matters most to you in a card? Pick any, comma-separated, or press Enter to skip.", priorityLabels())
	for _, idx := range prChoices {
		prefs.Priorities = append(prefs.Priorities, models.AllPriorities[idx])
	}

	if bank := askLine(in, "Any preferred bank? (press Enter to skip)"); bank != "" {
		prefs.PreferredBank = bank
	}
	if banks := askLine(in, "Which banks do you already hold accounts with? (comma-separated, Enter to skip)"); banks != "" {
		for _, b := range strings.Split(banks, ",") {
			if b = strings.TrimSpace(b); b != "" {
				prefs.BankRelationships = append(prefs.BankRelationships, b)
			}
		}
	}

	return prefs
}

func categoryLabels() []string {
	labels := make([]string, len(models.AllCategories))
	for i, c := range models.AllCategories {
		labels[i] = string(c)
	}
	return labels
}

func priorityLabels() []string {
	labels := make([]string, len(models.AllPriorities))
	for i, p := range models.AllPriorities {
		labels[i] = string(p)
	}
	return labels
}

func askLine(in *bufio.Scanner, prompt string) string {
	fmt.Println(prompt)
	fmt.Print("> ")
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func askChoice(in *bufio.Scanner, prompt string, options []string) int {
	for {
		fmt.Println(prompt)
		for i, opt := range options {
			fmt.Printf("  %d. %s\n", i+1, opt)
		}
		fmt.Print("> ")
		if !in.Scan() {
			return 1
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && n >= 1 && n <= len(options) {
			return n
		}
		fmt.Printf("Please enter a number between 1 and %d.\n", len(options))
	}
}

// askMultiChoice returns zero-based indexes of the selected options.
func askMultiChoice(in *bufio.Scanner, prompt string, options []string) []int {
	for {
		fmt.Println(prompt)
		for i, opt := range options {
			fmt.Printf("  %d. %s\n", i+1, opt)
		}
		fmt.Print("> ")
		if !in.Scan() {
			return nil
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			return nil
		}

		var picks []int
		valid := true
		for _, part := range strings.Split(line, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 1 || n > len(options) {
				valid = false
				break
			}
			picks = append(picks, n-1)
		}
		if valid {
			return picks
		}
		fmt.Printf("Please enter numbers between 1 and %d, separated by commas.\n", len(options))
	}
}

func askFloat(in *bufio.Scanner, prompt string) float64 {
	for {
		fmt.Println(prompt)
		fmt.Print("> ")
		if !in.Scan() {
			return 0
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(in.Text()), 64)
		if err == nil && v >= 0 {
			return v
		}
		fmt.Println("Please enter a non-negative number.")
	}
}

func askOptionalInt(in *bufio.Scanner, prompt string) int {
	fmt.Println(prompt)
	fmt.Print("> ")
	if !in.Scan() {
		return 0
	}
	line := strings.TrimSpace(in.Text())
	if line == "" {
		return 0
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
