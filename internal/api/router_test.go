package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardwise/internal/api/handlers"
	"cardwise/internal/catalog"
	"cardwise/internal/dto"
	"cardwise/internal/models"
	"cardwise/internal/service"
	"cardwise/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *auth.JWTManager) {
	t.Helper()

	cat, err := catalog.New([]models.CardRecord{
		{
			ID:         "alpha-travel",
			Bank:       "Alpha Bank",
			Name:       "Alpha Travel Card",
			Categories: []models.Category{models.CategoryTravel, models.CategoryLoungeAccess},
			Benefits:   models.BenefitFlags{LoungeAccess: true, FuelWaiver: true},
			MinIncome:  500000,
			Tier:       models.TierPremium,
		},
		{
			ID:         "beta-cash",
			Bank:       "Beta Bank",
			Name:       "Beta Cashback Card",
			Categories: []models.Category{models.CategoryCashback},
			Benefits:   models.BenefitFlags{Cashback: true, NoAnnualFee: true},
			MinIncome:  200000,
			Tier:       models.TierStandard,
		},
	})
	require.NoError(t, err)

	advisor := service.NewAdvisorService(cat, nil, nil, models.DefaultScoringWeights(), time.Second, 2000, zap.NewNop())
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	sessionHandler := handlers.NewSessionHandler(advisor, jwtManager, zap.NewNop())

	return SetupRouter(sessionHandler, jwtManager, zap.NewNop()), jwtManager
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func validPreferences() dto.PreferencesRequest {
	return dto.PreferencesRequest{
		Employment:   "salaried",
		AnnualIncome: 1200000,
		CreditBand:   "excellent",
		Categories:   []string{"Travel", "Lounge Access"},
		Priorities:   []string{"lounge access", "fuel waiver"},
	}
}

func TestSessionLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)

	// Create a session.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateSessionResponse](t, resp)
	require.NotEmpty(t, created.Token)

	// Submit the questionnaire.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/sessions/preferences", created.Token, validPreferences())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decode[dto.RecommendationResponse](t, resp)
	assert.Equal(t, "alpha-travel", rec.CardID)
	assert.NotEmpty(t, rec.Reasons)
	assert.NotEmpty(t, rec.Presentation)

	// Ask a question; with no generator configured the answer comes from
	// catalog data.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/sessions/turns", created.Token, dto.TurnRequest{Message: "does it have lounge access?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	turn := decode[dto.TurnResponse](t, resp)
	assert.Equal(t, "info_query", turn.Intent)
	assert.Equal(t, "conversing", turn.Phase)
	assert.Contains(t, turn.Response, "Alpha Travel Card")

	// Inspect state.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/sessions/state", created.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[dto.SessionStateResponse](t, resp)
	assert.Equal(t, created.SessionID, state.SessionID)
	assert.Equal(t, "alpha-travel", state.CurrentCardID)
	assert.Equal(t, 1, state.Turns)
	assert.Zero(t, state.ExternalCalls)

	// Exit closes the session.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/sessions/turns", created.Token, dto.TurnRequest{Message: "exit"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	turn = decode[dto.TurnResponse](t, resp)
	assert.Equal(t, "exit", turn.Intent)
	assert.Equal(t, "done", turn.Phase)

	// Further turns are rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/sessions/turns", created.Token, dto.TurnRequest{Message: "hello"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPreferencesRejectedWithoutToken(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/sessions/preferences", "", validPreferences())

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownSessionTokenIsNotFound(t *testing.T) {
	app, jwtManager := setupTestApp(t)

	// Valid signature, but the session was never created on this server.
	token, err := jwtManager.GenerateToken("ghost-session")
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/sessions/preferences", token, validPreferences())

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidPreferencesRejected(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/sessions", "", nil)
	created := decode[dto.CreateSessionResponse](t, resp)

	prefs := validPreferences()
	prefs.Categories = nil

	resp = doJSON(t, app, http.MethodPost, "/api/v1/sessions/preferences", created.Token, prefs)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNoEligibleCardsIsUnprocessable(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/sessions", "", nil)
	created := decode[dto.CreateSessionResponse](t, resp)

	prefs := validPreferences()
	prefs.AnnualIncome = 100000

	resp = doJSON(t, app, http.MethodPost, "/api/v1/sessions/preferences", created.Token, prefs)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestTurnBeforePreferencesIsConflict(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/sessions", "", nil)
	created := decode[dto.CreateSessionResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/sessions/turns", created.Token, dto.TurnRequest{Message: "hello"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
