package handlers

import (
	"errors"
	"sync"

	"cardwise/internal/dto"
	"cardwise/internal/models"
	"cardwise/internal/service"
	"cardwise/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// sessionEntry pairs a session's state with a lock. Turns within one
// session are processed strictly one at a time; separate sessions proceed
// independently.
type sessionEntry struct {
	mu    sync.Mutex
	state *models.ConversationState
}

type SessionHandler struct {
	advisor    *service.AdvisorService
	jwtManager *auth.JWTManager
	logger     *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewSessionHandler(advisor *service.AdvisorService, jwtManager *auth.JWTManager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		advisor:    advisor,
		jwtManager: jwtManager,
		logger:     logger,
		sessions:   make(map[string]*sessionEntry),
	}
}

// CreateSession godoc
// @Summary Start an advisory session
// @Description Creates a new session and returns its bearer token
// @Tags sessions
// @Produce json
// @Success 201 {object} dto.CreateSessionResponse
// @Failure 500 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	st := h.advisor.StartSession()

	token, err := h.jwtManager.GenerateToken(st.ID)
	if err != nil {
		h.logger.Error("Failed to issue session token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	h.mu.Lock()
	h.sessions[st.ID] = &sessionEntry{state: st}
	h.mu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(dto.CreateSessionResponse{
		SessionID: st.ID,
		Token:     token,
	})
}

// SubmitPreferences godoc
// @Summary Submit the completed questionnaire
// @Description Installs preferences and returns the first recommendation
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.PreferencesRequest true "Preference selections"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security Bearer
// @Router /sessions/preferences [post]
func (h *SessionHandler) SubmitPreferences(c *fiber.Ctx) error {
	entry, ok := h.entryFor(c)
	if !ok {
		return sessionNotFound(c)
	}

	var req dto.PreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	rec, err := h.advisor.SetPreferences(c.Context(), entry.state, req.ToModel())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPreference):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrNoEligibleCards):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "No card in the catalog matches these criteria",
			})
		case errors.Is(err, service.ErrSessionClosed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Session is closed",
			})
		default:
			h.logger.Error("Recommendation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Recommendation failed",
			})
		}
	}

	return c.JSON(toRecommendationResponse(rec))
}

// PostTurn godoc
// @Summary Send a conversational turn
// @Description Classifies the message and answers it against the current recommendation
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.TurnRequest true "User message"
// @Success 200 {object} dto.TurnResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security Bearer
// @Router /sessions/turns [post]
func (h *SessionHandler) PostTurn(c *fiber.Ctx) error {
	entry, ok := h.entryFor(c)
	if !ok {
		return sessionNotFound(c)
	}

	var req dto.TurnRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	result, err := h.advisor.HandleTurn(c.Context(), entry.state, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoRecommendation):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Submit preferences before conversing",
			})
		case errors.Is(err, service.ErrSessionClosed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Session is closed",
			})
		default:
			h.logger.Error("Turn failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Turn failed",
			})
		}
	}

	return c.JSON(dto.TurnResponse{
		Intent:   string(result.Intent),
		Response: result.Response,
		CardID:   result.CardID,
		Phase:    string(entry.state.Phase),
	})
}

// GetState godoc
// @Summary Inspect session state
// @Description Returns the session's phase, current card and counters
// @Tags sessions
// @Produce json
// @Success 200 {object} dto.SessionStateResponse
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /sessions/state [get]
func (h *SessionHandler) GetState(c *fiber.Ctx) error {
	entry, ok := h.entryFor(c)
	if !ok {
		return sessionNotFound(c)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	st := entry.state
	var excluded []string
	for bank := range st.ExcludedBanks() {
		excluded = append(excluded, bank)
	}

	return c.JSON(dto.SessionStateResponse{
		SessionID:     st.ID,
		Phase:         string(st.Phase),
		CurrentCardID: st.CurrentCardID,
		Alternates:    st.RankedAlternates,
		ExcludedBanks: excluded,
		Turns:         len(st.TurnHistory),
		ExternalCalls: st.ExternalCallCount(),
	})
}

func (h *SessionHandler) entryFor(c *fiber.Ctx) (*sessionEntry, bool) {
	sessionID, _ := c.Locals("sessionID").(string)
	if sessionID == "" {
		return nil, false
	}
	h.mu.RLock()
	entry, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	return entry, ok
}

func sessionNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Session not found",
	})
}

func toRecommendationResponse(rec *service.Recommendation) dto.RecommendationResponse {
	resp := dto.RecommendationResponse{
		CardID:       rec.Card.ID,
		Bank:         rec.Card.Bank,
		Name:         rec.Card.Name,
		Score:        rec.Scored.Score,
		Presentation: rec.Presentation,
	}
	for _, reason := range rec.Scored.Reasons {
		resp.Reasons = append(resp.Reasons, dto.ScoreReason{
			Code:   string(reason.Code),
			Points: reason.Points,
		})
	}
	for _, alt := range rec.Alternates {
		resp.Alternates = append(resp.Alternates, dto.AlternateCard{
			CardID: alt.CardID,
			Score:  alt.Score,
		})
	}
	return resp
}
