package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kepler/internal/errors"
	"kepler/internal/logger"
	"kepler/internal/services"
)

// IntentHandler applies classified intents handed over by the pipeline.
type IntentHandler struct {
	ledgerService services.LedgerServicer
}

// NewIntentHandler creates a new IntentHandler.
func NewIntentHandler(ledgerService services.LedgerServicer) *IntentHandler {
	return &IntentHandler{ledgerService: ledgerService}
}

// ApplyIntentRequest is the classified intent payload. Category is empty
// for actions that carry none (income, close_month, summary reads).
type ApplyIntentRequest struct {
	Action      string `json:"action" binding:"required,ledger_action"`
	Amount      int64  `json:"amount" binding:"omitempty,gte=0"`
	Category    string `json:"category" binding:"omitempty,ledger_category"`
	Description string `json:"description" binding:"max=500"`
	ChatID      int64  `json:"chat_id"`
}

// Apply handles POST /intents: one classified intent in, one
// reconciliation result out. Partial reconciliation still returns 200;
// the caller inspects outcome and steps to phrase its reply.
func (h *IntentHandler) Apply(c *gin.Context) {
	var req ApplyIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ledgerService.Apply(c.Request.Context(), services.Intent{
		Action:      req.Action,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		ChatID:      req.ChatID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if perr := result.PartialError(); perr != nil {
		logger.Get().Warnw("partial reconciliation",
			"intent_id", result.IntentID,
			"action", result.Action,
			"error", perr.Error(),
		)
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
