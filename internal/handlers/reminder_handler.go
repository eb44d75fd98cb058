package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kepler/internal/errors"
	"kepler/internal/services"
)

// ReminderHandler exposes the reminder dispatch read used by the external
// scheduler. Delivery itself stays outside the engine.
type ReminderHandler struct {
	reminderService services.ReminderServicer
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService services.ReminderServicer) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// GetDue handles GET /reminders/due. The optional "at" query (RFC 3339)
// overrides the evaluation time, which the scheduler uses to run in the
// user's timezone.
func (h *ReminderHandler) GetDue(c *gin.Context) {
	now := time.Now()
	if v := c.Query("at"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "at must be RFC 3339"))
			return
		}
		now = parsed
	}

	reminders, err := h.reminderService.GetDue(c.Request.Context(), now)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// MarkSent handles POST /reminders/:id/sent.
func (h *ReminderHandler) MarkSent(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	if err := h.reminderService.MarkSent(c.Request.Context(), c.Param("id"), date); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
