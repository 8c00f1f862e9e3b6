package api

import (
	"net/http"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type CoachHandler struct {
	coachService service.CoachService
}

func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// GenerateInsight godoc
// @Summary Get a coaching insight for today's numbers
// @Description Free users receive a fixed message; premium users get an AI-written insight.
// @Tags AICoach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.CoachSignals true "Today's signals"
// @Success 200 {object} gin.H "insight"
// @Router /ai-coach/insight [post]
func (h *CoachHandler) GenerateInsight(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var signals domain.CoachSignals
	if !bindJSON(c, &signals) {
		return
	}

	insight, err := h.coachService.GenerateInsight(c.Request.Context(), userID, signals)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

// GeneratePlateauAnalysis godoc
// @Summary Diagnose a weight-loss plateau from recent logs
// @Tags AICoach
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "analysis"
// @Failure 403 {object} gin.H "Premium members only"
// @Router /ai-coach/plateau-analysis [post]
func (h *CoachHandler) GeneratePlateauAnalysis(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	analysis, err := h.coachService.GeneratePlateauAnalysis(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
