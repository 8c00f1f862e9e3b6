package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

// Dates are RFC 3339 timestamps or plain YYYY-MM-DD days. Empty means now.

type LogWeightRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
	Date   string  `json:"date"`
}

type LogCaloriesRequest struct {
	TotalCalories int                 `json:"totalCalories" binding:"gte=0"`
	Protein       int                 `json:"protein" binding:"gte=0"`
	Carbs         int                 `json:"carbs" binding:"gte=0"`
	Fat           int                 `json:"fat" binding:"gte=0"`
	Meals         []domain.LoggedMeal `json:"meals"`
	Date          string              `json:"date"`
}

type LogWorkoutRequest struct {
	Day         string `json:"day"`
	WorkoutName string `json:"workoutName" binding:"required"`
	Date        string `json:"date"`
}

func parseLogDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use RFC 3339 or YYYY-MM-DD", s)
}

// bindLogDate parses the date field or aborts with 400.
func bindLogDate(c *gin.Context, s string) (time.Time, bool) {
	t, err := parseLogDate(s)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return t, true
}

// LogWeight godoc
// @Summary Log a body-weight measurement
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LogWeightRequest true "Weight in kg"
// @Success 200 {object} gin.H "success"
// @Router /progress/log-weight [post]
func (h *ProgressHandler) LogWeight(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req LogWeightRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := bindLogDate(c, req.Date)
	if !ok {
		return
	}

	err := h.progressService.LogWeight(c.Request.Context(), userID, domain.WeightLog{Weight: req.Weight, Date: date})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LogCalories godoc
// @Summary Log a day's calorie intake
// @Tags Progress
// @Router /progress/log-calories [post]
func (h *ProgressHandler) LogCalories(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req LogCaloriesRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := bindLogDate(c, req.Date)
	if !ok {
		return
	}

	err := h.progressService.LogCalories(c.Request.Context(), userID, domain.CalorieLog{
		TotalCalories: req.TotalCalories,
		Protein:       req.Protein,
		Carbs:         req.Carbs,
		Fat:           req.Fat,
		Meals:         req.Meals,
		Date:          date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LogWorkout godoc
// @Summary Mark a workout as completed
// @Tags Progress
// @Router /progress/log-workout [post]
func (h *ProgressHandler) LogWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req LogWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := bindLogDate(c, req.Date)
	if !ok {
		return
	}

	err := h.progressService.LogWorkout(c.Request.Context(), userID, domain.WorkoutLog{
		Day:         req.Day,
		WorkoutName: req.WorkoutName,
		Date:        date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAnalytics godoc
// @Summary Get the last 30 days of progress logs
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Analytics
// @Router /progress/analytics [get]
func (h *ProgressHandler) GetAnalytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	analytics, err := h.progressService.Analytics(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	// Empty collections render as [] rather than null.
	if analytics.WeightLogs == nil {
		analytics.WeightLogs = []domain.WeightLog{}
	}
	if analytics.CalorieLogs == nil {
		analytics.CalorieLogs = []domain.CalorieLog{}
	}
	if analytics.WorkoutLogs == nil {
		analytics.WorkoutLogs = []domain.WorkoutLog{}
	}
	c.JSON(http.StatusOK, analytics)
}
