package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type GeneratePlanRequest struct {
	AdjustmentReason string `json:"adjustmentReason"`
}

type GeneratePlanResponse struct {
	Success bool            `json:"success"`
	PlanID  string          `json:"planId"`
	Plan    domain.PlanBody `json:"plan"`
}

type CurrentPlanResponse struct {
	PlanID    string          `json:"planId,omitempty"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	Plan      domain.PlanBody `json:"plan"` // null when the user has no plan yet
}

type SwapMealRequest struct {
	PlanID      string           `json:"planId" binding:"required"`
	Day         string           `json:"day" binding:"required"`
	MealType    string           `json:"mealType" binding:"required"`
	CurrentMeal domain.MealEntry `json:"currentMeal"`
}

type SwapMealResponse struct {
	Success bool             `json:"success"`
	NewMeal domain.MealEntry `json:"newMeal"`
}

type SwapExerciseRequest struct {
	PlanID          string               `json:"planId" binding:"required"`
	Day             string               `json:"day" binding:"required"`
	CurrentExercise domain.ExerciseEntry `json:"currentExercise"`
}

type SwapExerciseResponse struct {
	Success     bool                  `json:"success"`
	Swapped     bool                  `json:"swapped"`
	NewExercise *domain.ExerciseEntry `json:"newExercise"`
	Plan        domain.PlanBody       `json:"plan"`
}

type ExportPlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

type ExportPlanResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
}

// --- Meal plan handlers ---

// GenerateMealPlan godoc
// @Summary Generate a 7-day meal plan
// @Description Premium only. Builds a plan from the caller's nutrition targets and stores it as the current plan.
// @Tags MealPlan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GeneratePlanRequest false "Optional adjustment reason"
// @Success 200 {object} GeneratePlanResponse
// @Failure 403 {object} gin.H "Premium subscription required"
// @Failure 502 {object} gin.H "AI provider returned an unusable plan"
// @Router /meal-plan/generate [post]
func (h *PlanHandler) GenerateMealPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req GeneratePlanRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	plan, err := h.planService.GenerateMealPlan(c.Request.Context(), userID, req.AdjustmentReason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, GeneratePlanResponse{Success: true, PlanID: plan.ID.Hex(), Plan: plan.Body()})
}

// SwapMeal godoc
// @Summary Replace one meal in a stored plan
// @Tags MealPlan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SwapMealRequest true "Meal to replace"
// @Success 200 {object} SwapMealResponse
// @Failure 400 {object} gin.H "Invalid day or meal type"
// @Failure 403 {object} gin.H "Premium subscription required"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 409 {object} gin.H "Meal changed concurrently"
// @Router /meal-plan/swap-meal [post]
func (h *PlanHandler) SwapMeal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SwapMealRequest
	if !bindJSON(c, &req) {
		return
	}
	day, ok := domain.ParseWeekday(req.Day)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid day: "+req.Day)
		return
	}
	slot, ok := domain.ParseMealSlot(req.MealType)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid mealType: must be breakfast, lunch or dinner")
		return
	}

	newMeal, err := h.planService.SwapMeal(c.Request.Context(), userID, req.PlanID, day, slot, req.CurrentMeal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SwapMealResponse{Success: true, NewMeal: newMeal})
}

// GetCurrentMealPlan godoc
// @Summary Get the most recent meal plan
// @Tags MealPlan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CurrentPlanResponse "plan is null when none exists"
// @Router /meal-plan/current [get]
func (h *PlanHandler) GetCurrentMealPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetCurrentMealPlan(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if plan == nil {
		c.JSON(http.StatusOK, CurrentPlanResponse{})
		return
	}
	c.JSON(http.StatusOK, CurrentPlanResponse{PlanID: plan.ID.Hex(), CreatedAt: &plan.CreatedAt, Plan: plan.Body()})
}

// ExportMealPlan godoc
// @Summary Export a meal plan as a downloadable JSON file
// @Tags MealPlan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ExportPlanRequest true "Plan to export"
// @Success 200 {object} ExportPlanResponse
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 503 {object} gin.H "Export storage not configured"
// @Router /meal-plan/export [post]
func (h *PlanHandler) ExportMealPlan(c *gin.Context) {
	h.exportPlan(c, domain.PlanKindMeal)
}

// --- Workout plan handlers ---

// GenerateWorkoutPlan godoc
// @Summary Generate a weekly workout programme
// @Tags WorkoutPlan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GeneratePlanRequest false "Optional adjustment reason"
// @Success 200 {object} GeneratePlanResponse
// @Failure 403 {object} gin.H "Premium subscription required"
// @Failure 502 {object} gin.H "AI provider returned an unusable plan"
// @Router /workout-plan/generate [post]
func (h *PlanHandler) GenerateWorkoutPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req GeneratePlanRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	plan, err := h.planService.GenerateWorkoutPlan(c.Request.Context(), userID, req.AdjustmentReason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, GeneratePlanResponse{Success: true, PlanID: plan.ID.Hex(), Plan: plan.Body()})
}

// SwapExercise godoc
// @Summary Replace one exercise in a stored workout plan
// @Description When the exercise is not on that day the plan is returned unchanged with swapped=false.
// @Tags WorkoutPlan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SwapExerciseRequest true "Exercise to replace"
// @Success 200 {object} SwapExerciseResponse
// @Failure 403 {object} gin.H "Premium subscription required"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 409 {object} gin.H "Exercise changed concurrently"
// @Router /workout-plan/swap-exercise [post]
func (h *PlanHandler) SwapExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SwapExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	day, ok := domain.ParseWeekday(req.Day)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid day: "+req.Day)
		return
	}

	result, err := h.planService.SwapExercise(c.Request.Context(), userID, req.PlanID, day, req.CurrentExercise)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := SwapExerciseResponse{Success: true, Swapped: result.Swapped, Plan: result.Plan.Body()}
	if result.Swapped {
		resp.NewExercise = &result.Exercise
	}
	c.JSON(http.StatusOK, resp)
}

// GetCurrentWorkoutPlan godoc
// @Summary Get the most recent workout plan
// @Tags WorkoutPlan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CurrentPlanResponse "plan is null when none exists"
// @Router /workout-plan/current [get]
func (h *PlanHandler) GetCurrentWorkoutPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetCurrentWorkoutPlan(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if plan == nil {
		c.JSON(http.StatusOK, CurrentPlanResponse{})
		return
	}
	c.JSON(http.StatusOK, CurrentPlanResponse{PlanID: plan.ID.Hex(), CreatedAt: &plan.CreatedAt, Plan: plan.Body()})
}

// ExportWorkoutPlan godoc
// @Summary Export a workout plan as a downloadable JSON file
// @Tags WorkoutPlan
// @Router /workout-plan/export [post]
func (h *PlanHandler) ExportWorkoutPlan(c *gin.Context) {
	h.exportPlan(c, domain.PlanKindWorkout)
}

func (h *PlanHandler) exportPlan(c *gin.Context, kind domain.PlanKind) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req ExportPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	export, err := h.planService.ExportPlan(c.Request.Context(), userID, kind, req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ExportPlanResponse{
		Success:     true,
		DownloadURL: export.DownloadURL,
		ExpiresIn:   int(export.ExpiresIn.Seconds()),
	})
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted entirely.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
