package api

import (
	"net/http"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	profileService service.ProfileService
}

func NewUserHandler(profileService service.ProfileService) *UserHandler {
	return &UserHandler{profileService: profileService}
}

// UpdateProfileRequest is a partial update. isPremium is not accepted here.
type UpdateProfileRequest struct {
	Email              *string `json:"email" binding:"omitempty,email"`
	Goal               *string `json:"goal"`
	TargetCalories     *int    `json:"targetCalories" binding:"omitempty,gte=0"`
	TargetProtein      *int    `json:"targetProtein" binding:"omitempty,gte=0"`
	TargetCarbs        *int    `json:"targetCarbs" binding:"omitempty,gte=0"`
	TargetFat          *int    `json:"targetFat" binding:"omitempty,gte=0"`
	DietType           *string `json:"dietType"`
	ActivityLevel      *string `json:"activityLevel"`
	ExperienceLevel    *string `json:"experienceLevel"`
	Equipment          *string `json:"equipment"`
	WeeklyAvailability *int    `json:"weeklyAvailability" binding:"omitempty,min=1,max=7"`
}

func (r UpdateProfileRequest) toUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Email:              r.Email,
		Goal:               r.Goal,
		TargetCalories:     r.TargetCalories,
		TargetProtein:      r.TargetProtein,
		TargetCarbs:        r.TargetCarbs,
		TargetFat:          r.TargetFat,
		DietType:           r.DietType,
		ActivityLevel:      r.ActivityLevel,
		ExperienceLevel:    r.ExperienceLevel,
		Equipment:          r.Equipment,
		WeeklyAvailability: r.WeeklyAvailability,
	}
}

// GetProfile godoc
// @Summary Get my profile
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} gin.H "User not found"
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update my profile attributes
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} gin.H "success"
// @Failure 400 {object} gin.H "Nothing to update"
// @Router /user/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.profileService.UpdateProfile(c.Request.Context(), userID, req.toUpdate()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpgradePremium godoc
// @Summary Upgrade my account to Premium
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "success, message"
// @Failure 404 {object} gin.H "User not found"
// @Router /user/upgrade-premium [post]
func (h *UserHandler) UpgradePremium(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.profileService.UpgradePremium(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Upgraded to Premium!"})
}
