package api

import (
	"net/http"

	"fitsync/backend/internal/auth"
	"fitsync/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Plans    service.PlanService
	Coach    service.CoachService
	Progress service.ProgressService
	Profiles service.ProfileService
}

func SetupRoutes(router *gin.Engine, verifier auth.Verifier, services Services) {
	planHandler := NewPlanHandler(services.Plans)
	coachHandler := NewCoachHandler(services.Coach)
	progressHandler := NewProgressHandler(services.Progress)
	userHandler := NewUserHandler(services.Profiles)

	router.Use(RequestIDMiddleware(), MetricsMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protected := router.Group("")
	protected.Use(AuthMiddleware(verifier))
	{
		mealPlanGroup := protected.Group("/meal-plan")
		{
			mealPlanGroup.POST("/generate", planHandler.GenerateMealPlan)
			mealPlanGroup.POST("/swap-meal", planHandler.SwapMeal)
			mealPlanGroup.GET("/current", planHandler.GetCurrentMealPlan)
			mealPlanGroup.POST("/export", planHandler.ExportMealPlan)
		}

		workoutPlanGroup := protected.Group("/workout-plan")
		{
			workoutPlanGroup.POST("/generate", planHandler.GenerateWorkoutPlan)
			workoutPlanGroup.POST("/swap-exercise", planHandler.SwapExercise)
			workoutPlanGroup.GET("/current", planHandler.GetCurrentWorkoutPlan)
			workoutPlanGroup.POST("/export", planHandler.ExportWorkoutPlan)
		}

		coachGroup := protected.Group("/ai-coach")
		{
			coachGroup.POST("/insight", coachHandler.GenerateInsight)
			coachGroup.POST("/plateau-analysis", coachHandler.GeneratePlateauAnalysis)
		}

		progressGroup := protected.Group("/progress")
		{
			progressGroup.POST("/log-weight", progressHandler.LogWeight)
			progressGroup.POST("/log-calories", progressHandler.LogCalories)
			progressGroup.POST("/log-workout", progressHandler.LogWorkout)
			progressGroup.GET("/analytics", progressHandler.GetAnalytics)
		}

		userGroup := protected.Group("/user")
		{
			userGroup.GET("/profile", userHandler.GetProfile)
			userGroup.PUT("/profile", userHandler.UpdateProfile)
			userGroup.POST("/upgrade-premium", userHandler.UpgradePremium)
		}
	}
}
