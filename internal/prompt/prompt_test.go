package prompt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fitsync/backend/internal/domain"
)

func TestMealPlanPromptIncludesTargets(t *testing.T) {
	c := Default()
	req, err := c.MealPlan(MealPlanInput{ProfileAttributes: domain.ProfileAttributes{
		Goal: "fat_loss", TargetCalories: 2000, TargetProtein: 150, TargetCarbs: 180, TargetFat: 60,
		DietType: "omnivore", ActivityLevel: "moderate",
	}})
	require.NoError(t, err)

	require.Contains(t, req.Prompt, "Goal: fat_loss")
	require.Contains(t, req.Prompt, "Daily calories: 2000 kcal")
	require.Contains(t, req.Prompt, "Protein 150g, Carbs 180g, Fat 60g")
	require.NotContains(t, req.Prompt, "IMPORTANT")
	require.NotContains(t, req.Prompt, "\n\n\n")
	require.Contains(t, req.System, "nutritionist")
	require.InDelta(t, 0.7, req.Temperature, 1e-6)
	require.Zero(t, req.MaxTokens)
}

func TestMealPlanPromptWithAdjustmentReason(t *testing.T) {
	req, err := Default().MealPlan(MealPlanInput{AdjustmentReason: "travelling for work"})
	require.NoError(t, err)
	require.Contains(t, req.Prompt, "missed their recent targets because: travelling for work")
}

func TestWorkoutPromptWithAdjustmentReason(t *testing.T) {
	req, err := Default().WorkoutPlan(WorkoutPlanInput{
		Goal: "muscle_gain", ExperienceLevel: "intermediate", Equipment: "gym", WeeklyAvailability: 4,
		AdjustmentReason: "knee pain",
	})
	require.NoError(t, err)
	require.Contains(t, req.Prompt, "Weekly Availability: 4 days")
	require.Contains(t, req.Prompt, "recent adherence issues: knee pain")
}

func TestSwapPromptsCarryCurrentItem(t *testing.T) {
	c := Default()
	meal, err := c.SwapMeal(domain.MealEntry{Name: "Chicken Bowl", Calories: 650, Protein: 45, Carbs: 70, Fat: 15}, "vegan")
	require.NoError(t, err)
	require.Contains(t, meal.Prompt, "Current Meal: Chicken Bowl")
	require.Contains(t, meal.Prompt, "650 kcal, 45g protein, 70g carbs, 15g fat")
	require.Contains(t, meal.Prompt, "Diet Preference: vegan")
	require.InDelta(t, 0.8, meal.Temperature, 1e-6)

	ex, err := c.SwapExercise(domain.ExerciseEntry{Name: "Squat", Sets: 4, Reps: "6-8"}, "home", "strength")
	require.NoError(t, err)
	require.Contains(t, ex.Prompt, "Volume: 4 sets x 6-8 reps")
	require.Contains(t, ex.Prompt, "User Equipment: home")
}

func TestCoachingPromptsSetTokenLimits(t *testing.T) {
	c := Default()
	insight, err := c.CoachInsight("fat_loss", domain.CoachSignals{
		WeightTrend:      domain.WeightTrend{Trend: "down", Change: -0.6},
		CalorieAdherence: domain.Adherence{AdherencePercent: 85},
	})
	require.NoError(t, err)
	require.Contains(t, insight.Prompt, "Weight Trend (7 days): down (-0.6kg)")
	require.Contains(t, insight.Prompt, "Calorie Adherence: 85%")
	require.EqualValues(t, 500, insight.MaxTokens)

	plateau, err := c.Plateau(PlateauInput{Goal: "fat_loss", WeightChange: -0.3, WeightLogCount: 14, AverageCalories: 2150, TargetCalories: 2000, WorkoutCount: 3, LogsJSON: "{}"})
	require.NoError(t, err)
	require.Contains(t, plateau.Prompt, "14-day weight change: -0.3kg")
	require.Contains(t, plateau.Prompt, "2150 kcal per day against a target of 2000 kcal")
	require.EqualValues(t, 600, plateau.MaxTokens)
}

func TestParseRejectsIncompleteCatalogue(t *testing.T) {
	_, err := Parse([]byte("meal_plan:\n  user: hi\n"))
	require.Error(t, err)

	_, err = Parse(nil)
	require.Error(t, err)

	_, err = Default().Render("nope", nil)
	require.Error(t, err)
}
