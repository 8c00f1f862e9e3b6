package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/repository"
)

func mealPlan(userID string, created time.Time) *domain.MealPlan {
	days := map[domain.Weekday]domain.MealDay{}
	for _, d := range domain.Weekdays {
		days[d] = domain.MealDay{
			Breakfast: domain.MealEntry{Name: "Oats", Ingredients: []string{"oats", "milk"}},
			Lunch:     domain.MealEntry{Name: "Chicken Bowl"},
			Dinner:    domain.MealEntry{Name: "Salmon"},
		}
	}
	return &domain.MealPlan{UserID: userID, CreatedAt: created, Days: days}
}

func TestProfileMergeKeepsUnsetFields(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository()

	goal := "muscle_gain"
	require.NoError(t, repo.MergeProfile(ctx, "u1", domain.ProfileUpdate{Goal: &goal}))
	calories := 2800
	require.NoError(t, repo.MergeProfile(ctx, "u1", domain.ProfileUpdate{TargetCalories: &calories}))

	p, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "muscle_gain", p.Profile.Goal)
	require.Equal(t, 2800, p.Profile.TargetCalories)
	require.False(t, p.IsPremium)

	require.ErrorIs(t, repo.SetPremium(ctx, "missing"), repository.ErrNotFound)
	require.NoError(t, repo.SetPremium(ctx, "u1"))
	p, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.True(t, p.IsPremium)
}

func TestLatestPrefersLaterInsertOnTie(t *testing.T) {
	ctx := context.Background()
	repo := NewMealPlanRepository()
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, mealPlan("u1", ts))
	require.NoError(t, err)
	second, err := repo.Create(ctx, mealPlan("u1", ts))
	require.NoError(t, err)
	_, err = repo.Create(ctx, mealPlan("u1", ts.Add(-time.Hour)))
	require.NoError(t, err)

	latest, err := repo.GetLatest(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, second, latest.ID)

	_, err = repo.GetLatest(ctx, "u2")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStoredPlansAreNotAliased(t *testing.T) {
	ctx := context.Background()
	repo := NewMealPlanRepository()
	plan := mealPlan("u1", time.Time{})
	id, err := repo.Create(ctx, plan)
	require.NoError(t, err)

	plan.Days[domain.Monday].Breakfast.Ingredients[0] = "mutated"

	got, err := repo.GetByID(ctx, "u1", id)
	require.NoError(t, err)
	require.Equal(t, "oats", got.Days[domain.Monday].Breakfast.Ingredients[0])
	require.False(t, got.CreatedAt.IsZero())
}

func TestReplaceMealRejectsStaleExpectation(t *testing.T) {
	ctx := context.Background()
	repo := NewMealPlanRepository()
	id, err := repo.Create(ctx, mealPlan("u1", time.Time{}))
	require.NoError(t, err)

	swap := repository.MealSwap{
		Day: domain.Friday, Slot: domain.Dinner, ExpectedName: "Salmon",
		Meal: domain.MealEntry{Name: "Cod"}, Note: domain.SwapNote("Salmon", "Cod"),
	}
	require.NoError(t, repo.ReplaceMeal(ctx, "u1", id, swap))
	require.ErrorIs(t, repo.ReplaceMeal(ctx, "u1", id, swap), repository.ErrConflict)
	require.ErrorIs(t, repo.ReplaceMeal(ctx, "u2", id, swap), repository.ErrNotFound)

	got, err := repo.GetByID(ctx, "u1", id)
	require.NoError(t, err)
	require.Equal(t, "Cod", got.Days[domain.Friday].Dinner.Name)
	require.Equal(t, "Salmon", got.Days[domain.Thursday].Dinner.Name)
	require.Equal(t, "Swapped Salmon for Cod as requested.", got.Meta.AdjustmentExplanation)
}

func TestReplaceExerciseOnRestDayConflicts(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkoutPlanRepository()
	plan := &domain.WorkoutPlan{UserID: "u1", Days: map[domain.Weekday]domain.WorkoutDay{
		domain.Monday: {Name: "Legs", Exercises: []domain.ExerciseEntry{{Name: "Squat"}}},
		domain.Sunday: domain.RestDay(),
	}}
	id, err := repo.Create(ctx, plan)
	require.NoError(t, err)

	err = repo.ReplaceExercise(ctx, "u1", id, repository.ExerciseSwap{Day: domain.Sunday, Index: 0, ExpectedName: "Squat"})
	require.ErrorIs(t, err, repository.ErrConflict)

	err = repo.ReplaceExercise(ctx, "u1", id, repository.ExerciseSwap{
		Day: domain.Monday, Index: 0, ExpectedName: "Squat", Exercise: domain.ExerciseEntry{Name: "Leg Press"},
	})
	require.NoError(t, err)
	got, err := repo.GetLatest(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Leg Press", got.Days[domain.Monday].Exercises[0].Name)
}

func TestProgressOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository()
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for i, w := range []float64{80, 79.5, 79} {
		_, err := repo.AddWeightLog(ctx, &domain.WeightLog{UserID: "u1", Weight: w, Date: base.AddDate(0, 0, i)})
		require.NoError(t, err)
	}
	_, err := repo.AddWeightLog(ctx, &domain.WeightLog{UserID: "u2", Weight: 100, Date: base})
	require.NoError(t, err)

	recent, err := repo.RecentWeightLogs(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, 79.0, recent[0].Weight)
	require.Equal(t, 79.5, recent[1].Weight)

	since, err := repo.WeightLogsSince(ctx, "u1", base.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, since, 2)
	require.Equal(t, 79.5, since[0].Weight)
}
