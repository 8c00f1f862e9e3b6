//go:build integration

package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/repository"
)

func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := mongocontainer.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := ConnectDB(uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = DisconnectDB(client) })

	db := client.Database("fitsync_test")
	EnsureIndexes(ctx, db)
	return db
}

func sampleMealPlan(userID string) *domain.MealPlan {
	days := make(map[domain.Weekday]domain.MealDay, len(domain.Weekdays))
	for _, d := range domain.Weekdays {
		days[d] = domain.MealDay{
			Breakfast: domain.MealEntry{Name: "Oats", Calories: 400, Protein: 20, Carbs: 60, Fat: 8},
			Lunch:     domain.MealEntry{Name: "Chicken Bowl", Calories: 650, Protein: 45, Carbs: 70, Fat: 15},
			Dinner:    domain.MealEntry{Name: "Salmon", Calories: 700, Protein: 50, Carbs: 40, Fat: 30},
		}
	}
	return &domain.MealPlan{UserID: userID, Days: days, Meta: domain.MealPlanMeta{AdjustmentExplanation: "initial"}}
}

func sampleWorkoutPlan(userID string) *domain.WorkoutPlan {
	days := make(map[domain.Weekday]domain.WorkoutDay, len(domain.Weekdays))
	for _, d := range domain.Weekdays {
		days[d] = domain.RestDay()
	}
	days[domain.Monday] = domain.WorkoutDay{Name: "Push", Exercises: []domain.ExerciseEntry{
		{Name: "Bench Press", Sets: 4, Reps: "6-8", Rest: 120},
		{Name: "Overhead Press", Sets: 3, Reps: "8-10", Rest: 90},
	}}
	return &domain.WorkoutPlan{UserID: userID, Days: days, Meta: domain.WorkoutPlanMeta{WeeklySplit: "PPL"}}
}

func TestProfileMergeAndUpgrade(t *testing.T) {
	db := startMongo(t)
	ctx := context.Background()
	repo := NewMongoProfileRepository(db)

	_, err := repo.GetByID(ctx, "user-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.SetPremium(ctx, "user-1"), repository.ErrNotFound)

	goal, calories := "fat_loss", 2100
	require.NoError(t, repo.MergeProfile(ctx, "user-1", domain.ProfileUpdate{Goal: &goal, TargetCalories: &calories}))

	diet := "vegan"
	require.NoError(t, repo.MergeProfile(ctx, "user-1", domain.ProfileUpdate{DietType: &diet}))

	profile, err := repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "fat_loss", profile.Profile.Goal)
	require.Equal(t, 2100, profile.Profile.TargetCalories)
	require.Equal(t, "vegan", profile.Profile.DietType)
	require.False(t, profile.IsPremium)

	require.NoError(t, repo.SetPremium(ctx, "user-1"))
	profile, err = repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, profile.IsPremium)
}

func TestMealPlanLatestAndConditionalSwap(t *testing.T) {
	db := startMongo(t)
	ctx := context.Background()
	repo := NewMongoMealPlanRepository(db)

	older := sampleMealPlan("user-1")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	_, err := repo.Create(ctx, older)
	require.NoError(t, err)

	newer := sampleMealPlan("user-1")
	id, err := repo.Create(ctx, newer)
	require.NoError(t, err)

	latest, err := repo.GetLatest(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, id, latest.ID)

	_, err = repo.GetByID(ctx, "user-2", id)
	require.ErrorIs(t, err, repository.ErrNotFound)

	tofu := domain.MealEntry{Name: "Tofu Bowl", Calories: 640, Protein: 35, Carbs: 75, Fat: 18}
	err = repo.ReplaceMeal(ctx, "user-1", id, repository.MealSwap{
		Day: domain.Tuesday, Slot: domain.Lunch, ExpectedName: "Chicken Bowl", Meal: tofu,
		Note: domain.SwapNote("Chicken Bowl", "Tofu Bowl"),
	})
	require.NoError(t, err)

	// Second writer with the stale expectation loses.
	err = repo.ReplaceMeal(ctx, "user-1", id, repository.MealSwap{
		Day: domain.Tuesday, Slot: domain.Lunch, ExpectedName: "Chicken Bowl", Meal: tofu,
	})
	require.ErrorIs(t, err, repository.ErrConflict)

	stored, err := repo.GetByID(ctx, "user-1", id)
	require.NoError(t, err)
	require.Equal(t, "Tofu Bowl", stored.Days[domain.Tuesday].Lunch.Name)
	require.Equal(t, "Chicken Bowl", stored.Days[domain.Wednesday].Lunch.Name)
	require.Equal(t, "Oats", stored.Days[domain.Tuesday].Breakfast.Name)
	require.Equal(t, "Swapped Chicken Bowl for Tofu Bowl as requested.", stored.Meta.AdjustmentExplanation)
}

func TestWorkoutPlanRestDaysRoundTrip(t *testing.T) {
	db := startMongo(t)
	ctx := context.Background()
	repo := NewMongoWorkoutPlanRepository(db)

	id, err := repo.Create(ctx, sampleWorkoutPlan("user-1"))
	require.NoError(t, err)

	err = repo.ReplaceExercise(ctx, "user-1", id, repository.ExerciseSwap{
		Day: domain.Monday, Index: 1, ExpectedName: "Overhead Press",
		Exercise: domain.ExerciseEntry{Name: "Landmine Press", Sets: 3, Reps: "10", Rest: 90},
		Note:     domain.SwapNote("Overhead Press", "Landmine Press"),
	})
	require.NoError(t, err)

	stored, err := repo.GetLatest(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, stored.Days[domain.Sunday].Rest)
	require.Equal(t, "Bench Press", stored.Days[domain.Monday].Exercises[0].Name)
	require.Equal(t, "Landmine Press", stored.Days[domain.Monday].Exercises[1].Name)
	require.Equal(t, "PPL", stored.Meta.WeeklySplit)
	require.Equal(t, "Swapped Overhead Press for Landmine Press as requested.", stored.Meta.AdaptationNote)
}

func TestProgressLogOrdering(t *testing.T) {
	db := startMongo(t)
	ctx := context.Background()
	repo := NewMongoProgressRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	for i, w := range []float64{82.0, 81.5, 81.2} {
		_, err := repo.AddWeightLog(ctx, &domain.WeightLog{UserID: "user-1", Weight: w, Date: now.Add(time.Duration(i-3) * 24 * time.Hour)})
		require.NoError(t, err)
	}
	_, err := repo.AddWeightLog(ctx, &domain.WeightLog{UserID: "user-1", Weight: 90, Date: now.Add(-40 * 24 * time.Hour)})
	require.NoError(t, err)

	recent, err := repo.RecentWeightLogs(ctx, "user-1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, 81.2, recent[0].Weight)

	since, err := repo.WeightLogsSince(ctx, "user-1", now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, since, 3)
	require.Equal(t, 82.0, since[0].Weight)

	other, err := repo.RecentWeightLogs(ctx, "user-2", 10)
	require.NoError(t, err)
	require.Empty(t, other)
}
