package repository

import (
	"context"
	"time"

	"fitsync/backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	// ErrConflict is returned by conditional writes whose precondition no longer holds.
	ErrConflict = RepositoryError("conflicting update")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProfileRepository stores one profile document per user.
type ProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.UserProfile, error)
	// MergeProfile upserts the profile, setting only the fields present in update.
	MergeProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error
	// SetPremium marks an existing profile premium. Returns ErrNotFound when absent.
	SetPremium(ctx context.Context, userID string) error
}

// MealSwap describes a single-meal compare-and-set.
type MealSwap struct {
	Day          domain.Weekday
	Slot         domain.MealSlot
	ExpectedName string // name of the meal currently stored at (Day, Slot)
	Meal         domain.MealEntry
	Note         string
}

// MealPlanRepository is the append-only, per-user meal plan collection.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, userID string, id primitive.ObjectID) (*domain.MealPlan, error)
	// GetLatest returns the most recently created plan, or ErrNotFound.
	GetLatest(ctx context.Context, userID string) (*domain.MealPlan, error)
	// ReplaceMeal writes only the swapped meal and the meta note. ErrConflict if
	// the stored meal no longer matches swap.ExpectedName.
	ReplaceMeal(ctx context.Context, userID string, id primitive.ObjectID, swap MealSwap) error
}

// ExerciseSwap describes a single-exercise compare-and-set.
type ExerciseSwap struct {
	Day          domain.Weekday
	Index        int
	ExpectedName string
	Exercise     domain.ExerciseEntry
	Note         string
}

// WorkoutPlanRepository is the append-only, per-user workout plan collection.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, userID string, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetLatest(ctx context.Context, userID string) (*domain.WorkoutPlan, error)
	ReplaceExercise(ctx context.Context, userID string, id primitive.ObjectID, swap ExerciseSwap) error
}

// ProgressRepository stores append-only progress logs.
// Recent* return newest first; *Since return oldest first.
type ProgressRepository interface {
	AddWeightLog(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error)
	AddCalorieLog(ctx context.Context, log *domain.CalorieLog) (primitive.ObjectID, error)
	AddWorkoutLog(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)

	RecentWeightLogs(ctx context.Context, userID string, limit int) ([]domain.WeightLog, error)
	RecentCalorieLogs(ctx context.Context, userID string, limit int) ([]domain.CalorieLog, error)
	RecentWorkoutLogs(ctx context.Context, userID string, limit int) ([]domain.WorkoutLog, error)

	WeightLogsSince(ctx context.Context, userID string, since time.Time) ([]domain.WeightLog, error)
	CalorieLogsSince(ctx context.Context, userID string, since time.Time) ([]domain.CalorieLog, error)
	WorkoutLogsSince(ctx context.Context, userID string, since time.Time) ([]domain.WorkoutLog, error)
}
