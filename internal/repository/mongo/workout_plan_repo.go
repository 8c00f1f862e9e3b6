package mongo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository
type mongoWorkoutPlanRepository struct {
	plans planCollection[domain.WorkoutPlan]
}

// NewMongoWorkoutPlanRepository creates a new WorkoutPlan repository.
func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		plans: planCollection[domain.WorkoutPlan]{collection: db.Collection(workoutPlanCollectionName)},
	}
}

// Create inserts a new workout plan.
func (r *mongoWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.UserID == "" || len(plan.Days) == 0 {
		return primitive.NilObjectID, errors.New("workout plan requires userId and days")
	}
	plan.ID = primitive.NewObjectID()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	return r.plans.insert(ctx, plan)
}

// GetByID retrieves a workout plan owned by userID.
func (r *mongoWorkoutPlanRepository) GetByID(ctx context.Context, userID string, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return r.plans.findOwned(ctx, userID, id)
}

// GetLatest retrieves the user's current workout plan.
func (r *mongoWorkoutPlanRepository) GetLatest(ctx context.Context, userID string) (*domain.WorkoutPlan, error) {
	return r.plans.findLatest(ctx, userID)
}

// ReplaceExercise sets days.<day>.exercises.<i> and the adaptation note.
// Exercise lists never change length, so the index is stable between read and write.
func (r *mongoWorkoutPlanRepository) ReplaceExercise(ctx context.Context, userID string, id primitive.ObjectID, swap repository.ExerciseSwap) error {
	exercisePath := "days." + string(swap.Day) + ".exercises." + strconv.Itoa(swap.Index)
	return r.plans.compareAndSet(ctx, userID, id, exercisePath+".name", swap.ExpectedName, bson.M{
		exercisePath:          swap.Exercise,
		"meta.adaptationNote": swap.Note,
	})
}
