package mongo

import (
	"context"
	"errors"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoMealPlanRepository implements repository.MealPlanRepository
type mongoMealPlanRepository struct {
	plans planCollection[domain.MealPlan]
}

// NewMongoMealPlanRepository creates a new MealPlan repository.
func NewMongoMealPlanRepository(db *mongo.Database) repository.MealPlanRepository {
	return &mongoMealPlanRepository{
		plans: planCollection[domain.MealPlan]{collection: db.Collection(mealPlanCollectionName)},
	}
}

// Create inserts a new meal plan.
func (r *mongoMealPlanRepository) Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	if plan.UserID == "" || len(plan.Days) == 0 {
		return primitive.NilObjectID, errors.New("meal plan requires userId and days")
	}
	plan.ID = primitive.NewObjectID()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	return r.plans.insert(ctx, plan)
}

// GetByID retrieves a meal plan owned by userID.
func (r *mongoMealPlanRepository) GetByID(ctx context.Context, userID string, id primitive.ObjectID) (*domain.MealPlan, error) {
	return r.plans.findOwned(ctx, userID, id)
}

// GetLatest retrieves the user's current meal plan.
func (r *mongoMealPlanRepository) GetLatest(ctx context.Context, userID string) (*domain.MealPlan, error) {
	return r.plans.findLatest(ctx, userID)
}

// ReplaceMeal sets days.<day>.<slot> and the meta note, guarded by the stored meal name.
func (r *mongoMealPlanRepository) ReplaceMeal(ctx context.Context, userID string, id primitive.ObjectID, swap repository.MealSwap) error {
	slotPath := "days." + string(swap.Day) + "." + string(swap.Slot)
	return r.plans.compareAndSet(ctx, userID, id, slotPath+".name", swap.ExpectedName, bson.M{
		slotPath:                     swap.Meal,
		"meta.adjustmentExplanation": swap.Note,
	})
}
