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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	weightLogCollectionName  = "weight_logs"
	calorieLogCollectionName = "calorie_logs"
	workoutLogCollectionName = "workout_logs"
)

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	weights  *mongo.Collection
	calories *mongo.Collection
	workouts *mongo.Collection
}

// NewMongoProgressRepository creates a progress log repository.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		weights:  db.Collection(weightLogCollectionName),
		calories: db.Collection(calorieLogCollectionName),
		workouts: db.Collection(workoutLogCollectionName),
	}
}

func (r *mongoProgressRepository) AddWeightLog(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error) {
	if log.UserID == "" || log.Date.IsZero() {
		return primitive.NilObjectID, errors.New("weight log requires userId and date")
	}
	log.ID = primitive.NewObjectID()
	return insertLog(ctx, r.weights, log)
}

func (r *mongoProgressRepository) AddCalorieLog(ctx context.Context, log *domain.CalorieLog) (primitive.ObjectID, error) {
	if log.UserID == "" || log.Date.IsZero() {
		return primitive.NilObjectID, errors.New("calorie log requires userId and date")
	}
	log.ID = primitive.NewObjectID()
	return insertLog(ctx, r.calories, log)
}

func (r *mongoProgressRepository) AddWorkoutLog(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.UserID == "" || log.Date.IsZero() {
		return primitive.NilObjectID, errors.New("workout log requires userId and date")
	}
	log.ID = primitive.NewObjectID()
	return insertLog(ctx, r.workouts, log)
}

func (r *mongoProgressRepository) RecentWeightLogs(ctx context.Context, userID string, limit int) ([]domain.WeightLog, error) {
	return findRecent[domain.WeightLog](ctx, r.weights, userID, limit)
}

func (r *mongoProgressRepository) RecentCalorieLogs(ctx context.Context, userID string, limit int) ([]domain.CalorieLog, error) {
	return findRecent[domain.CalorieLog](ctx, r.calories, userID, limit)
}

func (r *mongoProgressRepository) RecentWorkoutLogs(ctx context.Context, userID string, limit int) ([]domain.WorkoutLog, error) {
	return findRecent[domain.WorkoutLog](ctx, r.workouts, userID, limit)
}

func (r *mongoProgressRepository) WeightLogsSince(ctx context.Context, userID string, since time.Time) ([]domain.WeightLog, error) {
	return findSince[domain.WeightLog](ctx, r.weights, userID, since)
}

func (r *mongoProgressRepository) CalorieLogsSince(ctx context.Context, userID string, since time.Time) ([]domain.CalorieLog, error) {
	return findSince[domain.CalorieLog](ctx, r.calories, userID, since)
}

func (r *mongoProgressRepository) WorkoutLogsSince(ctx context.Context, userID string, since time.Time) ([]domain.WorkoutLog, error) {
	return findSince[domain.WorkoutLog](ctx, r.workouts, userID, since)
}

func insertLog(ctx context.Context, collection *mongo.Collection, doc any) (primitive.ObjectID, error) {
	result, err := collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

func findRecent[T any](ctx context.Context, collection *mongo.Collection, userID string, limit int) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(int64(limit))
	return findLogs[T](ctx, collection, bson.M{"userId": userID}, opts)
}

func findSince[T any](ctx context.Context, collection *mongo.Collection, userID string, since time.Time) ([]T, error) {
	filter := bson.M{"userId": userID, "date": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return findLogs[T](ctx, collection, filter, opts)
}

func findLogs[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []T{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func logIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
}
