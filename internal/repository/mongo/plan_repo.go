package mongo

import (
	"context"
	"errors"
	"fmt"

	"fitsync/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mealPlanCollectionName    = "meal_plans"
	workoutPlanCollectionName = "workout_plans"
)

// planCollection holds the queries shared by both plan kinds.
type planCollection[T any] struct {
	collection *mongo.Collection
}

func (p planCollection[T]) insert(ctx context.Context, doc any) (primitive.ObjectID, error) {
	result, err := p.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// findOwned scopes every lookup to the owning user.
func (p planCollection[T]) findOwned(ctx context.Context, userID string, id primitive.ObjectID) (*T, error) {
	var plan T
	err := p.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (p planCollection[T]) findLatest(ctx context.Context, userID string) (*T, error) {
	var plan T
	// _id breaks ties between plans created in the same millisecond.
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	err := p.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// compareAndSet applies set only when the document still has expectedName at
// namePath. A miss is reported as ErrNotFound or ErrConflict.
func (p planCollection[T]) compareAndSet(ctx context.Context, userID string, id primitive.ObjectID, namePath, expectedName string, set bson.M) error {
	filter := bson.M{"_id": id, "userId": userID, namePath: expectedName}
	result, err := p.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	count, err := p.collection.CountDocuments(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return fmt.Errorf("%w: %s changed", repository.ErrConflict, namePath)
}

func planIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			// Serves GetLatest: newest plan per user.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
}
