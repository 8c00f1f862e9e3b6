package mongo

import (
	"context"
	"errors"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoProfileRepository implements repository.ProfileRepository using MongoDB.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new profile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(userCollectionName),
	}
}

// GetByID retrieves a profile by the identity provider's user id.
func (r *mongoProfileRepository) GetByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MergeProfile upserts the profile, touching only the provided fields.
func (r *mongoProfileRepository) MergeProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error {
	now := time.Now().UTC()
	set := profileSetDocument(update)
	set["updatedAt"] = now

	doc := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"createdAt": now,
			"isPremium": false,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, doc, options.Update().SetUpsert(true))
	return err
}

// SetPremium flips the entitlement flag on an existing profile.
func (r *mongoProfileRepository) SetPremium(ctx context.Context, userID string) error {
	update := bson.M{
		"$set": bson.M{
			"isPremium": true,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	// ModifiedCount is 0 when the user was already premium, which is fine.
	return nil
}

func profileSetDocument(u domain.ProfileUpdate) bson.M {
	set := bson.M{}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	putString := func(key string, v *string) {
		if v != nil {
			set["profile."+key] = *v
		}
	}
	putInt := func(key string, v *int) {
		if v != nil {
			set["profile."+key] = *v
		}
	}
	putString("goal", u.Goal)
	putInt("targetCalories", u.TargetCalories)
	putInt("targetProtein", u.TargetProtein)
	putInt("targetCarbs", u.TargetCarbs)
	putInt("targetFat", u.TargetFat)
	putString("dietType", u.DietType)
	putString("activityLevel", u.ActivityLevel)
	putString("experienceLevel", u.ExperienceLevel)
	putString("equipment", u.Equipment)
	putInt("weeklyAvailability", u.WeeklyAvailability)
	return set
}
