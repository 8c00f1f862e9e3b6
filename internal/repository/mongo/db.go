package mongo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary so a reachable-but-unresponsive server fails fast.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes every collection needs. Failures are logged, not fatal.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	ensure := func(name string, models []mongo.IndexModel) {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			log.Printf("WARN: Failed to create indexes for collection %s: %v", name, err)
		}
	}
	ensure(mealPlanCollectionName, planIndexes())
	ensure(workoutPlanCollectionName, planIndexes())
	ensure(weightLogCollectionName, logIndexes())
	ensure(calorieLogCollectionName, logIndexes())
	ensure(workoutLogCollectionName, logIndexes())
}
