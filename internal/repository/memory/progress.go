package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressRepository is an in-memory repository.ProgressRepository.
type ProgressRepository struct {
	mu       sync.RWMutex
	weights  []domain.WeightLog
	calories []domain.CalorieLog
	workouts []domain.WorkoutLog
}

// NewProgressRepository constructs an empty log store.
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

func (r *ProgressRepository) AddWeightLog(_ context.Context, log *domain.WeightLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = primitive.NewObjectID()
	r.weights = append(r.weights, *log)
	return log.ID, nil
}

func (r *ProgressRepository) AddCalorieLog(_ context.Context, log *domain.CalorieLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = primitive.NewObjectID()
	r.calories = append(r.calories, *log)
	return log.ID, nil
}

func (r *ProgressRepository) AddWorkoutLog(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = primitive.NewObjectID()
	r.workouts = append(r.workouts, *log)
	return log.ID, nil
}

func (r *ProgressRepository) RecentWeightLogs(_ context.Context, userID string, limit int) ([]domain.WeightLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return recent(r.weights, userID, limit, weightKey), nil
}

func (r *ProgressRepository) RecentCalorieLogs(_ context.Context, userID string, limit int) ([]domain.CalorieLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return recent(r.calories, userID, limit, calorieKey), nil
}

func (r *ProgressRepository) RecentWorkoutLogs(_ context.Context, userID string, limit int) ([]domain.WorkoutLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return recent(r.workouts, userID, limit, workoutKey), nil
}

func (r *ProgressRepository) WeightLogsSince(_ context.Context, userID string, since time.Time) ([]domain.WeightLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sinceAscending(r.weights, userID, since, weightKey), nil
}

func (r *ProgressRepository) CalorieLogsSince(_ context.Context, userID string, since time.Time) ([]domain.CalorieLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sinceAscending(r.calories, userID, since, calorieKey), nil
}

func (r *ProgressRepository) WorkoutLogsSince(_ context.Context, userID string, since time.Time) ([]domain.WorkoutLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sinceAscending(r.workouts, userID, since, workoutKey), nil
}

type logKey[T any] func(T) (userID string, date time.Time)

func weightKey(l domain.WeightLog) (string, time.Time)   { return l.UserID, l.Date }
func calorieKey(l domain.CalorieLog) (string, time.Time) { return l.UserID, l.Date }
func workoutKey(l domain.WorkoutLog) (string, time.Time) { return l.UserID, l.Date }

func recent[T any](logs []T, userID string, limit int, key logKey[T]) []T {
	out := owned(logs, userID, key)
	// newest first; among equal dates the later insert comes first
	sort.SliceStable(out, func(i, j int) bool {
		_, di := key(out[i])
		_, dj := key(out[j])
		return di.After(dj)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sinceAscending[T any](logs []T, userID string, since time.Time, key logKey[T]) []T {
	out := []T{}
	for _, l := range logs {
		if u, d := key(l); u == userID && !d.Before(since) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		_, di := key(out[i])
		_, dj := key(out[j])
		return di.Before(dj)
	})
	return out
}

// owned returns userID's logs, most recent insert first.
func owned[T any](logs []T, userID string, key logKey[T]) []T {
	out := []T{}
	for i := len(logs) - 1; i >= 0; i-- {
		if u, _ := key(logs[i]); u == userID {
			out = append(out, logs[i])
		}
	}
	return out
}

var _ repository.ProgressRepository = (*ProgressRepository)(nil)
