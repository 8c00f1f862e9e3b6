package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// planStore keeps plans in insertion order. Later inserts win createdAt ties.
type planStore[T any] struct {
	mu    sync.RWMutex
	plans []*T
	// accessors keep the store generic over both plan kinds
	id        func(*T) primitive.ObjectID
	owner     func(*T) string
	createdAt func(*T) time.Time
	clone     func(*T) *T
}

func (s *planStore[T]) insert(plan *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = append(s.plans, s.clone(plan))
}

func (s *planStore[T]) find(userID string, id primitive.ObjectID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.lookup(userID, id); p != nil {
		return s.clone(p), nil
	}
	return nil, repository.ErrNotFound
}

func (s *planStore[T]) latest(userID string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *T
	for _, p := range s.plans {
		if s.owner(p) != userID {
			continue
		}
		if best == nil || !s.createdAt(p).Before(s.createdAt(best)) {
			best = p
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return s.clone(best), nil
}

// update runs fn on the stored plan under the write lock.
func (s *planStore[T]) update(userID string, id primitive.ObjectID, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.lookup(userID, id)
	if p == nil {
		return repository.ErrNotFound
	}
	return fn(p)
}

func (s *planStore[T]) lookup(userID string, id primitive.ObjectID) *T {
	for _, p := range s.plans {
		if s.id(p) == id && s.owner(p) == userID {
			return p
		}
	}
	return nil
}

// MealPlanRepository is an in-memory repository.MealPlanRepository.
type MealPlanRepository struct {
	store planStore[domain.MealPlan]
}

// NewMealPlanRepository constructs an empty meal plan store.
func NewMealPlanRepository() *MealPlanRepository {
	return &MealPlanRepository{store: planStore[domain.MealPlan]{
		id:        func(p *domain.MealPlan) primitive.ObjectID { return p.ID },
		owner:     func(p *domain.MealPlan) string { return p.UserID },
		createdAt: func(p *domain.MealPlan) time.Time { return p.CreatedAt },
		clone:     (*domain.MealPlan).Clone,
	}}
}

func (r *MealPlanRepository) Create(_ context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	r.store.insert(plan)
	return plan.ID, nil
}

func (r *MealPlanRepository) GetByID(_ context.Context, userID string, id primitive.ObjectID) (*domain.MealPlan, error) {
	return r.store.find(userID, id)
}

func (r *MealPlanRepository) GetLatest(_ context.Context, userID string) (*domain.MealPlan, error) {
	return r.store.latest(userID)
}

func (r *MealPlanRepository) ReplaceMeal(_ context.Context, userID string, id primitive.ObjectID, swap repository.MealSwap) error {
	return r.store.update(userID, id, func(p *domain.MealPlan) error {
		day, ok := p.Days[swap.Day]
		if !ok || day.Meal(swap.Slot).Name != swap.ExpectedName {
			return fmt.Errorf("%w: %s %s changed", repository.ErrConflict, swap.Day, swap.Slot)
		}
		p.Days[swap.Day] = day.WithMeal(swap.Slot, swap.Meal)
		p.Meta.AdjustmentExplanation = swap.Note
		return nil
	})
}

// WorkoutPlanRepository is an in-memory repository.WorkoutPlanRepository.
type WorkoutPlanRepository struct {
	store planStore[domain.WorkoutPlan]
}

// NewWorkoutPlanRepository constructs an empty workout plan store.
func NewWorkoutPlanRepository() *WorkoutPlanRepository {
	return &WorkoutPlanRepository{store: planStore[domain.WorkoutPlan]{
		id:        func(p *domain.WorkoutPlan) primitive.ObjectID { return p.ID },
		owner:     func(p *domain.WorkoutPlan) string { return p.UserID },
		createdAt: func(p *domain.WorkoutPlan) time.Time { return p.CreatedAt },
		clone:     (*domain.WorkoutPlan).Clone,
	}}
}

func (r *WorkoutPlanRepository) Create(_ context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	r.store.insert(plan)
	return plan.ID, nil
}

func (r *WorkoutPlanRepository) GetByID(_ context.Context, userID string, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return r.store.find(userID, id)
}

func (r *WorkoutPlanRepository) GetLatest(_ context.Context, userID string) (*domain.WorkoutPlan, error) {
	return r.store.latest(userID)
}

func (r *WorkoutPlanRepository) ReplaceExercise(_ context.Context, userID string, id primitive.ObjectID, swap repository.ExerciseSwap) error {
	return r.store.update(userID, id, func(p *domain.WorkoutPlan) error {
		day, ok := p.Days[swap.Day]
		if !ok || day.Rest || swap.Index < 0 || swap.Index >= len(day.Exercises) ||
			day.Exercises[swap.Index].Name != swap.ExpectedName {
			return fmt.Errorf("%w: %s exercise %d changed", repository.ErrConflict, swap.Day, swap.Index)
		}
		exercises := append([]domain.ExerciseEntry(nil), day.Exercises...)
		exercises[swap.Index] = swap.Exercise
		day.Exercises = exercises
		p.Days[swap.Day] = day
		p.Meta.AdaptationNote = swap.Note
		return nil
	})
}

var (
	_ repository.MealPlanRepository    = (*MealPlanRepository)(nil)
	_ repository.WorkoutPlanRepository = (*WorkoutPlanRepository)(nil)
)
