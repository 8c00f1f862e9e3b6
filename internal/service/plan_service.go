package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/events"
	"fitsync/backend/internal/generation"
	"fitsync/backend/internal/prompt"
	"fitsync/backend/internal/repository"
	"fitsync/backend/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseSwapResult reports the outcome of SwapExercise. When Swapped is false the
// requested exercise was not in the plan and Plan is returned unchanged.
type ExerciseSwapResult struct {
	Swapped  bool
	Exercise domain.ExerciseEntry
	Plan     *domain.WorkoutPlan
}

// PlanExport is a temporary download link for an exported plan.
type PlanExport struct {
	ObjectKey   string
	DownloadURL string
	ExpiresIn   time.Duration
}

// PlanService generates, reads and edits meal and workout plans.
type PlanService interface {
	GenerateMealPlan(ctx context.Context, userID, adjustmentReason string) (*domain.MealPlan, error)
	// GetCurrentMealPlan returns nil without error when the user has no plan.
	GetCurrentMealPlan(ctx context.Context, userID string) (*domain.MealPlan, error)
	SwapMeal(ctx context.Context, userID, planID string, day domain.Weekday, slot domain.MealSlot, currentMeal domain.MealEntry) (domain.MealEntry, error)

	GenerateWorkoutPlan(ctx context.Context, userID, adjustmentReason string) (*domain.WorkoutPlan, error)
	GetCurrentWorkoutPlan(ctx context.Context, userID string) (*domain.WorkoutPlan, error)
	SwapExercise(ctx context.Context, userID, planID string, day domain.Weekday, currentExercise domain.ExerciseEntry) (*ExerciseSwapResult, error)

	ExportPlan(ctx context.Context, userID string, kind domain.PlanKind, planID string) (*PlanExport, error)
}

// PlanServiceDeps wires a PlanService.
type PlanServiceDeps struct {
	Entitlements    *Entitlements
	MealPlans       repository.MealPlanRepository
	WorkoutPlans    repository.WorkoutPlanRepository
	Generator       *Generator
	Storage         storage.ObjectStorage // nil disables export
	Events          events.Publisher      // nil disables events
	ExportURLExpiry time.Duration
	Now             func() time.Time
}

// planService implements the PlanService interface.
type planService struct {
	PlanServiceDeps
}

// NewPlanService creates a new instance of planService.
func NewPlanService(deps PlanServiceDeps) PlanService {
	if deps.Storage == nil {
		deps.Storage = storage.NoopStorage{}
	}
	if deps.ExportURLExpiry <= 0 {
		deps.ExportURLExpiry = storage.DefaultPresignedURLExpiry
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return &planService{PlanServiceDeps: deps}
}

// === Meal plans ===

func (s *planService) GenerateMealPlan(ctx context.Context, userID, adjustmentReason string) (*domain.MealPlan, error) {
	profile, err := s.Entitlements.Require(ctx, userID, FeatureMealPlan)
	if err != nil {
		return nil, err
	}

	req, err := s.Generator.prompts.MealPlan(prompt.MealPlanInput{
		ProfileAttributes: profile.Profile,
		AdjustmentReason:  adjustmentReason,
	})
	if err != nil {
		return nil, err
	}

	var plan *domain.MealPlan
	err = s.Generator.generateJSON(ctx, "meal_plan", req, func(raw []byte) (err error) {
		plan, err = generation.DecodeMealPlan(raw)
		return err
	})
	if err != nil {
		return nil, err
	}

	plan.UserID = userID
	plan.CreatedAt = s.Now()
	if _, err := s.MealPlans.Create(ctx, plan); err != nil {
		log.Printf("ERROR: Failed to save meal plan for user %s: %v", userID, err)
		return nil, err
	}

	publish(ctx, s.Events, events.TypePlanGenerated, userID, planEventPayload(domain.PlanKindMeal, plan.ID, adjustmentReason))
	return plan, nil
}

func (s *planService) GetCurrentMealPlan(ctx context.Context, userID string) (*domain.MealPlan, error) {
	plan, err := s.MealPlans.GetLatest(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return plan, err
}

func (s *planService) SwapMeal(ctx context.Context, userID, planID string, day domain.Weekday, slot domain.MealSlot, currentMeal domain.MealEntry) (domain.MealEntry, error) {
	profile, err := s.Entitlements.Require(ctx, userID, FeatureMealSwap)
	if err != nil {
		return domain.MealEntry{}, err
	}

	id, err := parsePlanID(planID)
	if err != nil {
		return domain.MealEntry{}, err
	}
	plan, err := s.MealPlans.GetByID(ctx, userID, id)
	if err != nil {
		return domain.MealEntry{}, mapPlanError(err)
	}
	mealDay, ok := plan.Days[day]
	if !ok {
		return domain.MealEntry{}, fmt.Errorf("%w: %s has no meals", ErrPlanItemNotFound, day)
	}
	stored := mealDay.Meal(slot)

	// The client's copy drives the macro targets; the stored name guards the write.
	target := currentMeal
	if target.Name == "" {
		target = stored
	}
	req, err := s.Generator.prompts.SwapMeal(target, profile.Profile.DietType)
	if err != nil {
		return domain.MealEntry{}, err
	}

	var newMeal domain.MealEntry
	err = s.Generator.generateJSON(ctx, "swap_meal", req, func(raw []byte) (err error) {
		newMeal, err = generation.DecodeMeal(raw)
		return err
	})
	if err != nil {
		return domain.MealEntry{}, err
	}

	err = s.MealPlans.ReplaceMeal(ctx, userID, id, repository.MealSwap{
		Day:          day,
		Slot:         slot,
		ExpectedName: stored.Name,
		Meal:         newMeal,
		Note:         domain.SwapNote(stored.Name, newMeal.Name),
	})
	if err != nil {
		return domain.MealEntry{}, mapPlanError(err)
	}

	publish(ctx, s.Events, events.TypePlanItemSwapped, userID, swapEventPayload(domain.PlanKindMeal, id, day, stored.Name, newMeal.Name))
	return newMeal, nil
}

// === Workout plans ===

func (s *planService) GenerateWorkoutPlan(ctx context.Context, userID, adjustmentReason string) (*domain.WorkoutPlan, error) {
	profile, err := s.Entitlements.Require(ctx, userID, FeatureWorkoutPlan)
	if err != nil {
		return nil, err
	}

	experience, equipment, weeklyDays := profile.WorkoutPreferences()
	req, err := s.Generator.prompts.WorkoutPlan(prompt.WorkoutPlanInput{
		Goal:               profile.Profile.Goal,
		ExperienceLevel:    experience,
		Equipment:          equipment,
		WeeklyAvailability: weeklyDays,
		AdjustmentReason:   adjustmentReason,
	})
	if err != nil {
		return nil, err
	}

	var plan *domain.WorkoutPlan
	err = s.Generator.generateJSON(ctx, "workout_plan", req, func(raw []byte) (err error) {
		plan, err = generation.DecodeWorkoutPlan(raw)
		return err
	})
	if err != nil {
		return nil, err
	}

	plan.UserID = userID
	plan.CreatedAt = s.Now()
	if _, err := s.WorkoutPlans.Create(ctx, plan); err != nil {
		log.Printf("ERROR: Failed to save workout plan for user %s: %v", userID, err)
		return nil, err
	}

	publish(ctx, s.Events, events.TypePlanGenerated, userID, planEventPayload(domain.PlanKindWorkout, plan.ID, adjustmentReason))
	return plan, nil
}

func (s *planService) GetCurrentWorkoutPlan(ctx context.Context, userID string) (*domain.WorkoutPlan, error) {
	plan, err := s.WorkoutPlans.GetLatest(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return plan, err
}

func (s *planService) SwapExercise(ctx context.Context, userID, planID string, day domain.Weekday, currentExercise domain.ExerciseEntry) (*ExerciseSwapResult, error) {
	profile, err := s.Entitlements.Require(ctx, userID, FeatureExerciseSwap)
	if err != nil {
		return nil, err
	}

	id, err := parsePlanID(planID)
	if err != nil {
		return nil, err
	}
	plan, err := s.WorkoutPlans.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapPlanError(err)
	}

	// An unknown exercise, a rest day or a missing day leaves the plan untouched.
	index := -1
	if workoutDay, ok := plan.Days[day]; ok {
		index = workoutDay.FindExercise(currentExercise.Name)
	}
	if index < 0 {
		log.Printf("INFO: Exercise %q not found on %s of plan %s, nothing swapped", currentExercise.Name, day, planID)
		return &ExerciseSwapResult{Swapped: false, Plan: plan}, nil
	}
	stored := plan.Days[day].Exercises[index]

	equipment := profile.Profile.Equipment
	if equipment == "" {
		equipment = domain.DefaultEquipment
	}
	req, err := s.Generator.prompts.SwapExercise(stored, equipment, profile.Profile.Goal)
	if err != nil {
		return nil, err
	}

	var newExercise domain.ExerciseEntry
	err = s.Generator.generateJSON(ctx, "swap_exercise", req, func(raw []byte) (err error) {
		newExercise, err = generation.DecodeExercise(raw)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.WorkoutPlans.ReplaceExercise(ctx, userID, id, repository.ExerciseSwap{
		Day:          day,
		Index:        index,
		ExpectedName: stored.Name,
		Exercise:     newExercise,
		Note:         domain.SwapNote(stored.Name, newExercise.Name),
	})
	if err != nil {
		return nil, mapPlanError(err)
	}

	publish(ctx, s.Events, events.TypePlanItemSwapped, userID, swapEventPayload(domain.PlanKindWorkout, id, day, stored.Name, newExercise.Name))

	updated := plan.Clone()
	wd := updated.Days[day]
	wd.Exercises[index] = newExercise
	updated.Days[day] = wd
	updated.Meta.AdaptationNote = domain.SwapNote(stored.Name, newExercise.Name)
	return &ExerciseSwapResult{Swapped: true, Exercise: newExercise, Plan: updated}, nil
}

// === Export ===

func (s *planService) ExportPlan(ctx context.Context, userID string, kind domain.PlanKind, planID string) (*PlanExport, error) {
	id, err := parsePlanID(planID)
	if err != nil {
		return nil, err
	}

	var (
		planBody  domain.PlanBody
		createdAt time.Time
	)
	switch kind {
	case domain.PlanKindMeal:
		plan, err := s.MealPlans.GetByID(ctx, userID, id)
		if err != nil {
			return nil, mapPlanError(err)
		}
		planBody, createdAt = plan.Body(), plan.CreatedAt
	case domain.PlanKindWorkout:
		plan, err := s.WorkoutPlans.GetByID(ctx, userID, id)
		if err != nil {
			return nil, mapPlanError(err)
		}
		planBody, createdAt = plan.Body(), plan.CreatedAt
	default:
		return nil, fmt.Errorf("%w: unknown plan kind %q", ErrInvalidInput, kind)
	}

	body, err := json.MarshalIndent(map[string]any{
		"planId":    id.Hex(),
		"kind":      kind,
		"createdAt": createdAt,
		"plan":      planBody,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s/%s-%s.json", userID, kind, id.Hex(), uuid.NewString())
	if err := s.Storage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, err
	}
	url, err := s.Storage.GeneratePresignedDownloadURL(ctx, key, s.ExportURLExpiry)
	if err != nil {
		if delErr := s.Storage.DeleteObject(ctx, key); delErr != nil {
			log.Printf("WARN: Failed to remove orphaned export %s: %v", key, delErr)
		}
		return nil, err
	}
	return &PlanExport{ObjectKey: key, DownloadURL: url, ExpiresIn: s.ExportURLExpiry}, nil
}

// === Helpers ===

func parsePlanID(planID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(planID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrPlanNotFound, planID)
	}
	return id, nil
}

func mapPlanError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrPlanNotFound
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %v", ErrPlanConflict, err)
	default:
		return err
	}
}

func planEventPayload(kind domain.PlanKind, id primitive.ObjectID, adjustmentReason string) map[string]any {
	return map[string]any{
		"kind":     kind,
		"planId":   id.Hex(),
		"adjusted": adjustmentReason != "",
	}
}

func swapEventPayload(kind domain.PlanKind, id primitive.ObjectID, day domain.Weekday, from, to string) map[string]any {
	return map[string]any{
		"kind":   kind,
		"planId": id.Hex(),
		"day":    day,
		"from":   from,
		"to":     to,
	}
}
