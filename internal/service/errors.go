package service

import "errors"

// --- Error Definitions ---
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrUserNotFound     = errors.New("user not found")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrPlanItemNotFound = errors.New("plan item not found")
	ErrPlanConflict     = errors.New("plan item was changed by another request")
	ErrGenerationFailed = errors.New("generation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// Feature names a premium-gated capability.
type Feature string

const (
	FeatureMealPlan     Feature = "meal_plan"
	FeatureMealSwap     Feature = "meal_swap"
	FeatureWorkoutPlan  Feature = "workout_plan"
	FeatureExerciseSwap Feature = "exercise_swap"
	FeaturePlateau      Feature = "plateau_analysis"
)

var featureMessages = map[Feature]string{
	FeatureMealPlan:     "Premium subscription required to unlock full 7-day meal plans.",
	FeatureMealSwap:     "Premium subscription required for meal swapping.",
	FeatureWorkoutPlan:  "Premium subscription required to unlock full personalized workout programs.",
	FeatureExerciseSwap: "Premium subscription required for exercise swapping.",
	FeaturePlateau:      "Plateau diagnostics are available for Premium members only.",
}

// EntitlementError is returned when a non-premium user calls a premium feature.
// It matches ErrPermissionDenied under errors.Is.
type EntitlementError struct {
	Feature Feature
}

func (e *EntitlementError) Error() string {
	if msg, ok := featureMessages[e.Feature]; ok {
		return msg
	}
	return "Premium subscription required."
}

func (e *EntitlementError) Is(target error) bool {
	return target == ErrPermissionDenied
}
