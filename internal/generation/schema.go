package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"fitsync/backend/internal/domain"
)

var validate = validator.New()

// Wire shapes of model output. Pointers tell "missing" apart from zero.

type mealWire struct {
	Name            string   `json:"name" validate:"required"`
	Calories        *int     `json:"calories" validate:"required,min=0"`
	Protein         *int     `json:"protein" validate:"required,min=0"`
	Carbs           *int     `json:"carbs" validate:"required,min=0"`
	Fat             *int     `json:"fat" validate:"required,min=0"`
	Ingredients     []string `json:"ingredients" validate:"required"`
	PortionGuidance string   `json:"portion_guidance"`
	Substitutions   []string `json:"substitutions"`
}

type mealDayWire struct {
	Breakfast *mealWire `json:"breakfast" validate:"required"`
	Lunch     *mealWire `json:"lunch" validate:"required"`
	Dinner    *mealWire `json:"dinner" validate:"required"`
}

type exerciseWire struct {
	Name  string      `json:"name" validate:"required"`
	Sets  *int        `json:"sets" validate:"required,min=1"`
	Reps  *flexString `json:"reps" validate:"required"`
	Rest  *int        `json:"rest" validate:"required,min=0"`
	Notes string      `json:"notes"`
}

type workoutSessionWire struct {
	Name      string         `json:"name" validate:"required"`
	Exercises []exerciseWire `json:"exercises" validate:"required,min=1,dive"`
}

// flexString accepts a JSON string or number. Models emit reps as both 10 and "8-12".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// DecodeMealPlan parses a seven-day meal plan. Every weekday must be present with
// all three meals fully populated.
func DecodeMealPlan(raw []byte) (*domain.MealPlan, error) {
	fields, err := decodeDayObject(raw)
	if err != nil {
		return nil, err
	}

	plan := &domain.MealPlan{Days: make(map[domain.Weekday]domain.MealDay, len(domain.Weekdays))}
	for _, day := range domain.Weekdays {
		var wire mealDayWire
		if err := decodeStrict(fields[string(day)], &wire); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidOutput, day, err)
		}
		plan.Days[day] = domain.MealDay{
			Breakfast: wire.Breakfast.toDomain(),
			Lunch:     wire.Lunch.toDomain(),
			Dinner:    wire.Dinner.toDomain(),
		}
	}

	if metaRaw, ok := fields["meta"]; ok {
		if err := json.Unmarshal(metaRaw, &plan.Meta); err != nil {
			return nil, fmt.Errorf("%w: meta: %v", ErrInvalidOutput, err)
		}
	}
	return plan, nil
}

// DecodeWorkoutPlan parses a seven-day programme. A day is either "REST" or a
// session with at least one exercise.
func DecodeWorkoutPlan(raw []byte) (*domain.WorkoutPlan, error) {
	fields, err := decodeDayObject(raw)
	if err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{Days: make(map[domain.Weekday]domain.WorkoutDay, len(domain.Weekdays))}
	for _, day := range domain.Weekdays {
		wd, err := decodeWorkoutDay(fields[string(day)])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidOutput, day, err)
		}
		plan.Days[day] = wd
	}

	if metaRaw, ok := fields["meta"]; ok {
		if err := json.Unmarshal(metaRaw, &plan.Meta); err != nil {
			return nil, fmt.Errorf("%w: meta: %v", ErrInvalidOutput, err)
		}
	}
	return plan, nil
}

// DecodeMeal parses a single replacement meal.
func DecodeMeal(raw []byte) (domain.MealEntry, error) {
	var wire mealWire
	if err := decodeStrict(StripCodeFenceBytes(raw), &wire); err != nil {
		return domain.MealEntry{}, fmt.Errorf("%w: meal: %v", ErrInvalidOutput, err)
	}
	return wire.toDomain(), nil
}

// DecodeExercise parses a single replacement exercise.
func DecodeExercise(raw []byte) (domain.ExerciseEntry, error) {
	var wire exerciseWire
	if err := decodeStrict(StripCodeFenceBytes(raw), &wire); err != nil {
		return domain.ExerciseEntry{}, fmt.Errorf("%w: exercise: %v", ErrInvalidOutput, err)
	}
	return wire.toDomain(), nil
}

// StripCodeFenceBytes is StripCodeFence for byte slices.
func StripCodeFenceBytes(raw []byte) []byte {
	return []byte(StripCodeFence(string(raw)))
}

func decodeDayObject(raw []byte) (map[string]json.RawMessage, error) {
	raw = StripCodeFenceBytes(raw)
	if len(raw) == 0 {
		return nil, ErrEmptyResponse
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	for _, day := range domain.Weekdays {
		if _, ok := fields[string(day)]; !ok {
			return nil, fmt.Errorf("%w: missing day %q", ErrInvalidOutput, day)
		}
	}
	return fields, nil
}

func decodeWorkoutDay(raw json.RawMessage) (domain.WorkoutDay, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var marker string
		if err := json.Unmarshal(trimmed, &marker); err != nil {
			return domain.WorkoutDay{}, err
		}
		if !strings.EqualFold(strings.TrimSpace(marker), domain.RestDayMarker) {
			return domain.WorkoutDay{}, fmt.Errorf("unexpected day marker %q", marker)
		}
		return domain.RestDay(), nil
	}

	var wire workoutSessionWire
	if err := decodeStrict(trimmed, &wire); err != nil {
		return domain.WorkoutDay{}, err
	}
	exercises := make([]domain.ExerciseEntry, 0, len(wire.Exercises))
	for _, ex := range wire.Exercises {
		exercises = append(exercises, ex.toDomain())
	}
	return domain.WorkoutDay{Name: wire.Name, Exercises: exercises}, nil
}

// decodeStrict unmarshals raw into v and runs struct validation.
func decodeStrict(raw []byte, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("value is missing")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

func (m *mealWire) toDomain() domain.MealEntry {
	return domain.MealEntry{
		Name:            m.Name,
		Calories:        *m.Calories,
		Protein:         *m.Protein,
		Carbs:           *m.Carbs,
		Fat:             *m.Fat,
		Ingredients:     m.Ingredients,
		PortionGuidance: m.PortionGuidance,
		Substitutions:   m.Substitutions,
	}
}

func (e exerciseWire) toDomain() domain.ExerciseEntry {
	return domain.ExerciseEntry{
		Name:  e.Name,
		Sets:  *e.Sets,
		Reps:  string(*e.Reps),
		Rest:  *e.Rest,
		Notes: e.Notes,
	}
}
