package generation

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fitsync/backend/internal/domain"
)

func mealJSON(name string) string {
	return fmt.Sprintf(`{"name":%q,"calories":500,"protein":40,"carbs":50,"fat":15,`+
		`"ingredients":["a","b"],"portion_guidance":"one plate","substitutions":["c"]}`, name)
}

func mealPlanJSON(skip domain.Weekday) string {
	parts := []string{}
	for _, d := range domain.Weekdays {
		if d == skip {
			continue
		}
		parts = append(parts, fmt.Sprintf(`%q:{"breakfast":%s,"lunch":%s,"dinner":%s}`,
			d, mealJSON("Eggs"), mealJSON("Wrap"), mealJSON("Stew")))
	}
	parts = append(parts, `"meta":{"adjustment_explanation":"Welcome!"}`)
	return "{" + strings.Join(parts, ",") + "}"
}

func TestDecodeMealPlan(t *testing.T) {
	plan, err := DecodeMealPlan([]byte(mealPlanJSON("")))
	require.NoError(t, err)
	require.Len(t, plan.Days, 7)
	for _, d := range domain.Weekdays {
		day, ok := plan.Days[d]
		require.True(t, ok, d)
		require.Equal(t, "Eggs", day.Breakfast.Name)
		require.Equal(t, 500, day.Dinner.Calories)
		require.Equal(t, []string{"a", "b"}, day.Lunch.Ingredients)
	}
	require.Equal(t, "Welcome!", plan.Meta.AdjustmentExplanation)
}

func TestDecodeMealPlanRejectsMissingDay(t *testing.T) {
	_, err := DecodeMealPlan([]byte(mealPlanJSON(domain.Thursday)))
	require.ErrorIs(t, err, ErrInvalidOutput)
	require.Contains(t, err.Error(), "thursday")
}

func TestDecodeMealPlanRejectsMissingField(t *testing.T) {
	raw := strings.Replace(mealPlanJSON(""), `"protein":40,`, ``, 1)
	_, err := DecodeMealPlan([]byte(raw))
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestDecodeMealPlanAcceptsZeroMacros(t *testing.T) {
	raw := strings.ReplaceAll(mealPlanJSON(""), `"fat":15`, `"fat":0`)
	plan, err := DecodeMealPlan([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, 0, plan.Days[domain.Monday].Lunch.Fat)
}

func TestDecodeMealPlanStripsCodeFence(t *testing.T) {
	raw := "```json\n" + mealPlanJSON("") + "\n```"
	_, err := DecodeMealPlan([]byte(raw))
	require.NoError(t, err)
}

func TestDecodeMealPlanEmpty(t *testing.T) {
	_, err := DecodeMealPlan([]byte("  "))
	require.ErrorIs(t, err, ErrEmptyResponse)

	_, err = DecodeMealPlan([]byte("not json"))
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func workoutPlanJSON(monday string) string {
	days := map[string]json.RawMessage{}
	for _, d := range domain.Weekdays {
		days[string(d)] = json.RawMessage(`"REST"`)
	}
	days["monday"] = json.RawMessage(monday)
	days["meta"] = json.RawMessage(`{"weekly_split":"Full Body","progression_guidance":"add weight","adaptation_note":""}`)
	out, _ := json.Marshal(days)
	return string(out)
}

func TestDecodeWorkoutPlan(t *testing.T) {
	monday := `{"name":"Full Body A","exercises":[` +
		`{"name":"Squat","sets":3,"reps":"5","rest":180,"notes":"brace"},` +
		`{"name":"Row","sets":3,"reps":10,"rest":90,"notes":""}]}`
	plan, err := DecodeWorkoutPlan([]byte(workoutPlanJSON(monday)))
	require.NoError(t, err)

	require.False(t, plan.Days[domain.Monday].Rest)
	require.Equal(t, "Full Body A", plan.Days[domain.Monday].Name)
	require.Equal(t, "10", plan.Days[domain.Monday].Exercises[1].Reps)
	require.True(t, plan.Days[domain.Tuesday].Rest)
	require.Equal(t, "Full Body", plan.Meta.WeeklySplit)
}

func TestDecodeWorkoutPlanRejectsBadDays(t *testing.T) {
	cases := map[string]string{
		"unknown marker": `"OFF"`,
		"no exercises":   `{"name":"Empty","exercises":[]}`,
		"zero sets":      `{"name":"A","exercises":[{"name":"Squat","sets":0,"reps":"5","rest":60}]}`,
		"missing rest":   `{"name":"A","exercises":[{"name":"Squat","sets":3,"reps":"5"}]}`,
		"null day":       `null`,
	}
	for name, monday := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeWorkoutPlan([]byte(workoutPlanJSON(monday)))
			require.ErrorIs(t, err, ErrInvalidOutput)
		})
	}
}

func TestDecodeSingleItems(t *testing.T) {
	meal, err := DecodeMeal([]byte(mealJSON("Tofu Bowl")))
	require.NoError(t, err)
	require.Equal(t, "Tofu Bowl", meal.Name)

	_, err = DecodeMeal([]byte(`{"name":"Tofu Bowl"}`))
	require.ErrorIs(t, err, ErrInvalidOutput)

	ex, err := DecodeExercise([]byte(`{"name":"Goblet Squat","sets":3,"reps":"12","rest":60,"notes":"slow"}`))
	require.NoError(t, err)
	require.Equal(t, domain.ExerciseEntry{Name: "Goblet Squat", Sets: 3, Reps: "12", Rest: 60, Notes: "slow"}, ex)

	_, err = DecodeExercise([]byte(`{"sets":3}`))
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestStripCodeFence(t *testing.T) {
	require.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	require.Equal(t, `{"a":1}`, StripCodeFence(" ```\n{\"a\":1}```"))
	require.Equal(t, `{"a":1}`, StripCodeFence(`{"a":1}`))
}
