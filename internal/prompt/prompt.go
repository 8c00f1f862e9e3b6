// Package prompt renders the LLM prompts used for plans and coaching.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/generation"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Template names in templates.yaml.
const (
	MealPlanTemplate     = "meal_plan"
	SwapMealTemplate     = "swap_meal"
	WorkoutPlanTemplate  = "workout_plan"
	SwapExerciseTemplate = "swap_exercise"
	CoachInsightTemplate = "coach_insight"
	PlateauTemplate      = "plateau_analysis"
)

type definition struct {
	System      string  `yaml:"system"`
	User        string  `yaml:"user"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int32   `yaml:"max_tokens"`
}

type entry struct {
	def  definition
	user *template.Template
}

// Catalogue holds parsed prompt templates.
type Catalogue struct {
	entries map[string]entry
}

// Default parses the embedded catalogue. It panics on a malformed file since
// the data ships with the binary.
func Default() *Catalogue {
	c, err := Parse(defaultTemplates)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a YAML catalogue and compiles every user template.
func Parse(data []byte) (*Catalogue, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("prompt: catalogue is empty")
	}
	var defs map[string]definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("prompt: decode catalogue: %w", err)
	}

	c := &Catalogue{entries: make(map[string]entry, len(defs))}
	for name, def := range defs {
		if strings.TrimSpace(def.User) == "" {
			return nil, fmt.Errorf("prompt: %s: user template is empty", name)
		}
		tmpl, err := template.New(name).Option("missingkey=error").Parse(def.User)
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", name, err)
		}
		c.entries[name] = entry{def: def, user: tmpl}
	}
	for _, required := range []string{MealPlanTemplate, SwapMealTemplate, WorkoutPlanTemplate, SwapExerciseTemplate, CoachInsightTemplate, PlateauTemplate} {
		if _, ok := c.entries[required]; !ok {
			return nil, fmt.Errorf("prompt: catalogue is missing %s", required)
		}
	}
	return c, nil
}

// Render executes the named template against data.
func (c *Catalogue) Render(name string, data any) (generation.Request, error) {
	e, ok := c.entries[name]
	if !ok {
		return generation.Request{}, fmt.Errorf("prompt: unknown template %s", name)
	}
	var buf bytes.Buffer
	if err := e.user.Execute(&buf, data); err != nil {
		return generation.Request{}, fmt.Errorf("prompt: render %s: %w", name, err)
	}
	return generation.Request{
		System:      strings.TrimSpace(e.def.System),
		Prompt:      collapseBlankLines(buf.String()),
		Temperature: e.def.Temperature,
		MaxTokens:   e.def.MaxTokens,
	}, nil
}

// collapseBlankLines squeezes the runs of empty lines left by unset conditionals.
func collapseBlankLines(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	out := lines[:0]
	blank := false
	for _, l := range lines {
		isBlank := strings.TrimSpace(l) == ""
		if isBlank && blank {
			continue
		}
		blank = isBlank
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

// MealPlanInput is the data for MealPlanTemplate.
type MealPlanInput struct {
	domain.ProfileAttributes
	AdjustmentReason string
}

// WorkoutPlanInput is the data for WorkoutPlanTemplate.
type WorkoutPlanInput struct {
	Goal               string
	ExperienceLevel    string
	Equipment          string
	WeeklyAvailability int
	AdjustmentReason   string
}

// PlateauInput is the data for PlateauTemplate.
type PlateauInput struct {
	Goal            string
	WeightChange    float64
	WeightLogCount  int
	AverageCalories int
	TargetCalories  int
	WorkoutCount    int
	LogsJSON        string
}

func (c *Catalogue) MealPlan(in MealPlanInput) (generation.Request, error) {
	return c.Render(MealPlanTemplate, in)
}

func (c *Catalogue) SwapMeal(current domain.MealEntry, dietType string) (generation.Request, error) {
	return c.Render(SwapMealTemplate, struct {
		Meal     domain.MealEntry
		DietType string
	}{current, dietType})
}

func (c *Catalogue) WorkoutPlan(in WorkoutPlanInput) (generation.Request, error) {
	return c.Render(WorkoutPlanTemplate, in)
}

func (c *Catalogue) SwapExercise(current domain.ExerciseEntry, equipment, goal string) (generation.Request, error) {
	return c.Render(SwapExerciseTemplate, struct {
		Exercise  domain.ExerciseEntry
		Equipment string
		Goal      string
	}{current, equipment, goal})
}

func (c *Catalogue) CoachInsight(goal string, signals domain.CoachSignals) (generation.Request, error) {
	return c.Render(CoachInsightTemplate, struct {
		Goal    string
		Signals domain.CoachSignals
	}{goal, signals})
}

func (c *Catalogue) Plateau(in PlateauInput) (generation.Request, error) {
	return c.Render(PlateauTemplate, in)
}
