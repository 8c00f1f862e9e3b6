package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealSlot names one of the three meals in a MealDay.
type MealSlot string

const (
	Breakfast MealSlot = "breakfast"
	Lunch     MealSlot = "lunch"
	Dinner    MealSlot = "dinner"
)

// MealSlots lists the slots in serving order.
var MealSlots = []MealSlot{Breakfast, Lunch, Dinner}

// ParseMealSlot reports whether s names a meal slot.
func ParseMealSlot(s string) (MealSlot, bool) {
	for _, m := range MealSlots {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// MealPlan is a generated seven-day meal plan owned by one user.
type MealPlan struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    string              `bson:"userId" json:"userId"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	Days      map[Weekday]MealDay `bson:"days" json:"days"`
	Meta      MealPlanMeta        `bson:"meta" json:"meta"`
}

// MealPlanMeta carries the human-readable note rewritten by swaps.
type MealPlanMeta struct {
	AdjustmentExplanation string `bson:"adjustmentExplanation" json:"adjustment_explanation"`
}

// MealDay holds the three meals of one day.
type MealDay struct {
	Breakfast MealEntry `bson:"breakfast" json:"breakfast"`
	Lunch     MealEntry `bson:"lunch" json:"lunch"`
	Dinner    MealEntry `bson:"dinner" json:"dinner"`
}

// MealEntry is one meal with its macros.
type MealEntry struct {
	Name            string   `bson:"name" json:"name"`
	Calories        int      `bson:"calories" json:"calories"`
	Protein         int      `bson:"protein" json:"protein"`
	Carbs           int      `bson:"carbs" json:"carbs"`
	Fat             int      `bson:"fat" json:"fat"`
	Ingredients     []string `bson:"ingredients" json:"ingredients"`
	PortionGuidance string   `bson:"portionGuidance" json:"portion_guidance"`
	Substitutions   []string `bson:"substitutions" json:"substitutions"`
}

// Meal returns the entry in slot.
func (d MealDay) Meal(slot MealSlot) MealEntry {
	switch slot {
	case Breakfast:
		return d.Breakfast
	case Lunch:
		return d.Lunch
	default:
		return d.Dinner
	}
}

// WithMeal returns a copy of d with slot replaced.
func (d MealDay) WithMeal(slot MealSlot, m MealEntry) MealDay {
	switch slot {
	case Breakfast:
		d.Breakfast = m
	case Lunch:
		d.Lunch = m
	default:
		d.Dinner = m
	}
	return d
}

// Clone returns a deep copy so callers can mutate days without aliasing.
func (p *MealPlan) Clone() *MealPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Days = make(map[Weekday]MealDay, len(p.Days))
	for k, v := range p.Days {
		v.Breakfast = v.Breakfast.clone()
		v.Lunch = v.Lunch.clone()
		v.Dinner = v.Dinner.clone()
		out.Days[k] = v
	}
	return &out
}

func (m MealEntry) clone() MealEntry {
	m.Ingredients = append([]string(nil), m.Ingredients...)
	m.Substitutions = append([]string(nil), m.Substitutions...)
	return m
}

// SwapNote is the meta note written after an item swap.
func SwapNote(oldName, newName string) string {
	return "Swapped " + oldName + " for " + newName + " as requested."
}
