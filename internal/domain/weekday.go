package domain

import "strings"

// Weekday is a lower-case day-of-week key used in plan documents.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists every plan day in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday normalises s and reports whether it names a day of the week.
func ParseWeekday(s string) (Weekday, bool) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range Weekdays {
		if w == d {
			return d, true
		}
	}
	return "", false
}

// PlanKind distinguishes the two plan document variants.
type PlanKind string

const (
	PlanKindMeal    PlanKind = "meal"
	PlanKindWorkout PlanKind = "workout"
)
