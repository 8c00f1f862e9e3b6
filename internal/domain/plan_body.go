package domain

// PlanBody is the client-facing plan object: one key per weekday plus "meta".
type PlanBody map[string]any

// Body returns the flat wire form of the meal plan.
func (p *MealPlan) Body() PlanBody {
	body := make(PlanBody, len(p.Days)+1)
	for day, meals := range p.Days {
		body[string(day)] = meals
	}
	body["meta"] = p.Meta
	return body
}

// Body returns the flat wire form of the workout plan. Rest days encode as "REST".
func (p *WorkoutPlan) Body() PlanBody {
	body := make(PlanBody, len(p.Days)+1)
	for day, session := range p.Days {
		body[string(day)] = session
	}
	body["meta"] = p.Meta
	return body
}
