package domain

// CoachSignals are the client-computed progress figures sent with an insight request.
type CoachSignals struct {
	WeightTrend      WeightTrend `json:"weightTrend"`
	CalorieAdherence Adherence   `json:"calorieAdherence"`
	WorkoutAdherence Adherence   `json:"workoutAdherence"`
	TodayCalories    int         `json:"todayCalories"`
	TodayMacros      Macros      `json:"todayMacros"`
}

// WeightTrend summarises the last week of weigh-ins.
type WeightTrend struct {
	Trend  string  `json:"trend"` // "down", "up", "stable"
	Change float64 `json:"change"`
}

// Adherence is a 0-100 percentage of days on target.
type Adherence struct {
	AdherencePercent float64 `json:"adherencePercent"`
}

// Macros in grams.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}
