package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightLog records one body-weight measurement in kilograms.
type WeightLog struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"userId" json:"-"`
	Weight float64            `bson:"weight" json:"weight"`
	Date   time.Time          `bson:"date" json:"date"`
}

// CalorieLog records one day's intake.
type CalorieLog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"-"`
	TotalCalories int                `bson:"totalCalories" json:"totalCalories"`
	Protein       int                `bson:"protein" json:"protein"`
	Carbs         int                `bson:"carbs" json:"carbs"`
	Fat           int                `bson:"fat" json:"fat"`
	Meals         []LoggedMeal       `bson:"meals,omitempty" json:"meals,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
}

// LoggedMeal is an optional per-meal breakdown inside a CalorieLog.
type LoggedMeal struct {
	Name     string `bson:"name" json:"name"`
	Calories int    `bson:"calories" json:"calories"`
	Protein  int    `bson:"protein,omitempty" json:"protein,omitempty"`
	Carbs    int    `bson:"carbs,omitempty" json:"carbs,omitempty"`
	Fat      int    `bson:"fat,omitempty" json:"fat,omitempty"`
}

// WorkoutLog records a completed session.
type WorkoutLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"-"`
	Day         string             `bson:"day" json:"day"`
	WorkoutName string             `bson:"workoutName" json:"workoutName"`
	Completed   bool               `bson:"completed" json:"completed"`
	Date        time.Time          `bson:"date" json:"date"`
}
