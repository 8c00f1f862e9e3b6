package domain

import (
	"time"
)

// UserProfile is the per-user document. The ID is the subject issued by the
// identity provider, not a generated ObjectID.
type UserProfile struct {
	ID        string            `bson:"_id" json:"id"`
	Email     string            `bson:"email,omitempty" json:"email,omitempty"`
	Profile   ProfileAttributes `bson:"profile" json:"profile"`
	IsPremium bool              `bson:"isPremium" json:"isPremium"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// ProfileAttributes holds nutrition and training targets used to build prompts.
type ProfileAttributes struct {
	Goal               string `bson:"goal,omitempty" json:"goal,omitempty"` // e.g. "fat_loss", "muscle_gain"
	TargetCalories     int    `bson:"targetCalories,omitempty" json:"targetCalories,omitempty"`
	TargetProtein      int    `bson:"targetProtein,omitempty" json:"targetProtein,omitempty"`
	TargetCarbs        int    `bson:"targetCarbs,omitempty" json:"targetCarbs,omitempty"`
	TargetFat          int    `bson:"targetFat,omitempty" json:"targetFat,omitempty"`
	DietType           string `bson:"dietType,omitempty" json:"dietType,omitempty"`
	ActivityLevel      string `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
	ExperienceLevel    string `bson:"experienceLevel,omitempty" json:"experienceLevel,omitempty"`
	Equipment          string `bson:"equipment,omitempty" json:"equipment,omitempty"`
	WeeklyAvailability int    `bson:"weeklyAvailability,omitempty" json:"weeklyAvailability,omitempty"` // days per week
}

// Defaults applied when building a workout prompt from an incomplete profile.
const (
	DefaultExperienceLevel    = "intermediate"
	DefaultEquipment          = "gym"
	DefaultWeeklyAvailability = 4
)

// ProfileUpdate is a merge patch over ProfileAttributes. Nil fields are left untouched.
// Entitlement is deliberately absent: it only changes through the upgrade operation.
type ProfileUpdate struct {
	Email              *string
	Goal               *string
	TargetCalories     *int
	TargetProtein      *int
	TargetCarbs        *int
	TargetFat          *int
	DietType           *string
	ActivityLevel      *string
	ExperienceLevel    *string
	Equipment          *string
	WeeklyAvailability *int
}

// IsEmpty reports whether the patch sets nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Email == nil && u.Goal == nil && u.TargetCalories == nil && u.TargetProtein == nil &&
		u.TargetCarbs == nil && u.TargetFat == nil && u.DietType == nil && u.ActivityLevel == nil &&
		u.ExperienceLevel == nil && u.Equipment == nil && u.WeeklyAvailability == nil
}

// Apply merges the patch into p. Used by the in-memory store.
func (u ProfileUpdate) Apply(p *UserProfile) {
	if u.Email != nil {
		p.Email = *u.Email
	}
	a := &p.Profile
	setString(&a.Goal, u.Goal)
	setInt(&a.TargetCalories, u.TargetCalories)
	setInt(&a.TargetProtein, u.TargetProtein)
	setInt(&a.TargetCarbs, u.TargetCarbs)
	setInt(&a.TargetFat, u.TargetFat)
	setString(&a.DietType, u.DietType)
	setString(&a.ActivityLevel, u.ActivityLevel)
	setString(&a.ExperienceLevel, u.ExperienceLevel)
	setString(&a.Equipment, u.Equipment)
	setInt(&a.WeeklyAvailability, u.WeeklyAvailability)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// IsEntitled is the entitlement gate: premium features require isPremium.
// A nil profile is never entitled.
func (u *UserProfile) IsEntitled() bool {
	return u != nil && u.IsPremium
}

// WorkoutPreferences returns the training attributes with defaults filled in.
func (u *UserProfile) WorkoutPreferences() (experience, equipment string, weeklyDays int) {
	experience, equipment, weeklyDays = DefaultExperienceLevel, DefaultEquipment, DefaultWeeklyAvailability
	if u == nil {
		return
	}
	if u.Profile.ExperienceLevel != "" {
		experience = u.Profile.ExperienceLevel
	}
	if u.Profile.Equipment != "" {
		equipment = u.Profile.Equipment
	}
	if u.Profile.WeeklyAvailability > 0 {
		weeklyDays = u.Profile.WeeklyAvailability
	}
	return
}
