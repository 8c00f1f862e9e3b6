package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestDayMarker is stored in place of a day object on rest days.
const RestDayMarker = "REST"

// WorkoutPlan is a generated weekly training programme owned by one user.
type WorkoutPlan struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID    string                 `bson:"userId" json:"userId"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
	Days      map[Weekday]WorkoutDay `bson:"days" json:"days"`
	Meta      WorkoutPlanMeta        `bson:"meta" json:"meta"`
}

// WorkoutPlanMeta describes the programme as a whole.
type WorkoutPlanMeta struct {
	WeeklySplit         string `bson:"weeklySplit" json:"weekly_split"`
	ProgressionGuidance string `bson:"progressionGuidance" json:"progression_guidance"`
	AdaptationNote      string `bson:"adaptationNote" json:"adaptation_note"`
}

// WorkoutDay is either a rest day or a named session with exercises.
// It encodes as the string "REST" for rest days in both JSON and BSON.
type WorkoutDay struct {
	Rest      bool
	Name      string
	Exercises []ExerciseEntry
}

// ExerciseEntry is one prescribed exercise.
type ExerciseEntry struct {
	Name  string `bson:"name" json:"name"`
	Sets  int    `bson:"sets" json:"sets"`
	Reps  string `bson:"reps" json:"reps"` // free form, e.g. "8-12"
	Rest  int    `bson:"rest" json:"rest"` // seconds
	Notes string `bson:"notes" json:"notes"`
}

// workoutSession is the object form of a non-rest WorkoutDay.
type workoutSession struct {
	Name      string          `bson:"name" json:"name"`
	Exercises []ExerciseEntry `bson:"exercises" json:"exercises"`
}

// RestDay returns a rest WorkoutDay.
func RestDay() WorkoutDay { return WorkoutDay{Rest: true} }

// FindExercise returns the index of the first exercise named exactly name, or -1.
func (d WorkoutDay) FindExercise(name string) int {
	if d.Rest {
		return -1
	}
	for i, ex := range d.Exercises {
		if ex.Name == name {
			return i
		}
	}
	return -1
}

func (d WorkoutDay) MarshalJSON() ([]byte, error) {
	if d.Rest {
		return json.Marshal(RestDayMarker)
	}
	return json.Marshal(workoutSession{Name: d.Name, Exercises: d.Exercises})
}

func (d *WorkoutDay) UnmarshalJSON(data []byte) error {
	var marker string
	if err := json.Unmarshal(data, &marker); err == nil {
		if marker != RestDayMarker {
			return fmt.Errorf("workout day: unexpected marker %q", marker)
		}
		*d = RestDay()
		return nil
	}
	var s workoutSession
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = WorkoutDay{Name: s.Name, Exercises: s.Exercises}
	return nil
}

func (d WorkoutDay) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if d.Rest {
		return bson.MarshalValue(RestDayMarker)
	}
	return bson.MarshalValue(workoutSession{Name: d.Name, Exercises: d.Exercises})
}

func (d *WorkoutDay) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		marker, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
		if !ok || marker != RestDayMarker {
			return fmt.Errorf("workout day: unexpected marker %q", marker)
		}
		*d = RestDay()
		return nil
	case bsontype.EmbeddedDocument:
		var s workoutSession
		if err := bson.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = WorkoutDay{Name: s.Name, Exercises: s.Exercises}
		return nil
	default:
		return fmt.Errorf("workout day: unsupported bson type %s", t)
	}
}

// Clone returns a deep copy of the plan.
func (p *WorkoutPlan) Clone() *WorkoutPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Days = make(map[Weekday]WorkoutDay, len(p.Days))
	for k, v := range p.Days {
		v.Exercises = append([]ExerciseEntry(nil), v.Exercises...)
		out.Days[k] = v
	}
	return &out
}
