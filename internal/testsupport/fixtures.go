package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/events"
)

// MealJSON is a complete provider meal object.
func MealJSON(name string, calories int) string {
	return fmt.Sprintf(`{"name":%q,"calories":%d,"protein":35,"carbs":60,"fat":18,`+
		`"ingredients":["rice","beans"],"portion_guidance":"1 cup cooked","substitutions":["quinoa for rice"]}`, name, calories)
}

// MealPlanJSON is a valid seven-day meal plan as the provider would return it.
func MealPlanJSON() string {
	days := make([]string, 0, len(domain.Weekdays)+1)
	for _, d := range domain.Weekdays {
		days = append(days, fmt.Sprintf(`%q:{"breakfast":%s,"lunch":%s,"dinner":%s}`, d,
			MealJSON("Greek Yogurt Parfait", 450), MealJSON("Chicken Quinoa Bowl", 650), MealJSON("Baked Salmon", 700)))
	}
	days = append(days, `"meta":{"adjustment_explanation":"Welcome to your new plan."}`)
	return "{" + strings.Join(days, ",") + "}"
}

// ExerciseJSON is a complete provider exercise object.
func ExerciseJSON(name string) string {
	return fmt.Sprintf(`{"name":%q,"sets":3,"reps":"10-12","rest":90,"notes":"control the eccentric"}`, name)
}

// WorkoutPlanJSON is a valid programme: push/pull/legs on Mon/Wed/Fri, the rest REST.
func WorkoutPlanJSON() string {
	sessions := map[domain.Weekday]string{
		domain.Monday:    `{"name":"Push","exercises":[` + ExerciseJSON("Bench Press") + `,` + ExerciseJSON("Overhead Press") + `]}`,
		domain.Wednesday: `{"name":"Pull","exercises":[` + ExerciseJSON("Barbell Row") + `,` + ExerciseJSON("Pull Up") + `]}`,
		domain.Friday:    `{"name":"Legs","exercises":[` + ExerciseJSON("Back Squat") + `,` + ExerciseJSON("Romanian Deadlift") + `]}`,
	}
	days := make([]string, 0, len(domain.Weekdays)+1)
	for _, d := range domain.Weekdays {
		body, ok := sessions[d]
		if !ok {
			body = `"REST"`
		}
		days = append(days, fmt.Sprintf(`%q:%s`, d, body))
	}
	days = append(days, `"meta":{"weekly_split":"Push/Pull/Legs","progression_guidance":"Add 2.5kg when all sets hit the top of the range.","adaptation_note":""}`)
	return "{" + strings.Join(days, ",") + "}"
}

// PremiumProfile is a fully populated premium user.
func PremiumProfile(userID string) domain.UserProfile {
	p := FreeProfile(userID)
	p.IsPremium = true
	return p
}

// FreeProfile matches the example fat-loss omnivore profile.
func FreeProfile(userID string) domain.UserProfile {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return domain.UserProfile{
		ID:    userID,
		Email: userID + "@example.com",
		Profile: domain.ProfileAttributes{
			Goal:           "fat_loss",
			TargetCalories: 2000,
			TargetProtein:  150,
			TargetCarbs:    180,
			TargetFat:      60,
			DietType:       "omnivore",
			ActivityLevel:  "moderate",
			Equipment:      "dumbbells",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RecordingPublisher collects published events.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

// Types returns the event types in publish order.
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// Payload decodes the payload of the i-th event.
func (p *RecordingPublisher) Payload(i int) map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out map[string]any
	_ = json.Unmarshal(p.events[i].Payload, &out)
	return out
}

// MemoryStorage keeps uploaded objects in a map.
type MemoryStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
	URLErr  error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Objects: map[string][]byte{}}
}

func (m *MemoryStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = append([]byte(nil), body...)
	return nil
}

func (m *MemoryStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	if m.URLErr != nil {
		return "", m.URLErr
	}
	return fmt.Sprintf("https://storage.test/%s?expires=%d", key, int(expires.Seconds())), nil
}

func (m *MemoryStorage) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}
