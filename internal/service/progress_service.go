package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/events"
	"fitsync/backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

const analyticsWindow = 30 * 24 * time.Hour

// Analytics holds the last 30 days of logs, each ordered oldest first.
type Analytics struct {
	WeightLogs  []domain.WeightLog  `json:"weightLogs"`
	CalorieLogs []domain.CalorieLog `json:"calorieLogs"`
	WorkoutLogs []domain.WorkoutLog `json:"workoutLogs"`
}

// ProgressService records and reads progress logs.
type ProgressService interface {
	LogWeight(ctx context.Context, userID string, entry domain.WeightLog) error
	LogCalories(ctx context.Context, userID string, entry domain.CalorieLog) error
	LogWorkout(ctx context.Context, userID string, entry domain.WorkoutLog) error
	Analytics(ctx context.Context, userID string) (*Analytics, error)
}

type progressService struct {
	progress repository.ProgressRepository
	events   events.Publisher
	now      func() time.Time
}

// NewProgressService creates a new instance of progressService. now may be nil.
func NewProgressService(progress repository.ProgressRepository, publisher events.Publisher, now func() time.Time) ProgressService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &progressService{progress: progress, events: publisher, now: now}
}

func (s *progressService) LogWeight(ctx context.Context, userID string, entry domain.WeightLog) error {
	if entry.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	entry.UserID = userID
	entry.Date = s.dateOrNow(entry.Date)
	if _, err := s.progress.AddWeightLog(ctx, &entry); err != nil {
		log.Printf("ERROR: Failed to save weight log for user %s: %v", userID, err)
		return err
	}
	s.published(ctx, userID, "weight", entry.Date)
	return nil
}

func (s *progressService) LogCalories(ctx context.Context, userID string, entry domain.CalorieLog) error {
	if entry.TotalCalories < 0 || entry.Protein < 0 || entry.Carbs < 0 || entry.Fat < 0 {
		return fmt.Errorf("%w: calories and macros cannot be negative", ErrInvalidInput)
	}
	entry.UserID = userID
	entry.Date = s.dateOrNow(entry.Date)
	if _, err := s.progress.AddCalorieLog(ctx, &entry); err != nil {
		log.Printf("ERROR: Failed to save calorie log for user %s: %v", userID, err)
		return err
	}
	s.published(ctx, userID, "calories", entry.Date)
	return nil
}

func (s *progressService) LogWorkout(ctx context.Context, userID string, entry domain.WorkoutLog) error {
	if strings.TrimSpace(entry.WorkoutName) == "" {
		return fmt.Errorf("%w: workout name is required", ErrInvalidInput)
	}
	entry.UserID = userID
	entry.Completed = true
	entry.Date = s.dateOrNow(entry.Date)
	if _, err := s.progress.AddWorkoutLog(ctx, &entry); err != nil {
		log.Printf("ERROR: Failed to save workout log for user %s: %v", userID, err)
		return err
	}
	s.published(ctx, userID, "workout", entry.Date)
	return nil
}

func (s *progressService) Analytics(ctx context.Context, userID string) (*Analytics, error) {
	since := s.now().Add(-analyticsWindow)

	var out Analytics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.WeightLogs, err = s.progress.WeightLogsSince(gctx, userID, since)
		return err
	})
	g.Go(func() (err error) {
		out.CalorieLogs, err = s.progress.CalorieLogsSince(gctx, userID, since)
		return err
	})
	g.Go(func() (err error) {
		out.WorkoutLogs, err = s.progress.WorkoutLogsSince(gctx, userID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}
	return &out, nil
}

func (s *progressService) dateOrNow(d time.Time) time.Time {
	if d.IsZero() {
		return s.now()
	}
	return d.UTC()
}

func (s *progressService) published(ctx context.Context, userID, logType string, date time.Time) {
	publish(ctx, s.events, events.TypeProgressLogged, userID, map[string]any{"log": logType, "date": date})
}
