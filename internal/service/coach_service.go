package service

import (
	"context"
	"encoding/json"
	"fmt"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/prompt"
	"fitsync/backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

// Log windows read for plateau analysis.
const (
	plateauWeightLogs  = 14
	plateauCalorieLogs = 7
	plateauWorkoutLogs = 7
)

// CoachService produces coaching text. Nothing it returns is persisted.
type CoachService interface {
	GenerateInsight(ctx context.Context, userID string, signals domain.CoachSignals) (string, error)
	GeneratePlateauAnalysis(ctx context.Context, userID string) (string, error)
}

type coachService struct {
	entitlements *Entitlements
	progress     repository.ProgressRepository
	generator    *Generator
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(entitlements *Entitlements, progress repository.ProgressRepository, generator *Generator) CoachService {
	return &coachService{
		entitlements: entitlements,
		progress:     progress,
		generator:    generator,
	}
}

// FallbackInsight is the fixed message shown to non-premium users.
func FallbackInsight(calorieAdherencePercent float64) string {
	habit := "daily logs"
	if calorieAdherencePercent > 80 {
		habit = "excellent logging"
	}
	return "Stay consistent with your " + habit + " to see results. Upgrade to Premium for deep analysis."
}

func (s *coachService) GenerateInsight(ctx context.Context, userID string, signals domain.CoachSignals) (string, error) {
	profile, entitled, err := s.entitlements.Lookup(ctx, userID)
	if err != nil {
		return "", err
	}
	if !entitled {
		return FallbackInsight(signals.CalorieAdherence.AdherencePercent), nil
	}

	req, err := s.generator.prompts.CoachInsight(profile.Profile.Goal, signals)
	if err != nil {
		return "", err
	}
	return s.generator.generateText(ctx, "coach_insight", req)
}

// plateauLogs is the raw data attached to the plateau prompt, newest first.
type plateauLogs struct {
	WeightLogs  []domain.WeightLog  `json:"weightLogs"`
	CalorieLogs []domain.CalorieLog `json:"calorieLogs"`
	WorkoutLogs []domain.WorkoutLog `json:"workoutLogs"`
}

func (s *coachService) GeneratePlateauAnalysis(ctx context.Context, userID string) (string, error) {
	profile, err := s.entitlements.Require(ctx, userID, FeaturePlateau)
	if err != nil {
		return "", err
	}

	var logs plateauLogs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		logs.WeightLogs, err = s.progress.RecentWeightLogs(gctx, userID, plateauWeightLogs)
		return err
	})
	g.Go(func() (err error) {
		logs.CalorieLogs, err = s.progress.RecentCalorieLogs(gctx, userID, plateauCalorieLogs)
		return err
	})
	g.Go(func() (err error) {
		logs.WorkoutLogs, err = s.progress.RecentWorkoutLogs(gctx, userID, plateauWorkoutLogs)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to load progress logs: %w", err)
	}

	raw, err := json.Marshal(logs)
	if err != nil {
		return "", err
	}

	req, err := s.generator.prompts.Plateau(prompt.PlateauInput{
		Goal:            profile.Profile.Goal,
		WeightChange:    WeightChange(logs.WeightLogs),
		WeightLogCount:  len(logs.WeightLogs),
		AverageCalories: AverageCalories(logs.CalorieLogs),
		TargetCalories:  profile.Profile.TargetCalories,
		WorkoutCount:    len(logs.WorkoutLogs),
		LogsJSON:        string(raw),
	})
	if err != nil {
		return "", err
	}
	return s.generator.generateText(ctx, "plateau_analysis", req)
}

// WeightChange is newest minus oldest over logs ordered newest first.
// Fewer than two logs gives 0.
func WeightChange(newestFirst []domain.WeightLog) float64 {
	if len(newestFirst) < 2 {
		return 0
	}
	return newestFirst[0].Weight - newestFirst[len(newestFirst)-1].Weight
}

// AverageCalories is the mean daily intake, 0 for no logs.
func AverageCalories(logs []domain.CalorieLog) int {
	if len(logs) == 0 {
		return 0
	}
	total := 0
	for _, l := range logs {
		total += l.TotalCalories
	}
	return total / len(logs)
}
