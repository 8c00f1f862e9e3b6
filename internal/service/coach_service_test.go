package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/repository/memory"
	"fitsync/backend/internal/testsupport"
)

func newCoach(premium bool) (CoachService, *memory.ProgressRepository, *testsupport.FakeProvider) {
	profiles := memory.NewProfileRepository()
	if premium {
		profiles.Put(testsupport.PremiumProfile("user-1"))
	} else {
		profiles.Put(testsupport.FreeProfile("user-1"))
	}
	progress := memory.NewProgressRepository()
	provider := testsupport.NewFakeProvider()
	return NewCoachService(NewEntitlements(profiles), progress, NewGenerator(provider, nil, time.Second)), progress, provider
}

func signalsWithAdherence(pct float64) domain.CoachSignals {
	return domain.CoachSignals{
		WeightTrend:      domain.WeightTrend{Trend: "down", Change: -0.4},
		CalorieAdherence: domain.Adherence{AdherencePercent: pct},
		WorkoutAdherence: domain.Adherence{AdherencePercent: 60},
		TodayCalories:    1850,
		TodayMacros:      domain.Macros{Protein: 120, Carbs: 150, Fat: 55},
	}
}

func TestNonPremiumInsightIsDeterministicFallback(t *testing.T) {
	svc, _, provider := newCoach(false)
	ctx := context.Background()

	high, err := svc.GenerateInsight(ctx, "user-1", signalsWithAdherence(81))
	require.NoError(t, err)
	again, err := svc.GenerateInsight(ctx, "user-1", signalsWithAdherence(81))
	require.NoError(t, err)
	low, err := svc.GenerateInsight(ctx, "user-1", signalsWithAdherence(79))
	require.NoError(t, err)

	require.Equal(t, high, again)
	require.Equal(t, "Stay consistent with your excellent logging to see results. Upgrade to Premium for deep analysis.", high)
	require.Equal(t, "Stay consistent with your daily logs to see results. Upgrade to Premium for deep analysis.", low)
	require.Equal(t, low, FallbackInsight(80))
	require.Zero(t, provider.CallCount())

	// No profile at all behaves like a free user.
	anon, err := svc.GenerateInsight(ctx, "nobody", signalsWithAdherence(90))
	require.NoError(t, err)
	require.Equal(t, high, anon)
}

func TestPremiumInsightUsesProvider(t *testing.T) {
	svc, _, provider := newCoach(true)
	provider.QueueText("### Reasoning\nYou're in a steady deficit.")

	insight, err := svc.GenerateInsight(context.Background(), "user-1", signalsWithAdherence(85))
	require.NoError(t, err)
	require.Equal(t, "### Reasoning\nYou're in a steady deficit.", insight)

	call := provider.Calls()[0]
	require.Contains(t, call.Prompt, "Goal: fat_loss")
	require.Contains(t, call.Prompt, "Today's Progress: 1850 kcal, 120g protein")
	require.EqualValues(t, 500, call.MaxTokens)
}

func TestPlateauAnalysisRequiresPremium(t *testing.T) {
	svc, _, provider := newCoach(false)
	_, err := svc.GeneratePlateauAnalysis(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrPermissionDenied)
	require.Equal(t, "Plateau diagnostics are available for Premium members only.", err.Error())
	require.Zero(t, provider.CallCount())
}

func TestPlateauAnalysisSummarisesRecentLogs(t *testing.T) {
	svc, progress, provider := newCoach(true)
	ctx := context.Background()
	base := time.Now().UTC().Add(-20 * 24 * time.Hour)

	// 16 weigh-ins; only the newest 14 count: 84.0 (day 2) down to 82.7 (day 15).
	for i := 0; i < 16; i++ {
		_, err := progress.AddWeightLog(ctx, &domain.WeightLog{UserID: "user-1", Weight: 84.2 - 0.1*float64(i), Date: base.AddDate(0, 0, i)})
		require.NoError(t, err)
	}
	for i, kcal := range []int{2100, 2300, 1900, 2200} {
		_, err := progress.AddCalorieLog(ctx, &domain.CalorieLog{UserID: "user-1", TotalCalories: kcal, Date: base.AddDate(0, 0, i)})
		require.NoError(t, err)
	}
	_, err := progress.AddWorkoutLog(ctx, &domain.WorkoutLog{UserID: "user-1", WorkoutName: "Push", Completed: true, Date: base})
	require.NoError(t, err)

	provider.QueueText("### Plateau Diagnosis\nWater retention.")
	analysis, err := svc.GeneratePlateauAnalysis(ctx, "user-1")
	require.NoError(t, err)
	require.Contains(t, analysis, "Water retention")

	call := provider.Calls()[0]
	require.Contains(t, call.Prompt, "14-day weight change: -1.3kg across 14 weigh-ins")
	require.Contains(t, call.Prompt, "2125 kcal per day against a target of 2000 kcal")
	require.Contains(t, call.Prompt, "1 workouts")
	require.EqualValues(t, 600, call.MaxTokens)
}

func TestWeightChange(t *testing.T) {
	require.Zero(t, WeightChange(nil))
	require.Zero(t, WeightChange([]domain.WeightLog{{Weight: 80}}))
	require.InDelta(t, -1.5, WeightChange([]domain.WeightLog{{Weight: 78.5}, {Weight: 79}, {Weight: 80}}), 1e-9)
	require.Zero(t, AverageCalories(nil))
}
