package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/events"
	"fitsync/backend/internal/repository/memory"
	"fitsync/backend/internal/testsupport"
)

func TestAnalyticsReturnsLastThirtyDaysAscending(t *testing.T) {
	repo := memory.NewProgressRepository()
	svc := NewProgressService(repo, nil, func() time.Time { return fixedNow })
	ctx := context.Background()

	for _, age := range []int{1, 31, 29} {
		date := fixedNow.Add(-time.Duration(age) * 24 * time.Hour)
		require.NoError(t, svc.LogWeight(ctx, "user-1", domain.WeightLog{Weight: float64(70 + age), Date: date}))
		require.NoError(t, svc.LogCalories(ctx, "user-1", domain.CalorieLog{TotalCalories: 2000 + age, Date: date}))
		require.NoError(t, svc.LogWorkout(ctx, "user-1", domain.WorkoutLog{Day: "monday", WorkoutName: "Push", Date: date}))
	}

	a, err := svc.Analytics(ctx, "user-1")
	require.NoError(t, err)

	require.Len(t, a.WeightLogs, 2)
	require.Equal(t, 99.0, a.WeightLogs[0].Weight)
	require.Equal(t, 71.0, a.WeightLogs[1].Weight)
	require.Len(t, a.CalorieLogs, 2)
	require.Equal(t, 2029, a.CalorieLogs[0].TotalCalories)
	require.Len(t, a.WorkoutLogs, 2)
	require.True(t, a.WorkoutLogs[0].Completed)
}

func TestLogValidationAndEvents(t *testing.T) {
	publisher := &testsupport.RecordingPublisher{}
	svc := NewProgressService(memory.NewProgressRepository(), publisher, func() time.Time { return fixedNow })
	ctx := context.Background()

	require.ErrorIs(t, svc.LogWeight(ctx, "user-1", domain.WeightLog{Weight: 0}), ErrInvalidInput)
	require.ErrorIs(t, svc.LogCalories(ctx, "user-1", domain.CalorieLog{TotalCalories: -5}), ErrInvalidInput)
	require.ErrorIs(t, svc.LogWorkout(ctx, "user-1", domain.WorkoutLog{}), ErrInvalidInput)
	require.Empty(t, publisher.Types())

	require.NoError(t, svc.LogWeight(ctx, "user-1", domain.WeightLog{Weight: 72.5}))
	require.Equal(t, []string{events.TypeProgressLogged}, publisher.Types())
	require.Equal(t, "weight", publisher.Payload(0)["log"])

	a, err := svc.Analytics(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, a.WeightLogs, 1)
	require.Equal(t, fixedNow, a.WeightLogs[0].Date)
}
