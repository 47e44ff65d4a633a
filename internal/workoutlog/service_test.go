package workoutlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/traintally/backend/internal/telemetry/metrics"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	records    map[string]Record
	aggregates map[string]*Aggregate
	nextID     int

	addErr       error
	incrementErr error
}

func newRepoMock() *repoMock {
	return &repoMock{
		records:    make(map[string]Record),
		aggregates: make(map[string]*Aggregate),
	}
}

func (m *repoMock) Add(_ context.Context, record Record) (*Record, bool, error) {
	if m.addErr != nil {
		return nil, false, m.addErr
	}
	if _, ok := m.records[record.ClientRef]; ok {
		return &record, false, nil
	}
	m.nextID++
	record.ID = m.nextID
	m.records[record.ClientRef] = record
	return &record, true, nil
}

func (m *repoMock) IncrementWorkScore(_ context.Context, userID string, workoutType WorkoutType, score int) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	aggregate, ok := m.aggregates[userID]
	if !ok {
		aggregate = &Aggregate{UserID: userID}
		m.aggregates[userID] = aggregate
	}
	aggregate.TotalWorkScore += score
	switch workoutType {
	case WorkoutTypeStrength:
		aggregate.StrengthWorkScore += score
	case WorkoutTypeCardio:
		aggregate.CardioWorkScore += score
	}
	aggregate.LastUpdatedAt = time.Now()
	return nil
}

func TestService_LogWorkout_FillsDefaults(t *testing.T) {
	repo := newRepoMock()
	service := NewService(repo, metrics.NewTestManager())

	added, err := service.LogWorkout(context.Background(), Record{
		UserID:      gofakeit.UUID(),
		WorkoutType: WorkoutTypeStrength,
		Notes:       gofakeit.Sentence(5),
		Exercises:   []Exercise{{Name: "bench press", Sets: 3, Reps: 10, Weight: 100}},
	})
	require.NoError(t, err)
	require.NotNil(t, added)

	assert.Equal(t, 1, added.ID)
	assert.Equal(t, SourceManual, added.Source)
	assert.Equal(t, SchemaVersion, added.Version)
	assert.NotEmpty(t, added.ClientRef)
	assert.False(t, added.CreatedAt.IsZero())
}

func TestService_LogWorkout_AggregateAccumulates(t *testing.T) {
	repo := newRepoMock()
	service := NewService(repo, metrics.NewTestManager())

	_, err := service.LogWorkout(context.Background(), Record{
		UserID:      "user1",
		WorkoutType: WorkoutTypeStrength,
		Exercises:   []Exercise{{Name: "bench press", Sets: 3, Reps: 10, Weight: 100}},
	})
	require.NoError(t, err)

	intensity := 10.0
	_, err = service.LogWorkout(context.Background(), Record{
		UserID:      "user1",
		WorkoutType: WorkoutTypeCardio,
		Exercises:   []Exercise{{Name: "run", Duration: 20, Intensity: &intensity}},
	})
	require.NoError(t, err)

	aggregate := repo.aggregates["user1"]
	require.NotNil(t, aggregate)
	assert.Equal(t, 110, aggregate.TotalWorkScore)
	assert.Equal(t, 30, aggregate.StrengthWorkScore)
	assert.Equal(t, 80, aggregate.CardioWorkScore)
	assert.False(t, aggregate.LastUpdatedAt.IsZero())
}

func TestService_LogWorkout_MissingUserSkipsAggregation(t *testing.T) {
	repo := newRepoMock()
	service := NewService(repo, metrics.NewTestManager())

	added, err := service.LogWorkout(context.Background(), Record{
		WorkoutType: WorkoutTypeStrength,
		Exercises:   []Exercise{{Name: "bench press", Sets: 3, Reps: 10, Weight: 100}},
	})
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Empty(t, repo.aggregates)
}

func TestService_LogWorkout_DuplicateClientRefSkipsAggregation(t *testing.T) {
	repo := newRepoMock()
	service := NewService(repo, metrics.NewTestManager())

	record := Record{
		UserID:      "user1",
		ClientRef:   "chat-session-1",
		WorkoutType: WorkoutTypeStrength,
		Exercises:   []Exercise{{Name: "bench press", Sets: 3, Reps: 10, Weight: 100}},
	}

	_, err := service.LogWorkout(context.Background(), record)
	require.NoError(t, err)
	_, err = service.LogWorkout(context.Background(), record)
	require.NoError(t, err)

	assert.Len(t, repo.records, 1)
	assert.Equal(t, 30, repo.aggregates["user1"].TotalWorkScore)
}

func TestService_LogWorkout_AggregationFailureDoesNotFailInsert(t *testing.T) {
	repo := newRepoMock()
	repo.incrementErr = errors.New("aggregate table on fire")
	service := NewService(repo, metrics.NewTestManager())

	added, err := service.LogWorkout(context.Background(), Record{
		UserID:      "user1",
		WorkoutType: WorkoutTypeStrength,
		Exercises:   []Exercise{{Name: "bench press", Sets: 3, Reps: 10, Weight: 100}},
	})
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Len(t, repo.records, 1)
}

func TestService_LogWorkout_AddError(t *testing.T) {
	repo := newRepoMock()
	repo.addErr = errors.New("db down")
	service := NewService(repo, metrics.NewTestManager())

	added, err := service.LogWorkout(context.Background(), Record{
		UserID:    "user1",
		Exercises: []Exercise{{Name: "bench press"}},
	})
	require.Error(t, err)
	assert.Nil(t, added)
}
