package workoutlog_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/traintally/backend/internal/workoutlog"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogTestHandler(t *testing.T) (*workoutlog.Handler, *MockworkoutLogger, *MockworkoutsRepo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	serviceMock := NewMockworkoutLogger(ctrl)
	repoMock := NewMockworkoutsRepo(ctrl)
	return workoutlog.NewHandler(serviceMock, repoMock), serviceMock, repoMock
}

func TestHandleAdd(t *testing.T) {
	handler, serviceMock, _ := newLogTestHandler(t)

	record := workoutlog.Record{
		UserID:      "user1",
		WorkoutType: workoutlog.WorkoutTypeStrength,
		Exercises: []workoutlog.Exercise{
			{Name: "bench press", Sets: 3, Reps: 10, Weight: 100},
		},
	}
	addedRecord := record
	addedRecord.ID = 7
	addedRecord.Source = workoutlog.SourceManual
	addedRecord.Version = workoutlog.SchemaVersion
	addedRecord.CreatedAt = time.Now()

	serviceMock.
		EXPECT().
		LogWorkout(gomock.Any(), gomock.Any()).
		Return(&addedRecord, nil)

	recordJson, err := json.Marshal(record)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "/workouts", bytes.NewReader(recordJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.HandleAdd(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var respRecord workoutlog.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &respRecord))
	assert.Equal(t, 7, respRecord.ID)
	assert.Equal(t, workoutlog.SourceManual, respRecord.Source)
}

func TestHandleAdd_InvalidContentType(t *testing.T) {
	handler, _, _ := newLogTestHandler(t)

	req, err := http.NewRequest(http.MethodPost, "/workouts", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.HandleAdd(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleAdd_EmptyWorkout(t *testing.T) {
	handler, _, _ := newLogTestHandler(t)

	req, err := http.NewRequest(http.MethodPost, "/workouts", bytes.NewReader([]byte(`{"userId":"user1"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.HandleAdd(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleAdd_ServiceError(t *testing.T) {
	handler, serviceMock, _ := newLogTestHandler(t)

	serviceMock.
		EXPECT().
		LogWorkout(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	req, err := http.NewRequest(
		http.MethodPost, "/workouts",
		bytes.NewReader([]byte(`{"userId":"user1","exercises":[{"name":"bench press"}]}`)),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.HandleAdd(rr, req)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandleGetAggregate(t *testing.T) {
	handler, _, repoMock := newLogTestHandler(t)

	repoMock.
		EXPECT().
		GetAggregate(gomock.Any(), "user1").
		Return(&workoutlog.Aggregate{
			UserID:            "user1",
			TotalWorkScore:    110,
			StrengthWorkScore: 30,
			CardioWorkScore:   80,
			LastUpdatedAt:     time.Now(),
		}, nil)

	req, err := http.NewRequest(http.MethodGet, "/workouts/aggregate?userId=user1", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.HandleGetAggregate(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var aggregate workoutlog.Aggregate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &aggregate))
	assert.Equal(t, 110, aggregate.TotalWorkScore)
	assert.Equal(t, 30, aggregate.StrengthWorkScore)
	assert.Equal(t, 80, aggregate.CardioWorkScore)
}

func TestHandleGetAggregate_MissingUser(t *testing.T) {
	handler, _, _ := newLogTestHandler(t)

	req, err := http.NewRequest(http.MethodGet, "/workouts/aggregate", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.HandleGetAggregate(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGetAggregate_NotFound(t *testing.T) {
	handler, _, repoMock := newLogTestHandler(t)

	repoMock.
		EXPECT().
		GetAggregate(gomock.Any(), "ghost").
		Return(nil, workoutlog.ErrAggregateNotFound)

	req, err := http.NewRequest(http.MethodGet, "/workouts/aggregate?userId=ghost", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.HandleGetAggregate(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleList(t *testing.T) {
	handler, _, repoMock := newLogTestHandler(t)

	repoMock.
		EXPECT().
		List(gomock.Any(), workoutlog.ListParams{UserID: "user1", Page: 2, Size: 5}).
		Return([]workoutlog.Record{
			{ID: 11, UserID: "user1", Notes: "leg day"},
			{ID: 10, UserID: "user1", Notes: "push day"},
		}, 12, nil)

	req, err := http.NewRequest(http.MethodGet, "/workouts/list/page/2/size/5?userId=user1", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"page": "2", "size": "5"})

	rr := httptest.NewRecorder()
	handler.HandleList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var listResponse workoutlog.ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResponse))
	assert.Equal(t, 12, listResponse.Total)
	require.Len(t, listResponse.Workouts, 2)
	assert.Equal(t, 11, listResponse.Workouts[0].ID)
}

func TestHandleList_InvalidPage(t *testing.T) {
	handler, _, _ := newLogTestHandler(t)

	req, err := http.NewRequest(http.MethodGet, "/workouts/list/page/zero/size/5", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"page": "zero", "size": "5"})

	rr := httptest.NewRecorder()
	handler.HandleList(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
