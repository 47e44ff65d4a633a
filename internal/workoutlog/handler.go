package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/traintally/backend/internal/telemetry/tracing"
	"github.com/traintally/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workoutlog_test

type workoutLogger interface {
	LogWorkout(ctx context.Context, record Record) (*Record, error)
}

type workoutsRepo interface {
	GetAggregate(ctx context.Context, userID string) (*Aggregate, error)
	List(ctx context.Context, params ListParams) (_ []Record, total int, err error)
}

type ListResponse struct {
	Workouts []Record `json:"workouts"`
	Total    int      `json:"total"`
}

type Handler struct {
	service workoutLogger
	repo    workoutsRepo
}

func NewHandler(service workoutLogger, repo workoutsRepo) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var record Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if len(record.Exercises) == 0 && record.WorkScore == nil {
		http.Error(w, "error, workout without exercises or work score", http.StatusBadRequest)
		return
	}

	addedRecord, err := handler.service.LogWorkout(ctx, record)
	if err != nil {
		log.Errorf("failed to add new workout for user [%s]: %s", record.UserID, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(addedRecord)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %d", addedRecord.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleGetAggregate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.aggregate")
	defer span.End()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	aggregate, err := handler.repo.GetAggregate(ctx, userID)
	if errors.Is(err, ErrAggregateNotFound) {
		http.Error(w, "aggregate not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get work score aggregate for user [%s]: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	aggregateJson, err := json.Marshal(aggregate)
	if err != nil {
		log.Errorf("failed to marshal work score aggregate: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, aggregateJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.list")
	defer span.End()

	vars := mux.Vars(r)

	pageStr := vars["page"]
	if pageStr == "" {
		http.Error(w, "error, page empty", http.StatusBadRequest)
		return
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		http.Error(w, "error, page NaN", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	if sizeStr == "" {
		http.Error(w, "error, size empty", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		http.Error(w, "error, size NaN", http.StatusBadRequest)
		return
	}
	if page < 1 || size < 1 {
		http.Error(w, "error, page and size must be positive", http.StatusBadRequest)
		return
	}

	records, total, err := handler.repo.List(ctx, ListParams{
		UserID: r.URL.Query().Get("userId"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		log.Errorf("failed to list workouts: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	listResponse := ListResponse{
		Workouts: records,
		Total:    total,
	}
	if listResponse.Workouts == nil {
		listResponse.Workouts = []Record{}
	}

	listJson, err := json.Marshal(listResponse)
	if err != nil {
		log.Errorf("failed to marshal workouts list: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listJson, http.StatusOK)
}
