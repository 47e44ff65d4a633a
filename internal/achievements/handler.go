package achievements

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/traintally/backend/internal/telemetry/tracing"
	"github.com/traintally/backend/pkg"

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const progressCacheExpireSeconds = 60

type ProgressResponse struct {
	Ladder            Ladder   `json:"ladder"`
	Value             float64  `json:"value"`
	Progress          Progress `json:"progress"`
	OverallCompletion float64  `json:"overallCompletion"`
}

type Handler struct {
	cache *freecache.Cache
}

func NewHandler() *Handler {
	megabyte := 1024 * 1024
	return &Handler{
		cache: freecache.NewCache(1 * megabyte),
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/achievements/{kind}", handler.HandleGetLadder).Methods("GET", "OPTIONS").Name("get-ladder")
	r.HandleFunc("/achievements/{kind}/progress", handler.HandleGetProgress).Methods("GET", "OPTIONS").Name("get-ladder-progress")
}

func (handler *Handler) HandleGetLadder(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.ladder")
	defer span.End()

	vars := mux.Vars(r)
	ladder, err := LadderByID(vars["kind"])
	if err != nil {
		http.Error(w, "ladder not found", http.StatusNotFound)
		return
	}

	ladderJson, err := json.Marshal(ladder)
	if err != nil {
		log.Errorf("failed to marshal ladder %s: %s", ladder.ID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, ladderJson, http.StatusOK)
}

func (handler *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.progress")
	defer span.End()

	vars := mux.Vars(r)
	ladder, err := LadderByID(vars["kind"])
	if err != nil {
		http.Error(w, "ladder not found", http.StatusNotFound)
		return
	}

	valueStr := r.URL.Query().Get("value")
	if valueStr == "" {
		http.Error(w, "error, value param empty", http.StatusBadRequest)
		return
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil || value < 0 {
		http.Error(w, "error, value param invalid", http.StatusBadRequest)
		return
	}

	cacheKey := []byte(fmt.Sprintf("%s::%s", ladder.ID, valueStr))
	if cached, err := handler.cache.Get(cacheKey); err == nil {
		log.Tracef("achievements progress cache hit: %s", cacheKey)
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
		return
	}

	resp := ProgressResponse{
		Ladder:            ladder,
		Value:             value,
		Progress:          ladder.ProgressFor(value),
		OverallCompletion: ladder.OverallCompletion(value),
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal ladder progress %s: %s", ladder.ID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set(cacheKey, respJson, progressCacheExpireSeconds); err != nil {
		log.Errorf("failed to cache ladder progress %s: %s", cacheKey, err)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
