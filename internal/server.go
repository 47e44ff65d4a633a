package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/traintally/backend/internal/achievements"
	"github.com/traintally/backend/internal/auth"
	"github.com/traintally/backend/internal/config"
	"github.com/traintally/backend/internal/db"
	"github.com/traintally/backend/internal/middleware"
	"github.com/traintally/backend/internal/telemetry/metrics"
	"github.com/traintally/backend/internal/workoutchat"
	"github.com/traintally/backend/internal/workoutlog"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	mobileAppSecret   string // used by the TrainTally mobile app
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	assistant      *workoutchat.Assistant
	chatHandler    *workoutchat.Handler
	workoutService *workoutlog.Service
	workoutRepo    *workoutlog.Repo

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config            *config.Config
	AssistantAPIKey   string
	MobileAppSecret   string
	VersionInfo       string
	AdminUsername     string
	AdminPasswordHash string
	RedisPassword     string
	TracingEnabled    bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "traintally_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	assistant, err := workoutchat.NewAssistant(workoutchat.NewAssistantParams{
		BaseURL:    params.Config.AssistantBaseURL,
		Model:      params.Config.AssistantModel,
		Token:      params.AssistantAPIKey,
		MaxTokens:  params.Config.AssistantMaxTokens,
		HTTPClient: tracedHttpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("new workout chat assistant: %w", err)
	}

	workoutRepo := workoutlog.NewRepo(dbPool)
	workoutService := workoutlog.NewService(workoutRepo, metricsManager)

	chatHandler := workoutchat.NewHandler(
		assistant,
		&aiWorkoutSaver{service: workoutService},
		metricsManager,
	)
	go func() {
		for range time.Tick(time.Hour) {
			chatHandler.CleanInactiveGates(24 * time.Hour)
		}
	}()

	return &Server{
		config:          params.Config,
		dbPool:          dbPool,
		mobileAppSecret: params.MobileAppSecret,
		versionInfo:     params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		assistant:      assistant,
		chatHandler:    chatHandler,
		workoutRepo:    workoutRepo,
		workoutService: workoutService,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	authHandler := auth.NewHandler(s.authService, s.versionInfo)
	authHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	achievementsHandler := achievements.NewHandler()
	achievementsHandler.SetupRoutes(r)

	// the chat relay answers non-POST methods itself, with CORS headers on
	// every response, so the route must not let mux do the 405 handling
	r.Handle(
		"/workoutchat",
		middleware.RateLimit(
			reqRateLimiter, "workoutchat",
			s.config.ChatRateLimitAllowedPerMin, s.metricsManager,
		)(http.HandlerFunc(s.chatHandler.HandleChat)),
	).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("workout-chat")

	workoutsHandler := workoutlog.NewHandler(s.workoutService, s.workoutRepo)
	r.HandleFunc("/workouts", workoutsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/aggregate", workoutsHandler.HandleGetAggregate).Methods("GET", "OPTIONS").Name("workouts-aggregate")
	r.HandleFunc("/workouts/list/page/{page}/size/{size}", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.mobileAppSecret,
		s.loginChecker,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

// aiWorkoutSaver persists workout summaries completed through the chat to
// the workout log. The chat session id doubles as the dedup key, so a
// summary re-reported as complete on later turns cannot insert twice.
type aiWorkoutSaver struct {
	service *workoutlog.Service
}

func (s *aiWorkoutSaver) SaveWorkout(ctx context.Context, summary workoutchat.WorkoutSummary) error {
	record := workoutlog.Record{
		UserID:      summary.UserID,
		ClientRef:   summary.SessionID,
		Calories:    summary.Calories,
		TotalVolume: summary.Volume,
		Notes:       summary.Notes,
		Source:      workoutlog.SourceAILogger,
		Version:     workoutlog.SchemaVersion,
	}
	for _, exercise := range summary.Exercises {
		record.Exercises = append(record.Exercises, workoutlog.Exercise{
			Name:   exercise.Name,
			Metric: exercise.Metric,
			Volume: exercise.Volume,
		})
	}

	if _, err := s.service.LogWorkout(ctx, record); err != nil {
		return fmt.Errorf("log chat workout: %w", err)
	}
	return nil
}
