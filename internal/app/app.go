package app

import (
	"assessment_backend/internal/config"
	"assessment_backend/internal/controller"
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/service"
	"assessment_backend/pkg/database"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"assessment_backend/pkg/security"
	"assessment_backend/pkg/tracing"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	question           *repository.QuestionRepository
	answer             *repository.AnswerRepository
	employeeAssessment *repository.EmployeeAssessmentRepository
	matrix             *repository.AssessmentMatrixRepository
	locker             *repository.RedisSubmissionLocker
}

type services struct {
	score      *service.ScoreService
	lifecycle  *service.LifecycleService
	answer     *service.AnswerService
	navigation *service.NavigationService
	question   *service.QuestionService
}

type controllers struct {
	assessment *controller.AssessmentController
	score      *controller.ScoreController
	question   *controller.QuestionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig hands a freshly loaded configuration to every registered callback.
func (a *App) ReloadConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	repos := &repositories{
		question:           repository.NewQuestionRepository(db),
		answer:             repository.NewAnswerRepository(db),
		employeeAssessment: repository.NewEmployeeAssessmentRepository(db),
		matrix:             repository.NewAssessmentMatrixRepository(db),
	}
	if rdb != nil {
		ttl := time.Duration(cfg.Assessment.SubmissionLockTTLSeconds) * time.Second
		repos.locker = repository.NewRedisSubmissionLocker(rdb, ttl)
	}
	return repos
}

func (a *App) initServices(repos *repositories) *services {
	s := &services{}
	s.score = service.NewScoreService(repos.question, repos.answer, repos.employeeAssessment, repos.matrix)
	s.lifecycle = service.NewLifecycleService(repos.employeeAssessment, s.score)
	s.answer = service.NewAnswerService(repos.question, repos.answer, repos.employeeAssessment, s.lifecycle)
	if repos.locker != nil {
		s.answer.Locker = repos.locker
	}
	s.navigation = service.NewNavigationService(repos.question, repos.answer, repos.employeeAssessment, repos.matrix, s.lifecycle, s.answer)
	s.question = service.NewQuestionService(repos.question, repos.matrix)
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		assessment: controller.NewAssessmentController(s.answer, s.navigation),
		score:      controller.NewScoreController(s.score),
		question:   controller.NewQuestionController(s.question),
		health:     controller.NewHealthController(db, rdb),
	}
}

// applyAssessmentConfig pushes the engine knobs into the running services.
func (s *services) applyAssessmentConfig(cfg *config.Config) {
	ac := cfg.Assessment
	s.answer.SetFutureTolerance(time.Duration(ac.FutureToleranceMinutes) * time.Minute)
	s.answer.SetOpenAnswerMaxLength(ac.OpenAnswerMaxLength)
	s.navigation.SetDefaultMode(model.NavigationMode(ac.DefaultNavigationMode))
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	debug := cfg.Server.Mode == gin.DebugMode
	db, err := database.InitDB(&cfg.Database, debug, cfg.ForceMigrate || debug)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		if rdb, err = database.InitRedis(&cfg.Redis); err != nil {
			return nil, err
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos)
	services.applyAssessmentConfig(cfg)
	app.services = services
	app.RegisterConfigCallback(services.applyAssessmentConfig)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("assessment-engine", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
	return nil
}

// Close releases the tracer, redis and database handles.
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = logger.Log.Sync()
}
