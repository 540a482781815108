package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"school_planner_backend/internal/config"
	"school_planner_backend/internal/repository"
	"school_planner_backend/internal/repository/memory"
	"school_planner_backend/internal/service"
	"school_planner_backend/pkg/configwatcher"
	"school_planner_backend/pkg/database"
	"school_planner_backend/pkg/logger"
	"school_planner_backend/pkg/security"
	"school_planner_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	ConfigDir string
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	Services  *Services

	limiter         *security.Limiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

// Stores is the record store backend the services run against.
type Stores struct {
	Homework  service.HomeworkStore
	Timetable service.TimetableStore
	Users     service.UserStore
	Profiles  service.ProfileStore
	Quiz      service.QuizProgressStore
}

func MemoryStores() Stores {
	s := memory.NewStore()
	return Stores{
		Homework:  memory.NewHomeworkRepository(s),
		Timetable: memory.NewTimetableRepository(s),
		Users:     memory.NewUserRepository(s),
		Profiles:  memory.NewProfileRepository(s),
		Quiz:      memory.NewQuizProgressRepository(s),
	}
}

// SQLStores wires the gorm repositories. cache may be nil.
func SQLStores(db *gorm.DB, cache *repository.ListCache) Stores {
	return Stores{
		Homework:  repository.NewHomeworkRepository(db, cache),
		Timetable: repository.NewTimetableRepository(db, cache),
		Users:     repository.NewUserRepository(db),
		Profiles:  repository.NewProfileRepository(db),
		Quiz:      repository.NewQuizProgressRepository(db),
	}
}

type Services struct {
	Auth      *service.AuthService
	Role      *service.RoleService
	Homework  *service.HomeworkService
	Timetable *service.TimetableService
	Profile   *service.ProfileService
	Quiz      *service.QuizService
	Storage   *service.StorageService
	Scene     *service.SceneService
}

func NewServices(cfg *config.Config, st Stores) *Services {
	storage := service.NewStorageService(cfg)
	return &Services{
		Auth:      service.NewAuthService(st.Users, cfg),
		Role:      service.NewRoleService(st.Users),
		Homework:  service.NewHomeworkService(st.Homework),
		Timetable: service.NewTimetableService(st.Timetable),
		Profile:   service.NewProfileService(st.Profiles),
		Quiz:      service.NewQuizService(st.Quiz),
		Storage:   storage,
		Scene:     service.NewSceneService(storage),
	}
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	logger.SetLevel(cfg)
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) openStores(cfg *config.Config) (Stores, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Log.Warn("Using in-memory record store, data is lost on exit")
		return MemoryStores(), nil
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		return Stores{}, err
	}
	a.DB = db

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// lists are still served straight from MySQL
		logger.Log.Warn("Redis unavailable, list cache disabled", zap.Error(err))
	}
	a.Redis = rdb

	return SQLStores(db, repository.NewListCache(rdb, cfg.Redis.TTL)), nil
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	app := &App{
		Config:    cfg,
		ConfigDir: "configs",
		limiter:   security.NewLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute),
	}

	stores, err := app.openStores(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	app.Services = NewServices(cfg, stores)
	app.Router = NewRouter(cfg, app.Services, app.DB, app.limiter)

	return app, nil
}

func (a *App) Close() {
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.limiter.Run(ctx.Done())

	if a.Config.Server.WatchConfig {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.ConfigDir, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Log.Info("Server exiting")
	return nil
}
