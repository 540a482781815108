package app

import (
	"school_planner_backend/docs"
	"school_planner_backend/internal/config"
	"school_planner_backend/internal/controller"
	"school_planner_backend/internal/middleware"
	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"
	"school_planner_backend/pkg/logger"
	"school_planner_backend/pkg/monitoring"
	"school_planner_backend/pkg/security"
	"school_planner_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type controllers struct {
	auth      *controller.AuthController
	homework  *controller.HomeworkController
	timetable *controller.TimetableController
	profile   *controller.ProfileController
	quiz      *controller.QuizController
	role      *controller.RoleController
	scene     *controller.SceneController
	health    *controller.HealthController
}

func newControllers(s *Services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.Auth),
		homework:  controller.NewHomeworkController(s.Homework),
		timetable: controller.NewTimetableController(s.Timetable),
		profile:   controller.NewProfileController(s.Profile, s.Role),
		quiz:      controller.NewQuizController(s.Quiz),
		role:      controller.NewRoleController(s.Role),
		scene:     controller.NewSceneController(s.Scene),
		health:    controller.NewHealthController(db),
	}
}

// NewRouter builds the HTTP surface. db and limiter may be nil.
func NewRouter(cfg *config.Config, s *Services, db *gorm.DB, limiter *security.Limiter) *gin.Engine {
	if err := util.RegisterValidators(); err != nil {
		logger.Log.Error("Failed to register validators", zap.Error(err))
	}
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == "debug" {
		router.Use(gin.Logger())
	}

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if limiter != nil {
		router.Use(limiter.Middleware())
	}
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
	router.Use(monitoring.MetricsMiddleware())

	c := newControllers(s, db)

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	registerPublicRoutes(router, c, cfg)
	registerAuthorizedRoutes(router, c, s, cfg)

	return router
}

func registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/scenes", c.scene.ListScenes)
		public.GET("/role", middleware.TryAuthMiddleware(cfg), c.role.GetCallerRole)
	}
}

func registerAuthorizedRoutes(router *gin.Engine, c *controllers, s *Services, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/homework", c.homework.List)
		authGroup.POST("/homework", c.homework.Create)
		authGroup.GET("/homework/:id", c.homework.Get)
		authGroup.PUT("/homework/:id", c.homework.Update)
		authGroup.DELETE("/homework/:id", c.homework.Delete)

		authGroup.GET("/timetable", c.timetable.List)
		authGroup.POST("/timetable", c.timetable.Create)
		authGroup.GET("/timetable/:id", c.timetable.Get)
		authGroup.PUT("/timetable/:id", c.timetable.Update)
		authGroup.DELETE("/timetable/:id", c.timetable.Delete)

		authGroup.GET("/profile", c.profile.GetCallerProfile)
		authGroup.PUT("/profile", c.profile.SaveCallerProfile)
		authGroup.GET("/users/:principal/profile", c.profile.GetUserProfile)

		authGroup.GET("/quiz/progress", c.quiz.GetProgress)
		authGroup.PUT("/quiz/progress", c.quiz.SaveProgress)

		authGroup.GET("/role/admin", c.role.IsCallerAdmin)

		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(s.Role, model.Admin))
		{
			admin.PUT("/roles/:principal", c.role.AssignRole)
		}
	}
}
