package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/config"
	"github.com/foreman-dev/foreman/internal/handlers"
	"github.com/foreman-dev/foreman/internal/middleware"
	"github.com/foreman-dev/foreman/internal/types"
)

type Options struct {
	DB             *gorm.DB
	Issuer         *auth.Issuer
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger

	if logger == nil {
		logger = slog.Default()
	}

	origins := opts.AllowedOrigins

	if len(origins) == 0 {
		origins = config.DefaultOrigins
	}

	r := gin.New()

	r.Use(middleware.RequestID(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", types.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", types.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(opts.DB, opts.Issuer)
	authenticated := middleware.AuthMiddleware(opts.Issuer)
	adminOnly := middleware.RequireRole(types.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
		}

		projects := api.Group("/projects", authenticated)
		{
			projects.GET("", h.ListProjects)
			projects.POST("", h.CreateProject)
			projects.GET("/:id", h.GetProject)
			projects.PUT("/:id", h.UpdateProject)
			projects.DELETE("/:id", h.DeleteProject)
			projects.GET("/:id/stats", h.GetProjectStats)
		}

		tasks := api.Group("/tasks", authenticated)
		{
			tasks.GET("", h.ListTasks)
			tasks.POST("", h.CreateTask)
			tasks.GET("/:id", h.GetTask)
			tasks.PUT("/:id", h.UpdateTask)
			tasks.DELETE("/:id", h.DeleteTask)
		}

		resources := api.Group("/resources", authenticated)
		{
			resources.GET("", h.ListResources)
			resources.POST("", h.CreateResource)
			resources.GET("/:id", h.GetResource)
			resources.PUT("/:id", h.UpdateResource)
			resources.DELETE("/:id", h.DeleteResource)
		}

		employees := api.Group("/employees", authenticated)
		{
			employees.GET("", adminOnly, h.ListEmployees)
			employees.POST("", adminOnly, h.CreateEmployee)
			employees.GET("/:id", middleware.SelfOrAdmin("id"), h.GetEmployee)
			employees.PUT("/:id", adminOnly, h.UpdateEmployee)
			employees.DELETE("/:id", adminOnly, h.DeleteEmployee)
			employees.GET("/:id/tasks", h.GetEmployeeTasks)
		}

		users := api.Group("/users", authenticated)
		{
			users.GET("", h.ListUsers)
			users.GET("/profile", h.GetProfile)
			users.PUT("/profile", h.UpdateProfile)
			users.PUT("/change-password", h.ChangePassword)
		}
	}

	return r
}
