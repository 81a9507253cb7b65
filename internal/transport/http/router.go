package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-manager/internal/repository"
	"github.com/ErlanBelekov/task-manager/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-manager/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type RouterConfig struct {
	Logger      *slog.Logger
	UserHandler *handler.UserHandler
	TaskHandler *handler.TaskHandler
	Verifier    middleware.TokenVerifier
	Users       repository.UserRepository
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(sloggin.New(cfg.Logger))
	r.Use(middleware.Metrics())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	authMW := middleware.Auth(cfg.Verifier)

	api := r.Group("/api")
	api.POST("/register", cfg.UserHandler.Register)
	api.POST("/login", cfg.UserHandler.Login)
	api.GET("/user", authMW, cfg.UserHandler.Profile)

	tasks := api.Group("/task", authMW, middleware.EnsureUser(cfg.Users, cfg.Logger))
	tasks.POST("", cfg.TaskHandler.Create)
	tasks.GET("", cfg.TaskHandler.List)
	tasks.PATCH("", cfg.TaskHandler.Update)
	tasks.DELETE("", cfg.TaskHandler.Delete)

	return r
}
