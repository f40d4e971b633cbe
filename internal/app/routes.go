package app

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// NewRouter builds the engine with middleware and every route.
func NewRouter(cfg config.Config, logger *slog.Logger, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		MaxAge:           12 * time.Hour,
	}))

	Setup(r, cfg, logger, deps)
	return r
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, logger *slog.Logger, deps Deps) {
	codec := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL.Duration())
	guard := auth.RequireAuth(codec, logger)

	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	registerPages(r, guard, logger)

	api := r.Group("/api")
	api.GET("/health", handlers.Health(deps.Pinger))
	api.GET("/version", handlers.Version(cfg.App.Version, cfg.App.Env))

	accounts := service.NewAccountService(deps.Users, codec, cfg.Auth.BcryptCost)
	authHandler := handlers.NewAuthHandler(accounts, codec.TTL(), cfg.SecureCookies(), logger)
	registerAuthRoutes(api, authHandler, guard)

	taskSvc := service.NewTaskService(deps.Tasks, deps.Cache, logger)
	taskHandler := handlers.NewTaskHandler(taskSvc, logger)
	registerTaskRoutes(api.Group("", guard), taskHandler)
}

func registerPages(r *gin.Engine, guard gin.HandlerFunc, logger *slog.Logger) {
	r.GET("/", page("home.html", logger))
	r.GET("/index.html", guard, page("index.html", logger))

	assets, err := fs.Sub(web.FS, "assets")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/assets", http.FS(assets))
}

// page serves an embedded HTML file. http.FileServer would redirect
// /index.html to /, so the bytes are written directly.
func page(name string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := web.FS.ReadFile(name)
		if err != nil {
			logger.Error("read embedded page", "page", name, "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler, guard gin.HandlerFunc) {
	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", guard, h.Me)
	api.POST("/auth/logout", h.Logout)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/tasks", h.List)
	api.GET("/tasks/stats", h.Stats)
	api.GET("/tasks/:id", h.GetByID)
	api.POST("/tasks", h.Create)
	api.PUT("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
}
