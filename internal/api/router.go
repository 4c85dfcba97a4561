package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/y-sudharshan/SheetWise/internal/api/handler"
	"github.com/y-sudharshan/SheetWise/internal/api/middleware"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"

	_ "github.com/y-sudharshan/SheetWise/docs"
)

// Deps are the services and clients the router wires into handlers. Redis
// may be nil when the insight cache is disabled.
type Deps struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Files  ports.FileService
	Charts ports.ChartService

	Mongo *mongo.Database
	Redis *redis.Client

	Log            zerolog.Logger
	Debug          bool
	AllowedOrigins []string
	MaxUploadBytes int64
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Debug)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.AllowedOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("sheetwise"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users, d.Auth)
	fileHandler := handler.NewFileHandler(d.Files)
	chartHandler := handler.NewChartHandler(d.Charts)
	healthHandler := handler.NewHealthHandler(d.Mongo, d.Redis)

	authMiddleware := middleware.Auth(d.Auth)
	adminOnly := middleware.AdminOnly()

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to SheetWise API"})
	})
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, authMiddleware)
	auth.POST("/register/admin", authHandler.RegisterAdmin, authMiddleware, adminOnly)

	// --- User routes ---
	users := api.Group("/users", authMiddleware)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- File routes ---
	files := api.Group("/files", authMiddleware)
	files.POST("/upload", fileHandler.Upload, middleware.SpreadsheetUpload(d.MaxUploadBytes))
	files.GET("", fileHandler.List)
	files.GET("/data/:id", fileHandler.Data)
	files.GET("/:id", fileHandler.Get)
	files.GET("/:id/data", fileHandler.FileData)
	files.DELETE("/:id", fileHandler.Delete)

	// --- Chart routes ---
	charts := api.Group("/charts", authMiddleware)
	charts.POST("/generate", chartHandler.Generate)
	charts.POST("/download", chartHandler.Download)
	charts.POST("/ai-insights", chartHandler.Insights)

	return e
}
