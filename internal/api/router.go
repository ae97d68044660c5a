package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/simplemsg/message-api/docs"
	"github.com/simplemsg/message-api/internal/api/handler"
	"github.com/simplemsg/message-api/internal/api/middleware"
	"github.com/simplemsg/message-api/internal/auth"
	"github.com/simplemsg/message-api/internal/core/ports"
	"github.com/simplemsg/message-api/internal/core/service"
	mongodb "github.com/simplemsg/message-api/internal/infrastructure/db/mongo"
	redisdb "github.com/simplemsg/message-api/internal/infrastructure/db/redis"
	"github.com/simplemsg/message-api/internal/infrastructure/http/handlers"
)

// publicRules lists the routes reachable without authentication, evaluated
// top-down, first match wins. Everything else requires a bearer token.
var publicRules = []middleware.Rule{
	{Method: http.MethodPost, Pattern: "/api/v1/auth/**", Public: true},
	{Pattern: "/api-docs/**", Public: true},
	{Pattern: "/health/**", Public: true},
	{Pattern: "/metrics", Public: true},
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokens *auth.TokenProvider, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("message"))
	e.Use(middleware.Authenticate(tokens))
	e.Use(middleware.Authorize(publicRules))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	var limiter ports.LoginLimiter
	if rdb != nil {
		limiter = redisdb.NewLoginLimiter(rdb)
	}

	authService := service.NewAuthService(userRepo, tokens, limiter, log)
	messageService := service.NewMessageService(userRepo, messageRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	messageHandler := handler.NewMessageHandler(messageService)
	userHandler := handler.NewUserHandler(authService)

	// --- Auth routes (public) ---
	e.POST("/api/v1/auth/login", authHandler.Login)
	e.POST("/api/v1/auth", authHandler.CreateAccount)

	// --- Protected routes ---
	e.POST("/api/v1/message", messageHandler.CreateMessage)
	e.GET("/api/v1/messages", messageHandler.ListMessages)
	e.POST("/api/v1/messages/read-all", messageHandler.ReadAllMessages)
	e.GET("/api/v1/me", userHandler.CurrentUser)

	// --- Observability & docs (public) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api-docs/*", echoswagger.WrapHandler)

	// --- Health probes (public) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
