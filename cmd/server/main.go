package main

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"taskflow/internal/config"
	"taskflow/internal/constants"
	"taskflow/internal/database"
	"taskflow/internal/handlers"
	"taskflow/internal/logging"
	"taskflow/internal/middleware"
	"taskflow/internal/repository"
	"taskflow/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up logging
	logging.Init(cfg.LogFile)
	log := logging.Logger

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.LoadHTMLGlob("web/templates/*.html")

	// Session store: Redis when configured, signed cookies otherwise
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		var err error
		store, err = redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			log.Fatalf("Failed to create Redis store: %v", err)
		}
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	// "Remember me" sessions: 7 days, cookie-scoped to the whole site
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	// Initialize handlers and routes
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	handlers.RegisterRoutes(r, authHandler, taskHandler)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskFlow is running",
		})
	})

	// Start server
	log.Infof("Server starting on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
