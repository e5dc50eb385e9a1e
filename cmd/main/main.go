package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/torresnicolas0/clima-chatbot/src/chat"
	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/handlers"
	"github.com/torresnicolas0/clima-chatbot/src/middleware"
)

func init() {

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	} else {
		log.Println("✅ Loaded .env file")
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "clima",
		Short: "Chatbot del clima",
		Long:  "Responde preguntas en español sobre el clima actual de una o varias ciudades",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and, when configured, the Slack bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	askCmd := &cobra.Command{
		Use:   "ask [pregunta]",
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ask(cmd.Context(), strings.Join(args, " "))
		},
	}

	rootCmd.AddCommand(serveCmd, askCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadApp() (*config.Config, *app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("✓ Config loaded successfully")

	a, err := buildApp(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, a, nil
}

func ask(ctx context.Context, question string) error {
	_, a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.cache.Close()

	fmt.Println(a.pipeline.Process(ctx, question))
	return nil
}

func serve() error {
	cfg, a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.cache.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Weather.CacheBackend == "memory" {
		sweeper := cron.New()
		if _, err := sweeper.AddFunc(cfg.Weather.SweepSchedule, func() {
			if n := a.cache.Sweep(); n > 0 {
				log.Printf("Weather cache sweep removed %d stale entries", n)
			}
		}); err != nil {
			log.Printf("⚠️  Invalid weather.sweep_schedule %q, stale entries are never swept: %v", cfg.Weather.SweepSchedule, err)
		} else {
			sweeper.Start()
			defer sweeper.Stop()
			log.Printf("✓ Cache sweep scheduled (%s)", cfg.Weather.SweepSchedule)
		}
	}

	if cfg.Slack.Enabled() {
		bot := chat.NewSlackBot(&cfg.Slack, a.pipeline)
		go func() {
			if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("⚠️  Slack bot stopped: %v", err)
			}
		}()
	} else {
		log.Println("ℹ️  Slack tokens not set, Slack bot disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	queryHandler := handlers.NewQueryHandler(a.pipeline, a.cache)
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.APIKey)
	if !authMiddleware.Enabled() {
		log.Println("⚠️  API_KEY not set, query endpoints are public")
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", queryHandler.HealthCheck)

		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAPIKey())
		{
			protected.POST("/query", queryHandler.HandleQuery)
			protected.GET("/cache/stats", queryHandler.CacheStats)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Printf("🚀 Clima chatbot running on port %s", cfg.Server.Port)

	<-ctx.Done()

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	// Comma-separated list; local front-ends when unset.
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	var allowedOrigins []string

	if allowedOriginsEnv != "" {
		allowedOrigins = strings.Split(allowedOriginsEnv, ",")
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	} else {
		allowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:3001",
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Requests without Origin (curl, health checks) are not CORS requests.
		if origin == "" {
			c.Next()
			return
		}

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		if !allowed {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
