package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Skufu/GoPredict/internal/app"
	"github.com/Skufu/GoPredict/internal/config"
	"github.com/Skufu/GoPredict/internal/logging"
	"github.com/Skufu/GoPredict/internal/predict"
	"github.com/Skufu/GoPredict/internal/render"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"

	unavailableMessage  = "The prediction service is unavailable right now. Please try again."
	formTooLargeMessage = "The submitted form is too large."
	formInvalidMessage  = "The submitted form could not be read."
)

type predictRequest struct {
	Symptoms []string `json:"symptoms"`
}

type predictResponse struct {
	RequestID string `json:"requestId"`
	predict.Result
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("config error: %v", err)
		return 1
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("release resources", "error", err)
		}
	}()

	router := setupRouter(application.Service, application.Checks(), cfg.Server, logger)
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	logger.Info("server listening", "port", cfg.Server.Port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	if err := waitForShutdown(server, stop, serverErr, logger); err != nil {
		logger.Error("server error", "error", err)
		return 1
	}
	return 0
}

func setupRouter(svc *predict.Service, checks map[string]app.HealthChecker, cfg config.ServerConfig, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(logger),
		gin.Recovery(),
		limitBodySize(cfg.MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", requestIDHeader},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		body := gin.H{"status": "ok"}
		status := http.StatusOK
		for name, check := range checks {
			if err := check.Ping(ctx); err != nil {
				body[name] = "unhealthy: " + err.Error()
				body["status"] = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			body[name] = "ok"
		}
		c.JSON(status, body)
	})

	router.GET("/api/symptoms", func(c *gin.Context) {
		names := svc.Vocabulary().Names()
		c.JSON(http.StatusOK, gin.H{"symptoms": names, "count": len(names)})
	})

	router.POST("/api/predict", func(c *gin.Context) {
		var payload predictRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		result, err := svc.Predict(c.Request.Context(), payload.Symptoms)
		switch {
		case errors.Is(err, predict.ErrNoSymptoms):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation_failed",
				"message": predict.NoSymptomsMessage,
			})
			return
		case err != nil:
			logger.Error("prediction failed", "error", err, "request_id", c.GetString(requestIDKey))
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "prediction_unavailable",
				"message": unavailableMessage,
			})
			return
		}

		c.JSON(http.StatusOK, predictResponse{RequestID: c.GetString(requestIDKey), Result: result})
	})

	router.GET("/", func(c *gin.Context) {
		renderPage(c, http.StatusOK, render.Page{Symptoms: svc.Vocabulary().Names()}, logger)
	})

	router.POST("/predict", func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			status, msg := formError(err)
			renderPage(c, status, render.Page{Symptoms: svc.Vocabulary().Names(), Error: msg}, logger)
			return
		}

		selected := c.PostFormArray("symptoms")
		page := render.Page{
			Symptoms: svc.Vocabulary().Names(),
			Selected: make(map[string]bool, len(selected)),
		}
		for _, s := range selected {
			page.Selected[s] = true
		}

		status := http.StatusOK
		result, err := svc.Predict(c.Request.Context(), selected)
		switch {
		case errors.Is(err, predict.ErrNoSymptoms):
			page.Warning = predict.NoSymptomsMessage
		case err != nil:
			logger.Error("prediction failed", "error", err, "request_id", c.GetString(requestIDKey))
			page.Error = unavailableMessage
			status = http.StatusBadGateway
		default:
			page.Result = &result
		}
		renderPage(c, status, page, logger)
	})

	return router
}

func formError(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, formTooLargeMessage
	}
	return http.StatusBadRequest, formInvalidMessage
}

func renderPage(c *gin.Context, status int, page render.Page, logger *slog.Logger) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := render.HTML(c.Writer, page); err != nil {
		logger.Error("render page", "error", err)
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// waitForShutdown blocks until a signal arrives or the listener fails. A
// listener error is returned so the caller can still run its cleanup.
func waitForShutdown(server *http.Server, stop <-chan os.Signal, serverErr <-chan error, logger *slog.Logger) error {
	select {
	case err := <-serverErr:
		return err
	case <-stop:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	return nil
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
