package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/lzamboni86/godrive-mobile-api/api/swagger"
	"github.com/lzamboni86/godrive-mobile-api/internal/handler"
	"github.com/lzamboni86/godrive-mobile-api/internal/middleware"
	"github.com/lzamboni86/godrive-mobile-api/internal/service"
	"github.com/lzamboni86/godrive-mobile-api/internal/upstream"
	"github.com/lzamboni86/godrive-mobile-api/pkg/config"
	"github.com/lzamboni86/godrive-mobile-api/pkg/export"
	"github.com/lzamboni86/godrive-mobile-api/pkg/logger"
	corsmiddleware "github.com/lzamboni86/godrive-mobile-api/pkg/middleware/cors"
	reqidmiddleware "github.com/lzamboni86/godrive-mobile-api/pkg/middleware/requestid"
)

// @title GoDrive Mobile Gateway
// @version 0.1.0
// @description Mobile gateway for the GoDrive driving-lesson marketplace
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validate := validator.New()
	metrics := service.NewMetricsService()
	client := upstream.NewClient(cfg.Upstream, logr)
	client.SetObserver(metrics)

	store := service.NewDraftStore(cfg.Booking.DraftTTL, metrics, logr)
	store.StartJanitor(ctx, cfg.Booking.CleanupInterval)
	defer store.Close()

	watcher := service.NewPixWatcher(cfg.PixWatch, client, store, metrics, logr)
	if cfg.PixWatch.Enabled {
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	authSvc := service.NewAuthService(cfg.JWT.Secret, logr)
	wizardSvc := service.NewWizardService(store, client, validate, logr)
	bookingSvc := service.NewBookingService(store, client, export.NewReceiptExporter(), metrics, service.CheckoutCopy{
		Title:    cfg.Checkout.SummaryTitle,
		Subtitle: cfg.Checkout.SummarySubtitle,
	}, logr)
	checkoutSvc := service.NewCheckoutService(store, client, watcher, validate, logr)
	lessonSvc := service.NewLessonService(client, validate, logr)
	walletSvc := service.NewWalletService(client, logr)
	instructorSvc := service.NewInstructorService(client, logr)

	wizardHandler := handler.NewWizardHandler(wizardSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	checkoutHandler := handler.NewCheckoutHandler(checkoutSvc)
	lessonHandler := handler.NewLessonHandler(lessonSvc)
	walletHandler := handler.NewWalletHandler(walletSvc)
	instructorHandler := handler.NewInstructorHandler(instructorSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		probe, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := client.Health(probe); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/snapshot", metricsHandler.Snapshot)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	{
		drafts := api.Group("/bookings/drafts")
		drafts.POST("", wizardHandler.Start)
		drafts.GET("/:id/dates", wizardHandler.Dates)
		drafts.POST("/:id/dates/toggle", wizardHandler.ToggleDate)
		drafts.POST("/:id/month", wizardHandler.ShiftMonth)
		drafts.POST("/:id/dates/proceed", wizardHandler.ProceedDates)
		drafts.GET("/:id/times", wizardHandler.Times)
		drafts.POST("/:id/times/toggle", wizardHandler.ToggleTime)
		drafts.POST("/:id/times/active", wizardHandler.SetActiveDate)
		drafts.POST("/:id/times/proceed", wizardHandler.ProceedTimes)
		drafts.GET("/:id/review", bookingHandler.Review)
		drafts.POST("/:id/submit", bookingHandler.Submit)
		drafts.GET("/:id/summary.pdf", bookingHandler.SummaryPDF)
		drafts.DELETE("/:id", wizardHandler.Discard)

		checkout := api.Group("/checkout")
		checkout.POST("/drafts/:draftId/messages", checkoutHandler.Relay)
		checkout.POST("/card/confirm", checkoutHandler.ConfirmCard)
		checkout.GET("/payments/:paymentId/status", checkoutHandler.PaymentStatus)
		checkout.POST("/pix/email", checkoutHandler.SendPixEmail)

		lessons := api.Group("/lessons")
		lessons.GET("/past", lessonHandler.Past)
		lessons.GET("/upcoming", lessonHandler.Upcoming)
		lessons.POST("/:id/adjust", lessonHandler.Adjust)

		wallet := api.Group("/wallet")
		wallet.GET("/balance", walletHandler.Balance)
		wallet.GET("/transactions", walletHandler.Transactions)

		instructors := api.Group("/instructors")
		instructors.GET("", instructorHandler.List)
		instructors.GET("/:id", instructorHandler.Get)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Sugar().Warnw("shutdown incomplete", "error", err)
		}
	}()

	logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
