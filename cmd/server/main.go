package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minimart-pos/internal/config"
	"minimart-pos/internal/handlers"
	"minimart-pos/internal/middleware"
	"minimart-pos/internal/repository"
	"minimart-pos/internal/scheduler"
	"minimart-pos/internal/service"
	"minimart-pos/internal/storage"
	"minimart-pos/internal/voice"
	"minimart-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	// --- Storage & repositories ---
	store, err := storage.Open(cfg.Store.Path, log.Named("store"))
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}

	products := repository.NewProductRepository(store, log.Named("repo.products"))
	sales := repository.NewSaleLedger(store, log.Named("repo.sales"))
	settings := repository.NewSettingsRepository(store, log.Named("repo.settings"))

	// First run on a fresh PC: put something on the shelf.
	if err := products.Seed(context.Background()); err != nil {
		log.Fatal("failed to seed catalog", zap.Error(err))
	}

	// --- Services ---
	announcer := voice.New(cfg.Voice.WebhookURL, log.Named("voice"))
	cart := service.NewCart()
	checkout := service.NewCheckout(cart, products, sales, settings, announcer, log.Named("checkout"))
	checkout.SetPromptWindow(cfg.Voice.BillPromptWindow)

	// --- Evening summary scheduler ---
	sched, err := scheduler.New(cfg.Reporting, sales, settings, announcer, log.Named("scheduler"))
	if err != nil {
		log.Fatal("failed to build scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// --- HTTP surface ---
	productHandler := handlers.NewProductHandler(products, log.Named("handlers.products"))
	cartHandler := handlers.NewCartHandler(cart, products, log.Named("handlers.cart"))
	checkoutHandler := handlers.NewCheckoutHandler(checkout, log.Named("handlers.checkout"))
	reportHandler := handlers.NewReportHandler(sales, products, settings, announcer, log.Named("handlers.reports"))
	settingsHandler := handlers.NewSettingsHandler(settings, log.Named("handlers.settings"))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log.Named("http")))

	// The UI runs as a local web app; CORS lets its dev server talk to us.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })

	api := r.Group("/api")
	{
		api.GET("/products", productHandler.GetProducts)
		api.POST("/products", productHandler.AddProduct)
		api.PUT("/products/:id", productHandler.UpdateProduct)
		api.DELETE("/products/:id", productHandler.DeleteProduct)

		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart/items", cartHandler.AddItem)
		api.PUT("/cart/items/:id", cartHandler.UpdateItem)
		api.DELETE("/cart/items/:id", cartHandler.RemoveItem)
		api.DELETE("/cart", cartHandler.ClearCart)

		api.POST("/checkout", checkoutHandler.Begin)
		api.POST("/checkout/response", checkoutHandler.Respond)

		api.GET("/sales", reportHandler.GetSales)
		api.GET("/sales/today", reportHandler.GetTodaySales)
		api.GET("/reports/daily", reportHandler.GetDailySummary)
		api.GET("/reports/analytics", reportHandler.GetAnalytics)
		api.POST("/reports/daily/announce", reportHandler.AnnounceDailySummary)

		api.GET("/settings", settingsHandler.GetSettings)
		api.PUT("/settings", settingsHandler.UpdateSettings)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
