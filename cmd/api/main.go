package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"velora-backend/config"
	"velora-backend/internal/delivery/http/middleware"
	v1 "velora-backend/internal/delivery/http/v1"
	"velora-backend/internal/infrastructure/cache"
	"velora-backend/internal/repository/postgres"
	"velora-backend/internal/usecase"
	"velora-backend/pkg/logger"
	"velora-backend/pkg/storage"
	"velora-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Connected to PostgreSQL")

	if cfg.MigrateOnBoot {
		if err := postgres.Migrate(pgxPool); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Migrations up to date")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(pgxPool)
	productRepo := postgres.NewProductRepository(pgxPool)
	reviewRepo := postgres.NewReviewRepository(pgxPool)
	cartRepo := postgres.NewCartRepository(pgxPool)
	orderRepo := postgres.NewOrderRepository(pgxPool)
	returnRepo := postgres.NewReturnRepository(pgxPool)
	slideRepo := postgres.NewHeroSlideRepository(pgxPool)
	contactRepo := postgres.NewContactRepository(pgxPool)
	txManager := postgres.NewTransactionManager(pgxPool)

	// In-memory cache: default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	mux := http.NewServeMux()

	// --- Modules ---

	authUC := usecase.NewAuthUsecase(userRepo, txManager, cfg.TokenExpiry)
	authHandler := v1.NewAuthHandler(authUC)

	r2Storage, err := storage.NewR2Storage(
		context.Background(),
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2UploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)

	catalogUC := usecase.NewCatalogUsecase(productRepo, memCache, cfg.CacheFeaturedTTL)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo, txManager)
	catalogHandler := v1.NewCatalogHandler(catalogUC, reviewUC)
	adminCatalogHandler := v1.NewAdminCatalogHandler(catalogUC)

	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, cfg.MaxCartQuantity)
	cartHandler := v1.NewCartHandler(cartUC)

	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, cartRepo, userRepo, txManager, memCache, cfg.CacheAnalyticsTTL)
	orderHandler := v1.NewOrderHandler(orderUC)
	adminOrderHandler := v1.NewAdminOrderHandler(orderUC)

	returnUC := usecase.NewReturnUsecase(returnRepo, orderRepo, productRepo, txManager)
	returnHandler := v1.NewReturnHandler(returnUC)

	contentUC := usecase.NewContentUsecase(slideRepo, contactRepo, txManager, memCache, cfg.CacheSlidesTTL)
	contentHandler := v1.NewContentHandler(contentUC)

	// --- Routes ---

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(http.HandlerFunc(h))
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(http.HandlerFunc(h)))
	}

	// Auth & profile
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/signin", authHandler.Signin)
	mux.Handle("GET /api/v1/auth/me", protected(authHandler.Me))
	mux.Handle("PUT /api/v1/users/profile", protected(authHandler.UpdateProfile))
	mux.Handle("DELETE /api/v1/users/profile", protected(authHandler.DeleteProfile))

	// Addresses
	mux.Handle("GET /api/v1/users/addresses", protected(authHandler.GetAddresses))
	mux.Handle("POST /api/v1/users/addresses", protected(authHandler.AddAddress))
	mux.Handle("PUT /api/v1/users/addresses/{id}", protected(authHandler.UpdateAddress))
	mux.Handle("DELETE /api/v1/users/addresses/{id}", protected(authHandler.DeleteAddress))

	// Admin users
	mux.Handle("GET /api/v1/admin/users", admin(authHandler.ListUsers))
	mux.Handle("GET /api/v1/admin/users/{id}", admin(authHandler.GetUser))
	mux.Handle("PUT /api/v1/admin/users/{id}", admin(authHandler.UpdateUser))
	mux.Handle("DELETE /api/v1/admin/users/{id}", admin(authHandler.DeleteUser))

	// Catalog
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/featured", catalogHandler.GetFeatured)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)
	mux.Handle("POST /api/v1/admin/products", admin(adminCatalogHandler.CreateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", admin(adminCatalogHandler.UpdateProduct))
	mux.Handle("DELETE /api/v1/admin/products/{id}", admin(adminCatalogHandler.DeleteProduct))

	// Reviews
	mux.HandleFunc("GET /api/v1/products/{id}/reviews", catalogHandler.GetReviews)
	mux.Handle("POST /api/v1/products/{id}/reviews", protected(catalogHandler.AddReview))
	mux.Handle("PUT /api/v1/reviews/{id}", protected(catalogHandler.UpdateReview))
	mux.Handle("DELETE /api/v1/reviews/{id}", protected(catalogHandler.DeleteReview))

	// Cart
	mux.Handle("GET /api/v1/cart", protected(cartHandler.GetCart))
	mux.Handle("POST /api/v1/cart", protected(cartHandler.AddToCart))
	mux.Handle("DELETE /api/v1/cart/{productId}", protected(cartHandler.RemoveFromCart))
	mux.Handle("POST /api/v1/cart/clear", protected(cartHandler.ClearCart))

	// Orders
	mux.Handle("POST /api/v1/orders", protected(orderHandler.CreateOrder))
	mux.Handle("GET /api/v1/orders/myorders", protected(orderHandler.GetMyOrders))
	mux.Handle("GET /api/v1/orders/{id}", protected(orderHandler.GetOrder))
	mux.Handle("PUT /api/v1/orders/{id}/cancel", protected(orderHandler.CancelOrder))
	mux.Handle("GET /api/v1/admin/orders", admin(adminOrderHandler.ListOrders))
	mux.Handle("GET /api/v1/admin/orders/analytics", admin(adminOrderHandler.GetAnalytics))
	mux.Handle("PUT /api/v1/admin/orders/{id}/status", admin(adminOrderHandler.UpdateStatus))
	mux.Handle("DELETE /api/v1/admin/orders/{id}", admin(adminOrderHandler.DeleteOrder))

	// Returns
	mux.Handle("POST /api/v1/returns", protected(returnHandler.CreateReturn))
	mux.Handle("GET /api/v1/returns/myreturns", protected(returnHandler.GetMyReturns))
	mux.Handle("GET /api/v1/returns/{id}", protected(returnHandler.GetReturn))
	mux.Handle("GET /api/v1/admin/returns", admin(returnHandler.ListReturns))
	mux.Handle("PUT /api/v1/admin/returns/{id}/status", admin(returnHandler.UpdateStatus))

	// Contact
	mux.HandleFunc("POST /api/v1/contact", contentHandler.SubmitContact)
	mux.Handle("GET /api/v1/admin/contact", admin(contentHandler.ListContacts))
	mux.Handle("GET /api/v1/admin/contact/{id}", admin(contentHandler.GetContact))
	mux.Handle("DELETE /api/v1/admin/contact/{id}", admin(contentHandler.DeleteContact))

	// Hero slides
	mux.HandleFunc("GET /api/v1/hero-slides", contentHandler.GetActiveSlides)
	mux.Handle("GET /api/v1/admin/hero-slides", admin(contentHandler.GetAllSlides))
	mux.Handle("POST /api/v1/admin/hero-slides", admin(contentHandler.CreateSlide))
	mux.Handle("PUT /api/v1/admin/hero-slides/{id}", admin(contentHandler.UpdateSlide))
	mux.Handle("DELETE /api/v1/admin/hero-slides/{id}", admin(contentHandler.DeleteSlide))
	mux.Handle("PATCH /api/v1/admin/hero-slides/{id}/toggle", admin(contentHandler.ToggleSlide))
	mux.Handle("POST /api/v1/admin/hero-slides/reorder", admin(contentHandler.ReorderSlides))

	// Uploads
	mux.Handle("POST /api/v1/upload", protected(uploadHandler.UploadFile))
	mux.Handle("DELETE /api/v1/upload", admin(uploadHandler.DeleteUpload))

	// Health
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Root health check for load balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,
		100,
		time.Minute,
		3*time.Minute,
	)

	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()
	log.Info().Msg("Server exited properly")
}
