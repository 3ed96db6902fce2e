package main

import (
	"context"
	"os"
	"time"

	"fwc_backend/internal/artifact"
	"fwc_backend/internal/cache"
	"fwc_backend/internal/config"
	"fwc_backend/internal/database"
	"fwc_backend/internal/handlers"
	"fwc_backend/internal/migrations"
	"fwc_backend/internal/pdf"
	"fwc_backend/internal/repository"
	"fwc_backend/internal/services"
	"fwc_backend/pkg/mailer"
	"fwc_backend/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := migrations.Run(db, cfg.AdminUsername, cfg.AdminPassword, log); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// The category cache is advisory; run without it if redis is down.
	cacheClient, err := cache.Initialize(cfg.RedisURL, time.Duration(cfg.CatalogCacheTTL)*time.Second)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, category caching disabled")
		cacheClient = nil
	} else {
		defer cacheClient.Close()
	}

	store, err := artifact.NewStore(cfg.PDFDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create artifact directory")
	}

	var emailSender services.EmailSender
	if cfg.SMTPUsername != "" && cfg.SMTPPassword != "" {
		emailSender = mailer.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		log.Warn().Msg("SMTP credentials missing, email notifications disabled")
	}

	var waSender services.WhatsAppSender
	if cfg.WhatsAppToken != "" && cfg.WhatsAppPhoneID != "" {
		waSender = whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppToken, cfg.WhatsAppPhoneID, cfg.WhatsAppTemplate)
	} else {
		log.Warn().Msg("WhatsApp credentials missing, WhatsApp notifications disabled")
	}

	// Repositories
	quotationRepo := repository.NewQuotationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	itemRepo := repository.NewLineItemRepository(db)
	transportRepo := repository.NewTransportRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	userRepo := repository.NewUserRepository(db)
	txManager := repository.NewTxManager(db)

	// Services
	catalogService := services.NewCatalogService(catalogRepo, cacheClient, log)
	partyService := services.NewPartyService(customerRepo)
	orderBuilder := services.NewOrderBuilder(catalogService, partyService)
	notifyService := services.NewNotifyService(
		outboxRepo, quotationRepo, bookingRepo, transportRepo,
		emailSender, waSender, store,
		cfg.NotifyRetries, time.Duration(cfg.NotifyBackoff)*time.Second, log,
	)
	orderService := services.NewOrderService(
		txManager, quotationRepo, bookingRepo, itemRepo, transportRepo,
		orderBuilder, store, pdf.Render, notifyService, cfg.OwnerEmail, log,
	)
	userService := services.NewUserService(userRepo)

	// Re-dispatch anything left pending by a previous crash.
	go notifyService.RecoverPending(context.Background())

	// Handlers
	requestTimeout := time.Duration(cfg.LookupTimeout+cfg.RenderTimeout) * time.Second
	orderHandler := handlers.NewOrderHandler(orderService, orderBuilder, requestTimeout)
	trackingHandler := handlers.NewTrackingHandler(orderService)
	customerHandler := handlers.NewCustomerHandler(partyService)
	inventoryHandler := handlers.NewInventoryHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(userService)

	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/login", adminHandler.Login)

		quotations := api.Group("/orders/quotation")
		{
			quotations.POST("", orderHandler.CreateQuotation)
			quotations.GET("", orderHandler.ListQuotations)
			quotations.POST("/search", orderHandler.SearchQuotations)
			quotations.GET("/:quotation_id", orderHandler.GetQuotation)
			quotations.PATCH("/:quotation_id", orderHandler.UpdateQuotation)
			quotations.DELETE("/:quotation_id", orderHandler.CancelQuotation)
			quotations.GET("/:quotation_id/document", orderHandler.GetQuotationDocument)
		}

		bookings := api.Group("/orders/booking")
		{
			bookings.POST("", orderHandler.CreateBooking)
			bookings.GET("", orderHandler.ListBookings)
			bookings.POST("/search", orderHandler.SearchBookings)
			bookings.GET("/:order_id", orderHandler.GetBooking)
			bookings.PATCH("/:order_id", orderHandler.UpdateBooking)
			bookings.POST("/:order_id/cancel", orderHandler.CancelBooking)
			bookings.DELETE("/:order_id", orderHandler.DeleteBooking)
			bookings.GET("/:order_id/document", orderHandler.GetBookingDocument)
		}

		tracking := api.Group("/tracking")
		{
			tracking.GET("/orders", trackingHandler.ListOrders)
			tracking.PATCH("/orders/:id/status", trackingHandler.UpdateStatus)
			tracking.GET("/orders/:id/transport", trackingHandler.TransportHistory)
		}

		customers := api.Group("/customers")
		{
			customers.POST("", customerHandler.Create)
			customers.GET("", customerHandler.List)
			customers.GET("/agents", customerHandler.ListAgents)
			customers.GET("/:id", customerHandler.Get)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		catalog := api.Group("/catalog")
		{
			catalog.GET("/products", inventoryHandler.ListProducts)
			catalog.GET("/categories", inventoryHandler.ListCategories)
			catalog.POST("/products", inventoryHandler.AddProduct)
			catalog.PATCH("/products/:id/status", inventoryHandler.SetProductStatus)
		}
	}

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
