package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/maikadev/maika-api/internal/auth"
	"github.com/maikadev/maika-api/internal/config"
	"github.com/maikadev/maika-api/internal/handlers"
	"github.com/maikadev/maika-api/internal/middleware"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/services"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := store.Connect(ctx, cfg.Mongo)
	if err != nil {
		appLog.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer st.Close(context.Background())
	appLog.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := st.SeedCounters(ctx,
		store.CollMenu, store.CollReservations, store.CollStaff,
		store.CollInventories, store.CollOrders, store.CollPayments,
		store.CollUsers,
	); err != nil {
		appLog.Fatal().Err(err).Msg("failed to seed id counters")
	}

	// --- Repositories ---
	users := store.NewCollection[models.User](st, store.CollUsers)
	menu := store.NewCollection[models.MenuItem](st, store.CollMenu)
	reservations := store.NewCollection[models.Reservation](st, store.CollReservations)
	staff := store.NewCollection[models.StaffMember](st, store.CollStaff)
	inventories := store.NewCollection[models.InventoryItem](st, store.CollInventories)
	orders := store.NewCollection[models.Order](st, store.CollOrders)
	payments := store.NewCollection[models.Payment](st, store.CollPayments)

	// --- Services ---
	tokens := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	h := &handlers.Handler{
		Auth:         services.NewAuthService(users, tokens, appLog),
		Users:        services.NewUserService(users, appLog),
		Menu:         services.NewMenuService(menu, appLog),
		Reservations: services.NewReservationService(reservations, appLog),
		Staff:        services.NewStaffService(staff, appLog),
		Inventory:    services.NewInventoryService(inventories, appLog),
		Orders:       services.NewOrderService(orders, appLog),
		Payments:     services.NewPaymentService(payments, orders, appLog),
		Gateway:      services.NewPayPalClient(cfg.PayPal, appLog),
		Store:        st,
		Log:          appLog,
	}

	// --- Gin Router ---
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(appLog))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/healthcheck", h.Healthcheck)

	// --- Routes ---
	v1 := r.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.POST("/logout", h.Logout)
	}

	authProtected := v1.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(tokens))
	{
		authProtected.GET("/verify", h.VerifyToken)
		authProtected.GET("/profile", h.GetProfile)
		authProtected.PUT("/profile", h.UpdateProfile)
		authProtected.PUT("/password", h.ChangePassword)
	}

	api := v1.Group("")
	api.Use(middleware.AuthMiddleware(tokens))
	{
		api.GET("/meals", h.GetMeals)
		api.POST("/meals", h.CreateMeal)
		api.PUT("/meals/:id", h.UpdateMeal)
		api.DELETE("/meals/:id", h.DeleteMeal)

		api.GET("/reservations", h.GetReservations)
		api.POST("/reservations", h.CreateReservation)
		api.PUT("/reservations/:id", h.UpdateReservation)
		api.DELETE("/reservations/:id", h.DeleteReservation)

		api.GET("/staff", h.GetEmployees)
		api.POST("/staff", h.CreateEmployee)
		api.PUT("/staff/:id", h.UpdateEmployee)
		api.DELETE("/staff/:id", h.DeleteEmployee)

		api.GET("/inventories", h.GetInventories)
		api.POST("/inventories", h.CreateInventory)
		api.PUT("/inventories/:id", h.UpdateInventory)
		api.PUT("/inventories/:id/existence", h.UpdateInventoryExistence)
		api.DELETE("/inventories/:id", h.DeleteInventory)

		api.GET("/orders", h.GetOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.POST("/orders", h.CreateOrder)
		api.PUT("/orders/:id", h.UpdateOrder)
		api.DELETE("/orders/:id", h.DeleteOrder)

		api.GET("/payments", h.GetPayments)
		api.GET("/payments/orders", h.GetOrdersToPay)
		api.GET("/payments/:id", h.GetPayment)
		api.POST("/payments", h.CreatePayment)
		api.DELETE("/payments/:id", h.DeletePayment)

		api.GET("/users", h.GetUsers)
		api.GET("/users/:id", h.GetUser)
		api.DELETE("/users/:id", h.DeleteUser)

		api.POST("/paypal/orders", h.CreatePayPalOrder)
		api.POST("/paypal/orders/:id/capture", h.CapturePayPalOrder)
		api.GET("/paypal/orders/:id", h.GetPayPalOrder)
	}

	appLog.Info().Str("port", cfg.HTTP.Port).Msg("starting server")
	if err := r.Run(":" + cfg.HTTP.Port); err != nil {
		appLog.Fatal().Err(err).Msg("server stopped")
	}
}
