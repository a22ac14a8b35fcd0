package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	authHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/auth"
	cartHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/cart"
	catalogHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/catalog"
	checkoutOrderHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/checkout_order"
	contactHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/contact"
	createReservationHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/get_availability"
	getDaySlotsHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/get_day_slots"
	ordersHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/orders"
	proofsHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/proofs"
	reportsHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/reports"
	reservationsHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/reservations"
	timeSlotsHandler "github.com/m04kA/EquestrianHub/internal/api/handlers/time_slots"
	"github.com/m04kA/EquestrianHub/internal/api/middleware"
	"github.com/m04kA/EquestrianHub/internal/config"
	cartStore "github.com/m04kA/EquestrianHub/internal/infra/cache/cart"
	lessonTypeRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/lessontype"
	"github.com/m04kA/EquestrianHub/internal/infra/storage/migrations"
	orderRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/order"
	productRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/product"
	proofStorage "github.com/m04kA/EquestrianHub/internal/infra/storage/proofs"
	reservationRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/reservation"
	timeSlotRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/timeslot"
	userRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/user"
	"github.com/m04kA/EquestrianHub/internal/integrations/events"
	"github.com/m04kA/EquestrianHub/internal/integrations/mailer"
	"github.com/m04kA/EquestrianHub/internal/integrations/verifier"
	"github.com/m04kA/EquestrianHub/internal/scheduler"
	adminService "github.com/m04kA/EquestrianHub/internal/service/admin"
	authService "github.com/m04kA/EquestrianHub/internal/service/auth"
	cartService "github.com/m04kA/EquestrianHub/internal/service/cart"
	catalogService "github.com/m04kA/EquestrianHub/internal/service/catalog"
	ordersService "github.com/m04kA/EquestrianHub/internal/service/orders"
	reservationsService "github.com/m04kA/EquestrianHub/internal/service/reservations"
	timeSlotsService "github.com/m04kA/EquestrianHub/internal/service/timeslots"
	checkoutOrderUC "github.com/m04kA/EquestrianHub/internal/usecase/checkout_order"
	createReservationUC "github.com/m04kA/EquestrianHub/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/EquestrianHub/internal/usecase/get_availability"
	getDaySlotsUC "github.com/m04kA/EquestrianHub/internal/usecase/get_day_slots"
	"github.com/m04kA/EquestrianHub/pkg/dbmetrics"
	"github.com/m04kA/EquestrianHub/pkg/logger"
	"github.com/m04kA/EquestrianHub/pkg/metrics"
	"github.com/m04kA/EquestrianHub/pkg/simpletxmanager"
	"github.com/m04kA/EquestrianHub/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting EquestrianHub...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Исполнитель запросов и менеджер транзакций (с метриками или без)
	var (
		executor dbmetrics.DBExecutor = db
		txMgr    *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Репозитории
	users := userRepo.NewRepository(executor)
	products := productRepo.NewRepository(executor)
	lessonTypes := lessonTypeRepo.NewRepository(executor)
	timeSlots := timeSlotRepo.NewRepository(executor)
	reservations := reservationRepo.NewRepository(executor)
	orders := orderRepo.NewRepository(executor)

	// Redis: корзина и rate limit. Без Redis корзина живёт в памяти процесса
	var (
		carts   cartService.Store = cartStore.NewMemoryStore()
		limiter middleware.Counter
	)

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()

		if err != nil {
			log.Warn("Redis unavailable at %s, falling back to in-memory carts: %v", cfg.Redis.Addr, err)
		} else {
			carts = cartStore.NewRedisStore(rdb, time.Duration(cfg.Redis.CartTTLHours)*time.Hour)
			limiter = rdb
			log.Info("Connected to Redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
		}
	}

	// Интеграции
	var publisher *events.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, events disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
			log.Info("Publishing events to exchange %s", cfg.RabbitMQ.Exchange)
		}
	}

	notifier := mailer.NewDisabled(log)
	if cfg.Mailer.Enabled {
		notifier = mailer.New(cfg.Mailer.APIKey, mailer.Config{
			FromEmail:     cfg.Mailer.FromEmail,
			FromName:      cfg.Mailer.FromName,
			OperatorEmail: cfg.Mailer.OperatorEmail,
			TemplateID:    cfg.Mailer.TemplateID,
			ProofsBaseURL: cfg.Mailer.ProofsBaseURL,
		}, log, metricsCollector)
		log.Info("Email notifications enabled (operator=%s)", cfg.Mailer.OperatorEmail)
	}

	paymentVerifier := verifier.NewClient(
		cfg.Verifier.URL,
		cfg.Verifier.APIKey,
		cfg.Verifier.Model,
		time.Duration(cfg.Verifier.Timeout)*time.Second,
		log,
		metricsCollector,
	)

	proofs, err := proofStorage.NewFileStore(cfg.Storage.ProofsDir)
	if err != nil {
		log.Fatal("Failed to initialize proof storage: %v", err)
	}

	// Сервисы
	authSvc := authService.NewService(
		users,
		cfg,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		log,
	)
	catalogSvc := catalogService.NewService(products, lessonTypes, log)
	cartSvc := cartService.NewService(carts, products, log)
	timeSlotsSvc := timeSlotsService.NewService(timeSlots, log)
	reservationsSvc := reservationsService.NewService(reservations, publisher, metricsCollector, log)
	ordersSvc := ordersService.NewService(orders, users, txMgr, notifier, publisher, metricsCollector, log)
	adminSvc := adminService.NewService(orders, reservations, products, users, txMgr, log)

	// Use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservations,
		timeSlots,
		lessonTypes,
		users,
		proofs,
		paymentVerifier,
		notifier,
		publisher,
		metricsCollector,
		txMgr,
		cfg.Verifier.MaxDocumentBytes,
		log,
	)
	checkoutOrderUseCase := checkoutOrderUC.NewUseCase(
		orders,
		products,
		carts,
		users,
		proofs,
		paymentVerifier,
		notifier,
		publisher,
		metricsCollector,
		txMgr,
		cfg.Verifier.MaxDocumentBytes,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(reservations, timeSlots, cfg.Booking.CalendarMaxDays, log)
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(reservations, timeSlots, log)

	// Handlers
	auth := authHandler.NewHandler(authSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	cart := cartHandler.NewHandler(cartSvc, log)
	availability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	daySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	checkoutOrder := checkoutOrderHandler.NewHandler(checkoutOrderUseCase, log)
	reservationsH := reservationsHandler.NewHandler(reservationsSvc, log)
	ordersH := ordersHandler.NewHandler(ordersSvc, log)
	timeSlotsH := timeSlotsHandler.NewHandler(timeSlotsSvc, log)
	reports := reportsHandler.NewHandler(adminSvc, log)
	contact := contactHandler.NewHandler(notifier, log)
	proofFiles := proofsHandler.NewHandler(proofs, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)

	api.HandleFunc("/products", catalog.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}", catalog.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/lesson-types", catalog.ListLessonTypes).Methods(http.MethodGet)

	api.HandleFunc("/availability", availability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{date}/slots", daySlots.Handle).Methods(http.MethodGet)

	api.HandleFunc("/contact", contact.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc))

	createLimit := func(scope string, h http.HandlerFunc) http.Handler {
		return middleware.RateLimit(limiter, scope, cfg.Redis.RateLimitPerMinute, time.Minute, log)(h)
	}

	protected.HandleFunc("/users/me", auth.Me).Methods(http.MethodGet)

	// --- Корзина ---
	protected.HandleFunc("/cart", cart.Get).Methods(http.MethodGet)
	protected.HandleFunc("/cart", cart.Clear).Methods(http.MethodDelete)
	protected.HandleFunc("/cart/items", cart.AddItem).Methods(http.MethodPost)
	protected.HandleFunc("/cart/items/{productId}", cart.SetQuantity).Methods(http.MethodPut)
	protected.HandleFunc("/cart/items/{productId}", cart.RemoveItem).Methods(http.MethodDelete)

	// --- Заказы ---
	protected.Handle("/orders", createLimit("orders", checkoutOrder.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}", ordersH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/orders", ordersH.ListMine).Methods(http.MethodGet)

	// --- Записи на уроки ---
	protected.Handle("/reservations", createLimit("reservations", createReservation.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", reservationsH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", reservationsH.CancelOwn).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/reservations", reservationsH.ListMine).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/reservations", reservationsH.List).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id}/confirm", reservationsH.Confirm).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}/complete", reservationsH.Complete).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}/cancel", reservationsH.Cancel).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}/notes", reservationsH.Notes).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}", reservationsH.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/orders", ordersH.List).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/complete", ordersH.Complete).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{id}/cancel", ordersH.Cancel).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{id}/notes", ordersH.Notes).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{id}", ordersH.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/products", catalog.AdminList).Methods(http.MethodGet)
	admin.HandleFunc("/products", catalog.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", catalog.Update).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", catalog.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/time-slots", timeSlotsH.List).Methods(http.MethodGet)
	admin.HandleFunc("/time-slots", timeSlotsH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/time-slots/{id}", timeSlotsH.Update).Methods(http.MethodPut)
	admin.HandleFunc("/time-slots/{id}", timeSlotsH.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/analytics", reports.Analytics).Methods(http.MethodGet)
	admin.HandleFunc("/customers", reports.Customers).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{userId}/summary", reports.CustomerSummary).Methods(http.MethodGet)

	admin.HandleFunc("/proofs/{key}", proofFiles.Handle).Methods(http.MethodGet)

	// Фоновое завершение прошедших записей
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	completion := scheduler.New(
		reservationsSvc,
		time.Duration(cfg.Booking.CompletionIntervalSeconds)*time.Second,
		log,
	)
	go completion.Start(schedulerCtx)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopScheduler()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
