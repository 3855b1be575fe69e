package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"rentwear/internal/app/commands"
	availabilityapp "rentwear/internal/app/handlers/availability"
	garmentapp "rentwear/internal/app/handlers/garments"
	"rentwear/internal/app/middleware"
	appoutbox "rentwear/internal/app/outbox"
	"rentwear/internal/app/queries"
	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainorders "rentwear/internal/domain/orders"
	"rentwear/internal/domain/shared/datekey"
	"rentwear/internal/infra/broker/kafka"
	"rentwear/internal/infra/config"
	mongodb "rentwear/internal/infra/db/mongo"
	ginserver "rentwear/internal/infra/http/gin"
	"rentwear/internal/infra/obs"
	infraoutbox "rentwear/internal/infra/outbox"
	"rentwear/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.StorageMode = "memory"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("application bootstrap failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if cfg.StorageMode == "memory" {
		fixturesPath := cfg.FixturesPath
		if fixturesPath == "" {
			fixturesPath = defaultGarmentFixturesPath()
		}
		if err := app.loadGarmentFixtures(ctx, fixturesPath, logger); err != nil {
			logger.Warn("garment fixtures load failed", "error", err, "path", fixturesPath)
		}
	}

	if app.outboxWorker != nil {
		go func() {
			if err := app.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers     ginserver.Handlers
	ready        func() error
	outboxWorker *infraoutbox.Worker
	repos        struct {
		garments  domaincatalog.Repository
		calendars domainavailability.Repository
		orders    *memory.OrderRepository
	}
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, error) {
	var app application

	var (
		uowFactory  uow.UoWFactory
		outboxStore appoutbox.Outbox
		idStore     middleware.IdempotencyStore
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		ordersRepo := mongodb.NewOrderRepository(client.DB)
		garmentsRepo := mongodb.NewGarmentRepository(client.DB)
		calendarsRepo := mongodb.NewCalendarRepository(client.DB, ordersRepo, logger)
		uowFactory = mongodb.Factory{
			DB:            client.DB,
			GarmentsRepo:  garmentsRepo,
			CalendarsRepo: calendarsRepo,
			OrdersRepo:    ordersRepo,
		}
		store := infraoutbox.NewStore(client.DB)
		outboxStore = store
		idStore = mongodb.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		app.repos.garments = garmentsRepo
		app.repos.calendars = calendarsRepo

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, fmt.Errorf("kafka producer: %w", err)
			}
			app.outboxWorker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Logger:      logger,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Source:      "app://rentwear",
				ID:          uuid.NewString(),
				Backoff:     cfg.RetryBackoff,
			}
		} else {
			logger.Warn("kafka brokers not configured, outbox events stay queued")
		}
	default:
		ordersRepo := memory.NewOrderRepository()
		garmentsRepo := memory.NewGarmentRepository()
		calendarsRepo := memory.NewCalendarRepository(ordersRepo, logger)
		uowFactory = memory.Factory{
			GarmentsRepo:  garmentsRepo,
			CalendarsRepo: calendarsRepo,
			OrdersRepo:    ordersRepo,
		}
		outboxStore = memory.NewOutbox()
		idStore = memory.NewIdempotencyStore()
		app.ready = func() error { return nil }
		app.repos.garments = garmentsRepo
		app.repos.calendars = calendarsRepo
		app.repos.orders = ordersRepo
	}

	encoder := appoutbox.JSONEventEncoder{IDGenerator: uuid.NewString}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, availabilityapp.ToggleDateCommand{}.Key(), &availabilityapp.ToggleDateHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxStore,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, availabilityapp.GenerateRangeCommand{}.Key(), &availabilityapp.GenerateRangeHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxStore,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, availabilityapp.ExcludeDateCommand{}.Key(), &availabilityapp.ExcludeDateHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxStore,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, garmentapp.CreateGarmentCommand{}.Key(), &garmentapp.CreateGarmentHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxStore,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, garmentapp.UpdateGarmentCommand{}.Key(), &garmentapp.UpdateGarmentHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxStore,
		Encoder:    encoder,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, garmentapp.GetGarmentQuery{}.Key(), &garmentapp.GetGarmentHandler{
		UoWFactory: uowFactory,
	})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	app.handlers = ginserver.Handlers{
		Calendar: ginserver.CalendarHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
			Logger:   logger,
		},
		Garment: ginserver.GarmentHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
			Logger:   logger,
		},
	}
	return app, nil
}

func (a application) loadGarmentFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("garment fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("garment fixtures file empty", "path", path)
		return nil
	}

	var fixtures []garmentFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now()
	for _, fx := range fixtures {
		garment, err := domaincatalog.NewGarment(domaincatalog.CreateGarmentParams{
			ID:             domaincatalog.GarmentID(fx.ID),
			Title:          fx.Title,
			Description:    fx.Description,
			Category:       fx.Category,
			Sizes:          append([]string(nil), fx.Sizes...),
			DailyRateCents: fx.DailyRateCents,
			Now:            now,
		})
		if err != nil {
			logger.Error("fixture invalid", "garment_id", fx.ID, "error", err)
			continue
		}
		if err := garment.Activate(now); err != nil {
			logger.Error("fixture activation failed", "garment_id", fx.ID, "error", err)
			continue
		}
		garment.ClearEvents()
		if err := a.repos.garments.Save(ctx, garment); err != nil {
			logger.Error("cannot store fixture garment", "garment_id", fx.ID, "error", err)
			continue
		}

		// Fixture files are hand-edited, so dates parse leniently.
		available, err := datekey.ParseList(fx.AvailableDates, datekey.ParseLenient)
		if err != nil {
			logger.Error("fixture available dates invalid", "garment_id", fx.ID, "error", err)
			continue
		}
		excluded, err := datekey.ParseList(fx.ExcludedDates, datekey.ParseLenient)
		if err != nil {
			logger.Error("fixture excluded dates invalid", "garment_id", fx.ID, "error", err)
			continue
		}
		cal := domainavailability.NewCalendar(garment.ID)
		cal.Snapshot.Available = datekey.Difference(available, excluded)
		cal.Snapshot.Excluded = excluded
		if err := a.repos.calendars.Save(ctx, cal); err != nil {
			logger.Error("cannot store fixture calendar", "garment_id", fx.ID, "error", err)
			continue
		}

		if a.repos.orders != nil {
			for _, order := range fx.Orders {
				a.repos.orders.AddConfirmed(garment.ID, domainorders.BookedRange{
					OrderID:   domainorders.OrderID(order.OrderID),
					StartDate: order.StartDate,
					EndDate:   order.EndDate,
				})
			}
		}
		logger.Info("garment fixture imported", "garment_id", garment.ID)
	}
	return nil
}

type garmentFixture struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	Sizes          []string       `json:"sizes"`
	DailyRateCents int64          `json:"daily_rate_cents"`
	AvailableDates string         `json:"available_dates"`
	ExcludedDates  string         `json:"excluded_dates"`
	Orders         []orderFixture `json:"orders"`
}

type orderFixture struct {
	OrderID   string `json:"order_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func defaultGarmentFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "garments.json"),
		filepath.Join("..", "data", "garments.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
