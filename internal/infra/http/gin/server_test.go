package ginserver

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/app/commands"
	availabilityapp "rentwear/internal/app/handlers/availability"
	garmentapp "rentwear/internal/app/handlers/garments"
	"rentwear/internal/app/middleware"
	appoutbox "rentwear/internal/app/outbox"
	"rentwear/internal/app/queries"
	domaincatalog "rentwear/internal/domain/catalog"
	domainorders "rentwear/internal/domain/orders"
	"rentwear/internal/infra/config"
	"rentwear/internal/infra/obs"
	"rentwear/internal/infra/storage/memory"
)

type testApp struct {
	server *http.Server
	orders *memory.OrderRepository
}

func newTestServer(t *testing.T) testApp {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	ordersRepo := memory.NewOrderRepository()
	factory := memory.Factory{
		GarmentsRepo:  memory.NewGarmentRepository(),
		CalendarsRepo: memory.NewCalendarRepository(ordersRepo, logger),
		OrdersRepo:    ordersRepo,
	}
	outboxStore := memory.NewOutbox()
	encoder := appoutbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, availabilityapp.ToggleDateCommand{}.Key(), &availabilityapp.ToggleDateHandler{
		UoWFactory: factory, Outbox: outboxStore, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, availabilityapp.GenerateRangeCommand{}.Key(), &availabilityapp.GenerateRangeHandler{
		UoWFactory: factory, Outbox: outboxStore, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, availabilityapp.ExcludeDateCommand{}.Key(), &availabilityapp.ExcludeDateHandler{
		UoWFactory: factory, Outbox: outboxStore, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, garmentapp.CreateGarmentCommand{}.Key(), &garmentapp.CreateGarmentHandler{
		UoWFactory: factory, Outbox: outboxStore, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, garmentapp.UpdateGarmentCommand{}.Key(), &garmentapp.UpdateGarmentHandler{
		UoWFactory: factory, Outbox: outboxStore, Encoder: encoder,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, garmentapp.GetGarmentQuery{}.Key(), &garmentapp.GetGarmentHandler{UoWFactory: factory})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(memory.NewIdempotencyStore(), nil),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	handlers := Handlers{
		Calendar: CalendarHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware, Logger: logger},
		Garment:  GarmentHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware, Logger: logger},
	}
	server := NewServer(config.Config{Env: "test", HTTPAddr: ":0"}, obs.Middleware{Logger: logger}, obs.HealthHandlers{}, handlers)
	return testApp{server: server, orders: ordersRepo}
}

func (a testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestServer(t)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/livez", "").Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/readyz", "").Code)
}

func TestCreateAndFetchGarment(t *testing.T) {
	app := newTestServer(t)

	rec := app.do(t, http.MethodPost, "/api/v1/garments", `{
		"title": "Wrap Dress",
		"sizes": ["S", "M"],
		"daily_rate_cents": 3000,
		"available_dates": "2026-10-01,2026-10-02,2026-10-03",
		"excluded_dates": "2026-10-02"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Location"), "/api/v1/garments/")
	assert.Contains(t, rec.Body.String(), "garment_id")
}

func TestCreateGarmentWithoutDatesRejected(t *testing.T) {
	app := newTestServer(t)

	rec := app.do(t, http.MethodPost, "/api/v1/garments", `{
		"title": "Wrap Dress",
		"sizes": ["S"],
		"daily_rate_cents": 3000,
		"available_dates": ""
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestToggleBookedDateConflicts(t *testing.T) {
	app := newTestServer(t)
	app.orders.AddConfirmed(domaincatalog.GarmentID("grm-x"), domainorders.BookedRange{
		OrderID:   "ord-1",
		StartDate: "2099-01-10",
		EndDate:   "2099-01-11",
	})

	rec := app.do(t, http.MethodPost, "/api/v1/garments/grm-x/calendar/toggle", `{"date": "2099-01-10"}`)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestCalendarMonthRendering(t *testing.T) {
	app := newTestServer(t)

	rec := app.do(t, http.MethodPost, "/api/v1/garments/grm-y/calendar/range", `{"start": "2099-02-10", "end": "2099-02-12"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "2099-02-10")

	rec = app.do(t, http.MethodGet, "/api/v1/garments/grm-y/calendar?year=2099&month=2", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"weeks"`)
	assert.Contains(t, rec.Body.String(), "AVAILABLE")
}

func TestExcludeOutsideRangeRejected(t *testing.T) {
	app := newTestServer(t)

	rec := app.do(t, http.MethodPost, "/api/v1/garments/grm-z/calendar/exclude", `{
		"date": "2099-03-20",
		"range_start": "2099-03-01",
		"range_end": "2099-03-05"
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestInvalidMonthRejected(t *testing.T) {
	app := newTestServer(t)
	rec := app.do(t, http.MethodGet, "/api/v1/garments/grm-y/calendar?year=2099&month=13", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
