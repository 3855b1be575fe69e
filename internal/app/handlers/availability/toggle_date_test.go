package availability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainorders "rentwear/internal/domain/orders"
	"rentwear/internal/domain/shared/datekey"
	"rentwear/internal/infra/storage/memory"
)

const testGarmentID = "grm-test"

func newTestFixture(t *testing.T) (memory.Factory, *memory.OrderRepository, *memory.Outbox) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	orders := memory.NewOrderRepository()
	factory := memory.Factory{
		GarmentsRepo:  memory.NewGarmentRepository(),
		CalendarsRepo: memory.NewCalendarRepository(orders, logger),
		OrdersRepo:    orders,
	}
	return factory, orders, memory.NewOutbox()
}

func fixedToday() datekey.DateKey { return datekey.DateKey("2026-09-01") }

func TestToggleDateOpensAndExcludes(t *testing.T) {
	factory, _, box := newTestFixture(t)
	handler := &ToggleDateHandler{UoWFactory: factory, Outbox: box, Today: fixedToday}

	cmd := ToggleDateCommand{GarmentID: testGarmentID, Date: "2026-09-10"}
	result, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	require.Equal(t, "2026-09-10", result.Date)
	require.Equal(t, string(domainavailability.StatusAvailable), result.Status)

	result, err = handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	require.Equal(t, string(domainavailability.StatusExcluded), result.Status)

	require.Len(t, box.Pending(), 2)
}

func TestToggleDateRejectsInvalidDate(t *testing.T) {
	factory, _, box := newTestFixture(t)
	handler := &ToggleDateHandler{UoWFactory: factory, Outbox: box, Today: fixedToday}

	_, err := handler.Handle(context.Background(), ToggleDateCommand{GarmentID: testGarmentID, Date: "2026-9-10"})
	require.ErrorIs(t, err, datekey.ErrInvalidDate)
	require.Empty(t, box.Pending())
}

func TestToggleDateBookedConflict(t *testing.T) {
	factory, orders, box := newTestFixture(t)
	orders.AddConfirmed(domaincatalog.GarmentID(testGarmentID), domainorders.BookedRange{
		OrderID:   "ord-1",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-11",
	})
	handler := &ToggleDateHandler{UoWFactory: factory, Outbox: box, Today: fixedToday}

	_, err := handler.Handle(context.Background(), ToggleDateCommand{GarmentID: testGarmentID, Date: "2026-09-10"})
	require.ErrorIs(t, err, domainavailability.ErrBookedDateImmutable)
	require.Empty(t, box.Pending())
}

func TestGenerateRangeSkipsExcluded(t *testing.T) {
	factory, _, box := newTestFixture(t)
	toggle := &ToggleDateHandler{UoWFactory: factory, Outbox: box, Today: fixedToday}
	gen := &GenerateRangeHandler{UoWFactory: factory, Outbox: box}

	// Exclude 2026-09-11 first: open then toggle again.
	for range 2 {
		_, err := toggle.Handle(context.Background(), ToggleDateCommand{GarmentID: testGarmentID, Date: "2026-09-11"})
		require.NoError(t, err)
	}

	result, err := gen.Handle(context.Background(), GenerateRangeCommand{
		GarmentID: testGarmentID,
		Start:     "2026-09-10",
		End:       "2026-09-12",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"2026-09-10", "2026-09-12"}, result.Added)
}

func TestExcludeDateOutsideRange(t *testing.T) {
	factory, _, box := newTestFixture(t)
	handler := &ExcludeDateHandler{UoWFactory: factory, Outbox: box}

	_, err := handler.Handle(context.Background(), ExcludeDateCommand{
		GarmentID:  testGarmentID,
		Date:       "2026-09-20",
		RangeStart: "2026-09-10",
		RangeEnd:   "2026-09-12",
	})
	require.ErrorIs(t, err, domainavailability.ErrOutOfRange)
}

func TestGetCalendarRendersMonth(t *testing.T) {
	factory, _, box := newTestFixture(t)
	gen := &GenerateRangeHandler{UoWFactory: factory, Outbox: box}
	_, err := gen.Handle(context.Background(), GenerateRangeCommand{
		GarmentID: testGarmentID,
		Start:     "2026-09-10",
		End:       "2026-09-12",
	})
	require.NoError(t, err)

	get := &GetCalendarHandler{UoWFactory: factory, Today: fixedToday}
	month, err := get.Handle(context.Background(), GetCalendarQuery{GarmentID: testGarmentID, Year: 2026, Month: 9})
	require.NoError(t, err)
	require.Equal(t, 2026, month.Year)
	require.Equal(t, 9, month.Month)
	require.NotEmpty(t, month.Weeks)

	var available int
	for _, week := range month.Weeks {
		require.Len(t, week, 7)
		for _, cell := range week {
			if cell.State == string(domainavailability.StatusAvailable) {
				available++
			}
		}
	}
	require.Equal(t, 3, available)
}
