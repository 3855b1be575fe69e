package availability

import (
	"context"
	"time"

	"rentwear/internal/app/dto"
	"rentwear/internal/app/queries"
	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
)

const getCalendarKey = "availability.calendar"

type GetCalendarQuery struct {
	GarmentID string
	Year      int
	Month     time.Month
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
	Today      func() datekey.DateKey
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.CalendarMonth, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.CalendarMonth{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.CalendarMonth{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	cal, err := unit.Calendars().Calendar(ctx, domaincatalog.GarmentID(q.GarmentID))
	if err != nil {
		return dto.CalendarMonth{}, err
	}

	grid := domainavailability.RenderMonth(q.Year, q.Month, cal.Snapshot, h.today())
	return dto.MapCalendarMonth(q.GarmentID, grid), nil
}

func (h *GetCalendarHandler) today() datekey.DateKey {
	if h.Today != nil {
		return h.Today()
	}
	return datekey.Today()
}

var _ queries.Handler[GetCalendarQuery, dto.CalendarMonth] = (*GetCalendarHandler)(nil)
