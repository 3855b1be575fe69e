package availability

import (
	"context"
	"time"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/outbox"
	"rentwear/internal/app/uow"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
	"rentwear/internal/domain/shared/daterange"
)

const excludeDateKey = "availability.exclude_date"

// ExcludeDateCommand withholds one date inside a generated range,
// typically right after the admin bulk-opened it.
type ExcludeDateCommand struct {
	CommandID  string
	GarmentID  string
	Date       string
	RangeStart string
	RangeEnd   string
}

func (c ExcludeDateCommand) Key() string { return excludeDateKey }

type ExcludeDateResult struct {
	Date string `json:"date"`
}

type ExcludeDateHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *ExcludeDateHandler) Handle(ctx context.Context, cmd ExcludeDateCommand) (*ExcludeDateResult, error) {
	unit, managed, err := beginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	committed := false
	if managed {
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	date, err := datekey.Parse(cmd.Date)
	if err != nil {
		return nil, err
	}
	start, err := datekey.Parse(cmd.RangeStart)
	if err != nil {
		return nil, err
	}
	end, err := datekey.Parse(cmd.RangeEnd)
	if err != nil {
		return nil, err
	}
	r, err := daterange.New(start, end)
	if err != nil {
		return nil, err
	}

	cal, err := unit.Calendars().Calendar(ctx, domaincatalog.GarmentID(cmd.GarmentID))
	if err != nil {
		return nil, err
	}

	if err := cal.ExcludeDate(date, r, time.Now()); err != nil {
		return nil, err
	}

	if err := unit.Calendars().Save(ctx, cal); err != nil {
		return nil, err
	}

	pending := cal.PendingEvents()
	cal.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &ExcludeDateResult{Date: string(date)}, nil
}

var _ commands.Handler[ExcludeDateCommand, *ExcludeDateResult] = (*ExcludeDateHandler)(nil)
