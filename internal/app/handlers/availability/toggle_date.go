package availability

import (
	"context"
	"errors"
	"time"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/middleware"
	"rentwear/internal/app/outbox"
	"rentwear/internal/app/uow"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
)

const toggleDateKey = "availability.toggle_date"

var ErrUnitOfWorkRequired = errors.New("availability: unit of work required")

// ToggleDateCommand applies the single-date admin transition: a default
// date opens, an open date becomes excluded, an excluded date reopens.
type ToggleDateCommand struct {
	CommandID       string
	GarmentID       string
	Date            string
	IdempotencyKeyV string
}

func (c ToggleDateCommand) Key() string { return toggleDateKey }

func (c ToggleDateCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c ToggleDateCommand) ResultPrototype() any { return &ToggleDateResult{} }

type ToggleDateResult struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type ToggleDateHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Today      func() datekey.DateKey
}

func (h *ToggleDateHandler) Handle(ctx context.Context, cmd ToggleDateCommand) (*ToggleDateResult, error) {
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

	cal, err := unit.Calendars().Calendar(ctx, domaincatalog.GarmentID(cmd.GarmentID))
	if err != nil {
		return nil, err
	}

	status, err := cal.ToggleDate(date, h.today(), time.Now())
	if err != nil {
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

	return &ToggleDateResult{Date: string(date), Status: string(status)}, nil
}

func (h *ToggleDateHandler) today() datekey.DateKey {
	if h.Today != nil {
		return h.Today()
	}
	return datekey.Today()
}

// beginUnit reuses a unit of work from context (transaction middleware)
// or starts a managed one.
func beginUnit(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, bool, error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, false, nil
	}
	if factory == nil {
		return nil, false, ErrUnitOfWorkRequired
	}
	unit, err := factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	return unit, true, nil
}

var _ commands.Handler[ToggleDateCommand, *ToggleDateResult] = (*ToggleDateHandler)(nil)
var _ middleware.IdempotentCommand = ToggleDateCommand{}
