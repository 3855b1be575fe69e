package availability

import (
	"context"
	"time"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/middleware"
	"rentwear/internal/app/outbox"
	"rentwear/internal/app/uow"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
	"rentwear/internal/domain/shared/daterange"
)

const generateRangeKey = "availability.generate_range"

// GenerateRangeCommand bulk-opens every date of [Start, End] that is
// not already excluded or booked.
type GenerateRangeCommand struct {
	CommandID       string
	GarmentID       string
	Start           string
	End             string
	IdempotencyKeyV string
}

func (c GenerateRangeCommand) Key() string { return generateRangeKey }

func (c GenerateRangeCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c GenerateRangeCommand) ResultPrototype() any { return &GenerateRangeResult{} }

type GenerateRangeResult struct {
	Added []string `json:"added"`
}

type GenerateRangeHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *GenerateRangeHandler) Handle(ctx context.Context, cmd GenerateRangeCommand) (*GenerateRangeResult, error) {
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

	start, err := datekey.Parse(cmd.Start)
	if err != nil {
		return nil, err
	}
	end, err := datekey.Parse(cmd.End)
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

	added, err := cal.GenerateRange(r, time.Now())
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

	result := &GenerateRangeResult{Added: make([]string, len(added))}
	for i, d := range added {
		result.Added[i] = string(d)
	}
	return result, nil
}

var _ commands.Handler[GenerateRangeCommand, *GenerateRangeResult] = (*GenerateRangeHandler)(nil)
var _ middleware.IdempotentCommand = GenerateRangeCommand{}
