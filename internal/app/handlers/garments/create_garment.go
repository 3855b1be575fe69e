package garments

import (
	"context"
	"errors"
	"time"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/middleware"
	"rentwear/internal/app/outbox"
	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
)

const createGarmentKey = "garments.create"

var ErrUnitOfWorkRequired = errors.New("garments: unit of work required")

// CreateGarmentCommand creates a garment together with its initial
// availability. Date fields carry the comma-separated form-field text;
// parsing is strict here because the values are about to be persisted.
type CreateGarmentCommand struct {
	CommandID       string
	Title           string
	Description     string
	Category        string
	Sizes           []string
	DailyRateCents  int64
	AvailableDates  string
	ExcludedDates   string
	IdempotencyKeyV string
}

func (c CreateGarmentCommand) Key() string { return createGarmentKey }

func (c CreateGarmentCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CreateGarmentCommand) ResultPrototype() any { return &CreateGarmentResult{} }

type CreateGarmentResult struct {
	GarmentID string `json:"garment_id"`
}

type CreateGarmentHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CreateGarmentHandler) Handle(ctx context.Context, cmd CreateGarmentCommand) (*CreateGarmentResult, error) {
	// Validate everything before touching a repository: a save with no
	// offerable date must fail without any I/O.
	available, err := datekey.ParseList(cmd.AvailableDates, datekey.ParseStrict)
	if err != nil {
		return nil, err
	}
	excluded, err := datekey.ParseList(cmd.ExcludedDates, datekey.ParseStrict)
	if err != nil {
		return nil, err
	}
	// Emptiness is judged on the effective set: excluding every
	// submitted date leaves nothing offerable.
	offerable := datekey.Difference(available, excluded)
	if offerable.Len() == 0 {
		return nil, domainavailability.ErrEmptyAvailability
	}

	now := time.Now().UTC()
	garment, err := domaincatalog.NewGarment(domaincatalog.CreateGarmentParams{
		ID:             domaincatalog.GarmentID(cmd.CommandID),
		Title:          cmd.Title,
		Description:    cmd.Description,
		Category:       cmd.Category,
		Sizes:          cmd.Sizes,
		DailyRateCents: cmd.DailyRateCents,
		Now:            now,
	})
	if err != nil {
		return nil, err
	}

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

	if err := unit.Garments().Save(ctx, garment); err != nil {
		return nil, err
	}

	cal := domainavailability.NewCalendar(garment.ID)
	cal.Snapshot.Available = offerable
	cal.Snapshot.Excluded = excluded.Clone()
	if err := unit.Calendars().Save(ctx, cal); err != nil {
		return nil, err
	}

	pending := garment.PendingEvents()
	garment.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &CreateGarmentResult{GarmentID: string(garment.ID)}, nil
}

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

var _ commands.Handler[CreateGarmentCommand, *CreateGarmentResult] = (*CreateGarmentHandler)(nil)
var _ middleware.IdempotentCommand = CreateGarmentCommand{}
