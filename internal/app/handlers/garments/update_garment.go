package garments

import (
	"context"
	"time"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/outbox"
	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
)

const updateGarmentKey = "garments.update"

// UpdateGarmentCommand replaces garment details and the admin-owned
// date sets. Booked dates come from orders and survive the update
// untouched, winning over whatever the form submitted.
type UpdateGarmentCommand struct {
	GarmentID      string
	Title          string
	Description    string
	Category       string
	Sizes          []string
	DailyRateCents int64
	AvailableDates string
	ExcludedDates  string
}

func (c UpdateGarmentCommand) Key() string { return updateGarmentKey }

type UpdateGarmentResult struct {
	GarmentID string `json:"garment_id"`
}

type UpdateGarmentHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *UpdateGarmentHandler) Handle(ctx context.Context, cmd UpdateGarmentCommand) (*UpdateGarmentResult, error) {
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

	garment, err := unit.Garments().ByID(ctx, domaincatalog.GarmentID(cmd.GarmentID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := garment.UpdateDetails(domaincatalog.UpdateGarmentParams{
		Title:          cmd.Title,
		Description:    cmd.Description,
		Category:       cmd.Category,
		Sizes:          cmd.Sizes,
		DailyRateCents: cmd.DailyRateCents,
		Now:            now,
	}); err != nil {
		return nil, err
	}

	cal, err := unit.Calendars().Calendar(ctx, garment.ID)
	if err != nil {
		return nil, err
	}
	submitted := domainavailability.Snapshot{
		Available: offerable,
		Excluded:  excluded.Clone(),
		Booked:    cal.Snapshot.Booked,
	}
	cal.Snapshot = domainavailability.Reconcile(submitted, cal.Snapshot.Booked)

	if err := unit.Garments().Save(ctx, garment); err != nil {
		return nil, err
	}
	if err := unit.Calendars().Save(ctx, cal); err != nil {
		return nil, err
	}

	pending := append(garment.PendingEvents(), cal.PendingEvents()...)
	garment.ClearEvents()
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

	return &UpdateGarmentResult{GarmentID: string(garment.ID)}, nil
}

var _ commands.Handler[UpdateGarmentCommand, *UpdateGarmentResult] = (*UpdateGarmentHandler)(nil)
