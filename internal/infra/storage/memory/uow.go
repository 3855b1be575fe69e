package memory

import (
	"context"
	"errors"

	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainorders "rentwear/internal/domain/orders"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	GarmentsRepo  domaincatalog.Repository
	CalendarsRepo domainavailability.Repository
	OrdersRepo    domainorders.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided but
// the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.GarmentsRepo == nil || f.CalendarsRepo == nil || f.OrdersRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		garments:  f.GarmentsRepo,
		calendars: f.CalendarsRepo,
		orders:    f.OrdersRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	garments  domaincatalog.Repository
	calendars domainavailability.Repository
	orders    domainorders.Repository
}

func (u *Unit) Garments() domaincatalog.Repository {
	return u.garments
}

func (u *Unit) Calendars() domainavailability.Repository {
	return u.calendars
}

func (u *Unit) Orders() domainorders.Repository {
	return u.orders
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}
