package uow

import (
	"context"

	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainorders "rentwear/internal/domain/orders"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Garments() domaincatalog.Repository
	Calendars() domainavailability.Repository
	Orders() domainorders.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
