package garments

import (
	"context"

	"rentwear/internal/app/dto"
	"rentwear/internal/app/queries"
	"rentwear/internal/app/uow"
	domaincatalog "rentwear/internal/domain/catalog"
)

const getGarmentKey = "garments.get"

type GetGarmentQuery struct {
	GarmentID string
}

func (q GetGarmentQuery) Key() string { return getGarmentKey }

type GetGarmentHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetGarmentHandler) Handle(ctx context.Context, q GetGarmentQuery) (dto.Garment, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Garment{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Garment{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	garment, err := unit.Garments().ByID(ctx, domaincatalog.GarmentID(q.GarmentID))
	if err != nil {
		return dto.Garment{}, err
	}
	cal, err := unit.Calendars().Calendar(ctx, garment.ID)
	if err != nil {
		return dto.Garment{}, err
	}
	return dto.MapGarment(garment, cal.Snapshot), nil
}

var _ queries.Handler[GetGarmentQuery, dto.Garment] = (*GetGarmentHandler)(nil)
