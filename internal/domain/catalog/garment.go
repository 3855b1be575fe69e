package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentwear/internal/domain/shared/events"
)

var (
	ErrTitleRequired   = errors.New("catalog: title is required")
	ErrDailyRate       = errors.New("catalog: daily rate must be non-negative")
	ErrSizesRequired   = errors.New("catalog: at least one size is required")
	ErrInvalidState    = errors.New("catalog: invalid state transition")
	ErrGarmentMissing  = errors.New("catalog: garment id is required")
	ErrGarmentNotFound = errors.New("catalog: garment not found")
)

type GarmentID string

type GarmentState string

const (
	GarmentDraft   GarmentState = "DRAFT"
	GarmentActive  GarmentState = "ACTIVE"
	GarmentRetired GarmentState = "RETIRED"
)

// Garment is a rentable item in the storefront catalog. Its offerable
// dates live on the availability calendar, not here.
type Garment struct {
	ID             GarmentID
	Title          string
	Description    string
	Category       string
	Sizes          []string
	DailyRateCents int64
	State          GarmentState
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id GarmentID) (*Garment, error)
	Save(ctx context.Context, garment *Garment) error
}

type CreateGarmentParams struct {
	ID             GarmentID
	Title          string
	Description    string
	Category       string
	Sizes          []string
	DailyRateCents int64
	Now            time.Time
}

func NewGarment(params CreateGarmentParams) (*Garment, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrGarmentMissing
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.DailyRateCents < 0 {
		return nil, ErrDailyRate
	}
	if len(params.Sizes) == 0 {
		return nil, ErrSizesRequired
	}

	garment := &Garment{
		ID:             params.ID,
		Title:          strings.TrimSpace(params.Title),
		Description:    strings.TrimSpace(params.Description),
		Category:       strings.TrimSpace(params.Category),
		Sizes:          append([]string(nil), params.Sizes...),
		DailyRateCents: params.DailyRateCents,
		State:          GarmentDraft,
		CreatedAt:      params.Now.UTC(),
		UpdatedAt:      params.Now.UTC(),
	}
	garment.Record(GarmentCreatedEvent{GarmentID: string(garment.ID), At: garment.CreatedAt})
	return garment, nil
}

func (g *Garment) Activate(now time.Time) error {
	if g.State == GarmentActive {
		return nil
	}
	if g.State == GarmentRetired {
		return ErrInvalidState
	}
	g.State = GarmentActive
	g.UpdatedAt = now.UTC()
	g.Record(GarmentActivatedEvent{GarmentID: string(g.ID), At: g.UpdatedAt})
	return nil
}

func (g *Garment) Retire(now time.Time) error {
	if g.State != GarmentActive {
		return ErrInvalidState
	}
	g.State = GarmentRetired
	g.UpdatedAt = now.UTC()
	g.Record(GarmentRetiredEvent{GarmentID: string(g.ID), At: g.UpdatedAt})
	return nil
}

type UpdateGarmentParams struct {
	Title          string
	Description    string
	Category       string
	Sizes          []string
	DailyRateCents int64
	Now            time.Time
}

func (g *Garment) UpdateDetails(params UpdateGarmentParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return ErrTitleRequired
	}
	if params.DailyRateCents < 0 {
		return ErrDailyRate
	}
	if len(params.Sizes) == 0 {
		return ErrSizesRequired
	}
	g.Title = strings.TrimSpace(params.Title)
	g.Description = strings.TrimSpace(params.Description)
	g.Category = strings.TrimSpace(params.Category)
	g.Sizes = append([]string(nil), params.Sizes...)
	g.DailyRateCents = params.DailyRateCents
	g.UpdatedAt = params.Now.UTC()
	g.Record(GarmentUpdatedEvent{GarmentID: string(g.ID), At: g.UpdatedAt})
	return nil
}
