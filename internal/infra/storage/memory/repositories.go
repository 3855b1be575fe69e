package memory

import (
	"context"
	"log/slog"
	"sync"

	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainorders "rentwear/internal/domain/orders"
)

// GarmentRepository is an in-memory implementation for demo purposes.
type GarmentRepository struct {
	mu    sync.RWMutex
	items map[domaincatalog.GarmentID]*domaincatalog.Garment
}

// NewGarmentRepository builds an empty repository.
func NewGarmentRepository() *GarmentRepository {
	return &GarmentRepository{
		items: make(map[domaincatalog.GarmentID]*domaincatalog.Garment),
	}
}

// ByID returns a garment or catalog.ErrGarmentNotFound.
func (r *GarmentRepository) ByID(ctx context.Context, id domaincatalog.GarmentID) (*domaincatalog.Garment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	garment, ok := r.items[id]
	if !ok {
		return nil, domaincatalog.ErrGarmentNotFound
	}
	return garment, nil
}

// Save stores/updates a garment entry.
func (r *GarmentRepository) Save(ctx context.Context, garment *domaincatalog.Garment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	garment.Version++
	r.items[garment.ID] = garment
	return nil
}

// OrderRepository keeps confirmed order spans in memory. Spans are
// seeded by fixtures or tests; nothing in this service writes orders.
type OrderRepository struct {
	mu    sync.RWMutex
	spans map[domaincatalog.GarmentID][]domainorders.BookedRange
}

// NewOrderRepository builds an empty order book.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		spans: make(map[domaincatalog.GarmentID][]domainorders.BookedRange),
	}
}

// ConfirmedRanges returns a copy of the confirmed spans for a garment.
func (r *OrderRepository) ConfirmedRanges(ctx context.Context, id domaincatalog.GarmentID) ([]domainorders.BookedRange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spans := r.spans[id]
	out := make([]domainorders.BookedRange, len(spans))
	copy(out, spans)
	return out, nil
}

// AddConfirmed registers a confirmed order span.
func (r *OrderRepository) AddConfirmed(id domaincatalog.GarmentID, span domainorders.BookedRange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans[id] = append(r.spans[id], span)
}

// CalendarRepository keeps availability calendars in memory. When an
// order repository is attached every load reconciles the snapshot
// against the current confirmed spans.
type CalendarRepository struct {
	mu        sync.Mutex
	calendars map[domaincatalog.GarmentID]*domainavailability.ProductCalendar
	orders    domainorders.Repository
	log       *slog.Logger
}

// NewCalendarRepository returns a repository initialized with empty calendars.
func NewCalendarRepository(orders domainorders.Repository, log *slog.Logger) *CalendarRepository {
	return &CalendarRepository{
		calendars: make(map[domaincatalog.GarmentID]*domainavailability.ProductCalendar),
		orders:    orders,
		log:       log,
	}
}

// Calendar retrieves an availability calendar, lazily creating it.
func (r *CalendarRepository) Calendar(ctx context.Context, id domaincatalog.GarmentID) (*domainavailability.ProductCalendar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cal, ok := r.calendars[id]
	if !ok {
		cal = domainavailability.NewCalendar(id)
		r.calendars[id] = cal
	}
	if r.orders != nil {
		spans, err := r.orders.ConfirmedRanges(ctx, id)
		if err != nil {
			return nil, err
		}
		booked := domainavailability.DeriveBooked(spans, r.log)
		cal.Snapshot = domainavailability.Reconcile(cal.Snapshot, booked)
	}
	return cal, nil
}

// Save persists a calendar snapshot.
func (r *CalendarRepository) Save(ctx context.Context, cal *domainavailability.ProductCalendar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cal.Version++
	r.calendars[cal.GarmentID] = cal
	return nil
}
