package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainorders "rentwear/internal/domain/orders"
	"rentwear/internal/domain/shared/datekey"
)

// CalendarRepository stores the admin-owned date sets and re-derives
// the booked set from confirmed orders on every load. Persisted dates
// are parsed strictly: a corrupt value in our own collection is a bug,
// not input to be tolerated.
type CalendarRepository struct {
	col    *mongo.Collection
	orders domainorders.Repository
	log    *slog.Logger
}

func NewCalendarRepository(db *mongo.Database, orders domainorders.Repository, log *slog.Logger) *CalendarRepository {
	return &CalendarRepository{col: db.Collection("agg_calendar"), orders: orders, log: log}
}

func (r *CalendarRepository) Calendar(ctx context.Context, id domaincatalog.GarmentID) (*domainavailability.ProductCalendar, error) {
	var doc calendarDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domaincatalog.ErrGarmentNotFound
		}
		return nil, err
	}
	cal, err := doc.toAggregate()
	if err != nil {
		return nil, err
	}

	spans, err := r.orders.ConfirmedRanges(ctx, id)
	if err != nil {
		return nil, err
	}
	booked := domainavailability.DeriveBooked(spans, r.log)
	cal.Snapshot = domainavailability.Reconcile(cal.Snapshot, booked)
	return cal, nil
}

func (r *CalendarRepository) Save(ctx context.Context, cal *domainavailability.ProductCalendar) error {
	doc := newCalendarDocument(cal)
	filter := bson.M{"_id": doc.ID, "version": cal.Version}
	doc.Version = cal.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	cal.Version = doc.Version
	return nil
}

// calendarDocument persists available and excluded only. Booked is a
// view over the order collection and never written here.
type calendarDocument struct {
	ID             string   `bson:"_id"`
	AvailableDates []string `bson:"available_dates"`
	ExcludedDates  []string `bson:"excluded_dates"`
	Version        int64    `bson:"version"`
}

func newCalendarDocument(cal *domainavailability.ProductCalendar) calendarDocument {
	return calendarDocument{
		ID:             string(cal.GarmentID),
		AvailableDates: keysToStrings(cal.Snapshot.Available.List()),
		ExcludedDates:  keysToStrings(cal.Snapshot.Excluded.List()),
		Version:        cal.Version,
	}
}

func (d calendarDocument) toAggregate() (*domainavailability.ProductCalendar, error) {
	available, err := parseKeys(d.AvailableDates)
	if err != nil {
		return nil, fmt.Errorf("calendar %s available dates: %w", d.ID, err)
	}
	excluded, err := parseKeys(d.ExcludedDates)
	if err != nil {
		return nil, fmt.Errorf("calendar %s excluded dates: %w", d.ID, err)
	}
	return &domainavailability.ProductCalendar{
		GarmentID: domaincatalog.GarmentID(d.ID),
		Snapshot: domainavailability.Snapshot{
			Available: available,
			Excluded:  excluded,
			Booked:    datekey.NewSet(),
		},
		Version: d.Version,
	}, nil
}

func parseKeys(values []string) (datekey.DateSet, error) {
	set := datekey.NewSet()
	for _, v := range values {
		d, err := datekey.Parse(v)
		if err != nil {
			return nil, err
		}
		set.Add(d)
	}
	return set, nil
}

func keysToStrings(keys []datekey.DateKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
