package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincatalog "rentwear/internal/domain/catalog"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type GarmentRepository struct {
	col *mongo.Collection
}

func NewGarmentRepository(db *mongo.Database) *GarmentRepository {
	return &GarmentRepository{col: db.Collection("agg_garment")}
}

func (r *GarmentRepository) ByID(ctx context.Context, id domaincatalog.GarmentID) (*domaincatalog.Garment, error) {
	var doc garmentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domaincatalog.ErrGarmentNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *GarmentRepository) Save(ctx context.Context, g *domaincatalog.Garment) error {
	doc := newGarmentDocument(g)
	filter := bson.M{"_id": doc.ID, "version": g.Version}
	doc.Version = g.Version + 1
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
	g.Version = doc.Version
	return nil
}

type garmentDocument struct {
	ID             string   `bson:"_id"`
	Title          string   `bson:"title"`
	Description    string   `bson:"description"`
	Category       string   `bson:"category"`
	Sizes          []string `bson:"sizes"`
	DailyRateCents int64    `bson:"daily_rate_cents"`
	State          string   `bson:"state"`
	CreatedAt      int64    `bson:"created_at"`
	UpdatedAt      int64    `bson:"updated_at"`
	Version        int64    `bson:"version"`
}

func newGarmentDocument(g *domaincatalog.Garment) garmentDocument {
	return garmentDocument{
		ID:             string(g.ID),
		Title:          g.Title,
		Description:    g.Description,
		Category:       g.Category,
		Sizes:          g.Sizes,
		DailyRateCents: g.DailyRateCents,
		State:          string(g.State),
		CreatedAt:      g.CreatedAt.UnixMilli(),
		UpdatedAt:      g.UpdatedAt.UnixMilli(),
		Version:        g.Version,
	}
}

func (d garmentDocument) toAggregate() *domaincatalog.Garment {
	return &domaincatalog.Garment{
		ID:             domaincatalog.GarmentID(d.ID),
		Title:          d.Title,
		Description:    d.Description,
		Category:       d.Category,
		Sizes:          d.Sizes,
		DailyRateCents: d.DailyRateCents,
		State:          domaincatalog.GarmentState(d.State),
		Version:        d.Version,
		CreatedAt:      timestampToTime(d.CreatedAt),
		UpdatedAt:      timestampToTime(d.UpdatedAt),
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
