package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domaincatalog "rentwear/internal/domain/catalog"
	domainorders "rentwear/internal/domain/orders"
)

const orderStateConfirmed = "CONFIRMED"

// OrderRepository reads the order collection owned by checkout. Date
// fields are passed through as stored; the availability resolver deals
// with the mixed date and timestamp formats found there.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("agg_order")}
}

func (r *OrderRepository) ConfirmedRanges(ctx context.Context, id domaincatalog.GarmentID) ([]domainorders.BookedRange, error) {
	filter := bson.M{"garment_id": string(id), "state": orderStateConfirmed}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var spans []domainorders.BookedRange
	for cursor.Next(ctx) {
		var doc orderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		spans = append(spans, domainorders.BookedRange{
			OrderID:   domainorders.OrderID(doc.ID),
			StartDate: doc.StartDate,
			EndDate:   doc.EndDate,
		})
	}
	return spans, cursor.Err()
}

type orderDocument struct {
	ID        string `bson:"_id"`
	GarmentID string `bson:"garment_id"`
	State     string `bson:"state"`
	StartDate string `bson:"start_date"`
	EndDate   string `bson:"end_date"`
}
