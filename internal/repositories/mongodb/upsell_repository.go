package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/GGlistano/backbolt/internal/models"
	"github.com/GGlistano/backbolt/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsellRepository implements the repositories.UpsellRepository interface.
// Each upsell level writes into its own collection (upsell1_compras,
// upsell2_compras, upsell3_compras), matching the persisted layout.
type UpsellRepository struct {
	db *mongo.Database
}

// NewUpsellRepository creates a new UpsellRepository
func NewUpsellRepository(db *mongo.Database) repositories.UpsellRepository {
	return &UpsellRepository{db: db}
}

func (r *UpsellRepository) collectionFor(level int) (*mongo.Collection, error) {
	if level < 1 || level > 3 {
		return nil, fmt.Errorf("invalid upsell level: %d", level)
	}
	return r.db.Collection(fmt.Sprintf("upsell%d_compras", level)), nil
}

// Create appends an upsell record into the level's collection
func (r *UpsellRepository) Create(ctx context.Context, level int, purchase *models.UpsellPurchase) error {
	collection, err := r.collectionFor(level)
	if err != nil {
		return err
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now()
	}
	_, err = collection.InsertOne(ctx, purchase)
	return err
}

// ExistsByParentTxn reports whether the level already holds a record for the
// parent transaction. This is the pre-check behind the at-most-one-per-level
// invariant; it is best-effort under concurrent redemptions.
func (r *UpsellRepository) ExistsByParentTxn(ctx context.Context, level int, parentTxn string) (bool, error) {
	collection, err := r.collectionFor(level)
	if err != nil {
		return false, err
	}
	opts := options.Count().SetLimit(1)
	count, err := collection.CountDocuments(ctx, bson.M{"parentTxn": parentTxn}, opts)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
