package mongodb

import (
	"context"
	"time"

	"github.com/GGlistano/backbolt/internal/models"
	"github.com/GGlistano/backbolt/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// purchaseCollection is the original collection name and part of the
// persisted layout; existing documents depend on it.
const purchaseCollection = "compras"

// PurchaseRepository implements the repositories.PurchaseRepository interface
type PurchaseRepository struct {
	collection *mongo.Collection
}

// NewPurchaseRepository creates a new PurchaseRepository
func NewPurchaseRepository(db *mongo.Database) repositories.PurchaseRepository {
	return &PurchaseRepository{
		collection: db.Collection(purchaseCollection),
	}
}

// Create appends a purchase record. The caller is responsible for supplying a
// unique reference; there is no dedup check on this path.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, purchase)
	return err
}

// ExistsByReference reports whether a purchase with the exact reference exists
func (r *PurchaseRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	opts := options.Count().SetLimit(1)
	count, err := r.collection.CountDocuments(ctx, bson.M{"reference": reference}, opts)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
