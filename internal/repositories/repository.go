package repositories

import (
	"context"

	"github.com/GGlistano/backbolt/internal/models"
)

// PurchaseRepository defines the interface for purchase ledger operations.
// The ledger is append-only; there is no update or delete path.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	// ExistsByReference probes for a purchase by exact reference match. A
	// query failure is returned as an error, never folded into "not found".
	ExistsByReference(ctx context.Context, reference string) (bool, error)
}

// UpsellRepository defines the interface for upsell ledger operations, one
// collection per level 1-3.
type UpsellRepository interface {
	Create(ctx context.Context, level int, purchase *models.UpsellPurchase) error
	// ExistsByParentTxn probes the level's collection for a record tied to
	// the parent transaction. Errors propagate like ExistsByReference.
	ExistsByParentTxn(ctx context.Context, level int, parentTxn string) (bool, error)
}
