package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase represents one completed initial funnel purchase. Documents are
// append-only: never updated or deleted by this system.
type Purchase struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Nome      string             `bson:"nome" json:"nome"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Whatsapp  string             `bson:"whatsapp" json:"whatsapp"`
	Metodo    string             `bson:"metodo" json:"metodo"`
	Amount    int                `bson:"amount" json:"amount"`
	Reference string             `bson:"reference" json:"reference"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// UpsellPurchase represents one completed upsell charge at a given level.
// ParentTxn links it back to the original purchase reference.
type UpsellPurchase struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Nome      string             `bson:"nome" json:"nome"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Whatsapp  string             `bson:"whatsapp" json:"whatsapp"`
	Metodo    string             `bson:"metodo" json:"metodo"`
	Amount    int                `bson:"amount" json:"amount"`
	Reference string             `bson:"reference" json:"reference"`
	ParentTxn string             `bson:"parentTxn" json:"parentTxn"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
