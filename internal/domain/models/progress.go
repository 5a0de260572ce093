// internal/domain/models/progress.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress is a per-month activity snapshot recorded by an admin.
type Progress struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Month     string             `bson:"month" json:"month"`
	Year      int                `bson:"year" json:"year"`
	Events    int                `bson:"events" json:"events"`
	Members   int                `bson:"members" json:"members"`
	Documents int                `bson:"documents" json:"documents"`
	Target    int                `bson:"target" json:"target"` // default 5

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
