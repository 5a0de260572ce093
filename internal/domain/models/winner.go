// internal/domain/models/winner.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinnerEntry is one member's standing frozen into a monthly snapshot.
type WinnerEntry struct {
	Rank           int                `bson:"rank,omitempty" json:"rank,omitempty"`
	MemberID       primitive.ObjectID `bson:"member_id" json:"member_id"`
	Name           string             `bson:"name" json:"name"`
	Points         int                `bson:"points" json:"points"`
	EventsAttended int                `bson:"events_attended,omitempty" json:"events_attended,omitempty"`
	Contributions  int                `bson:"contributions,omitempty" json:"contributions,omitempty"`
}

// MonthlyWinner is a manually-triggered, permanent point-in-time capture
// of a month's top performer and top three. It is never derived
// automatically and never recomputed.
type MonthlyWinner struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Month    string             `bson:"month" json:"month"`
	Year     int                `bson:"year" json:"year"`
	Winner   WinnerEntry        `bson:"winner" json:"winner"`
	TopThree []WinnerEntry      `bson:"top_three" json:"top_three"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
