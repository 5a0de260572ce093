// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses.
const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

var eventTypes = map[string]bool{
	"workshop": true, "seminar": true, "meeting": true,
	"competition": true, "social": true, "other": true,
}

// IsValidEventType reports whether t is a recognized event type.
func IsValidEventType(t string) bool { return eventTypes[t] }

// Event is a calendar entry. No state machine beyond the status label;
// status is set from the event date at creation.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	EndDate     *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Time        string             `bson:"time,omitempty" json:"time,omitempty"`
	Location    string             `bson:"location" json:"location"`
	Type        string             `bson:"type" json:"type"`
	Status      string             `bson:"status" json:"status"`

	RegistrationLink    string `bson:"registration_link,omitempty" json:"registration_link,omitempty"`
	MaxParticipants     int    `bson:"max_participants,omitempty" json:"max_participants,omitempty"`
	CurrentParticipants int    `bson:"current_participants" json:"current_participants"`

	Organizer string `bson:"organizer" json:"organizer"`
	IsPublic  bool   `bson:"is_public" json:"is_public"`
	Year      int    `bson:"year" json:"year"`
	CreatedBy string `bson:"created_by,omitempty" json:"created_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
