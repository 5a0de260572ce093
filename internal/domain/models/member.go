// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Achievement is an earned-credit record embedded on a Member.
//
// NOTE:
//   - Achievements are append-only. They are written by the approval
//     engine (submission id becomes the achievement id) or by an admin
//     manual award; nothing else mutates the array.
type Achievement struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	Category    string    `bson:"category" json:"category"` // event | contribution | leadership | excellence
	Icon        string    `bson:"icon" json:"icon"`
}

// Member represents a chapter member (or admin).
//
// Points, eventsAttended, and contributions are cumulative counters
// owned by the approval engine; profile fields are owned by the member.
// Rank is never stored — the leaderboard derives it at read time.
type Member struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // unique, lowercased
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	ProfileImage string             `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Branch       string             `bson:"branch" json:"branch"`
	Year         string             `bson:"year" json:"year"` // cohort label, e.g. "3rd Year"
	JoinYear     int                `bson:"join_year" json:"join_year"`

	Points         int           `bson:"points" json:"points"`
	EventsAttended int           `bson:"events_attended" json:"events_attended"`
	Contributions  int           `bson:"contributions" json:"contributions"`
	Achievements   []Achievement `bson:"achievements" json:"achievements"`

	Role     string `bson:"role" json:"role"` // member | admin
	IsActive bool   `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Member roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)
