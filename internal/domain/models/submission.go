// internal/domain/models/submission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses. A submission leaves "pending" exactly once and
// never returns.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// Achievement categories shared by submissions and member achievements.
const (
	CategoryEvent        = "event"
	CategoryContribution = "contribution"
	CategoryLeadership   = "leadership"
	CategoryExcellence   = "excellence"
)

// categoryPoints are the default point values awarded per category when
// the submitter does not supply an explicit value.
var categoryPoints = map[string]int{
	CategoryEvent:        10,
	CategoryContribution: 15,
	CategoryLeadership:   20,
	CategoryExcellence:   25,
}

// categoryIcons maps each category to its display glyph.
var categoryIcons = map[string]string{
	CategoryEvent:        "🎪",
	CategoryContribution: "✍️",
	CategoryLeadership:   "🎯",
	CategoryExcellence:   "⭐",
}

// IsValidCategory reports whether c is one of the four fixed categories.
func IsValidCategory(c string) bool {
	_, ok := categoryPoints[c]
	return ok
}

// CategoryDefaultPoints returns the default point value for a category,
// falling back to 10 for anything unrecognized.
func CategoryDefaultPoints(c string) int {
	if p, ok := categoryPoints[c]; ok {
		return p
	}
	return 10
}

// CategoryIcon returns the glyph for a category, with a generic trophy
// for anything unrecognized.
func CategoryIcon(c string) string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "🏆"
}

// Submission is a member-authored achievement claim awaiting review.
//
// MemberName and MemberEmail are deliberate point-in-time snapshots
// captured when the claim is filed; they are never re-joined against
// the members collection, even if the member later changes their name.
type Submission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID    primitive.ObjectID `bson:"member_id" json:"member_id"`
	MemberName  string             `bson:"member_name" json:"member_name"`
	MemberEmail string             `bson:"member_email" json:"member_email"`

	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Category    string `bson:"category" json:"category"`
	Proof       string `bson:"proof,omitempty" json:"proof,omitempty"` // URL or free text
	Points      int    `bson:"points" json:"points"`                   // fixed at submission time

	Status       string     `bson:"status" json:"status"`
	AdminComment string     `bson:"admin_comment,omitempty" json:"admin_comment,omitempty"`
	SubmittedAt  time.Time  `bson:"submitted_at" json:"submitted_at"`
	ReviewedAt   *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	ReviewedBy   string     `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
}
