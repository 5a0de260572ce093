// internal/domain/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses.
const (
	ReportOpen       = "open"
	ReportInProgress = "in-progress"
	ReportResolved   = "resolved"
	ReportClosed     = "closed"
)

// Report priorities. Reports are always created at PriorityMedium;
// only admins adjust it afterward.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var reportTypes = map[string]bool{
	"bug": true, "issue": true, "suggestion": true, "complaint": true, "other": true,
}

var reportStatuses = map[string]bool{
	ReportOpen: true, ReportInProgress: true, ReportResolved: true, ReportClosed: true,
}

// IsValidReportType reports whether t is a recognized report type.
func IsValidReportType(t string) bool { return reportTypes[t] }

// IsValidReportStatus reports whether s is a recognized report status.
// Transitions are not restricted to a forward-only sequence.
func IsValidReportStatus(s string) bool { return reportStatuses[s] }

// Report is a member-filed issue tracked through its own status
// workflow, independent of the submission lifecycle. Reporter identity
// is a snapshot, same as on Submission.
type Report struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReporterID    primitive.ObjectID `bson:"reporter_id" json:"reporter_id"`
	ReporterName  string             `bson:"reporter_name" json:"reporter_name"`
	ReporterEmail string             `bson:"reporter_email" json:"reporter_email"`

	Type        string `bson:"type" json:"type"` // bug | issue | suggestion | complaint | other
	Subject     string `bson:"subject" json:"subject"`
	Description string `bson:"description" json:"description"`
	RelatedTo   string `bson:"related_to,omitempty" json:"related_to,omitempty"` // free-form link to another entity's id

	Status        string     `bson:"status" json:"status"`
	Priority      string     `bson:"priority" json:"priority"`
	AdminResponse string     `bson:"admin_response,omitempty" json:"admin_response,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	ResolvedAt    *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}
