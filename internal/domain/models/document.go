// internal/domain/models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var documentCategories = map[string]bool{
	"report": true, "document": true, "data": true,
}

// IsValidDocumentCategory reports whether c is a recognized category.
func IsValidDocumentCategory(c string) bool { return documentCategories[c] }

// Document is metadata for a stored file. The file bytes live in the
// storage backend; only the returned id/link are persisted here.
type Document struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Type       string             `bson:"type" json:"type"` // e.g. "PDF"
	UploadDate time.Time          `bson:"upload_date" json:"upload_date"`
	Size       string             `bson:"size" json:"size"` // human-readable, e.g. "1.25 MB"
	Category   string             `bson:"category" json:"category"`
	Year       int                `bson:"year" json:"year"`

	FileID     string `bson:"file_id" json:"file_id"`
	FileLink   string `bson:"file_link" json:"file_link"`
	UploadedBy string `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
