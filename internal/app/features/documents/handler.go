// internal/app/features/documents/handler.go
package documents

import (
	documentstore "github.com/dalemusser/chapterhub/internal/app/store/documents"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the chapter document archive. File content goes
// through the storage backend (local disk or S3); the documents
// collection holds metadata plus the returned id/link.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Documents *documentstore.Store
	Storage   storage.Store
}

func NewHandler(db *mongo.Database, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Documents: documentstore.New(db),
		Storage:   store,
	}
}
