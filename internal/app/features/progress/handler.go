// internal/app/features/progress/handler.go
package progress

import (
	progressstore "github.com/dalemusser/chapterhub/internal/app/store/progress"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the monthly progress snapshots admins record for the
// chapter dashboard.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Progress *progressstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Progress: progressstore.New(db),
	}
}
