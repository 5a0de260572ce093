// internal/app/features/reports/handler.go
package reports

import (
	reportstore "github.com/dalemusser/chapterhub/internal/app/store/reports"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the report / feedback workflow.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Reports *reportstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Reports: reportstore.New(db),
	}
}
