// internal/app/features/events/handler.go
package events

import (
	eventstore "github.com/dalemusser/chapterhub/internal/app/store/events"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the chapter event calendar.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Events *eventstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Events: eventstore.New(db),
	}
}
