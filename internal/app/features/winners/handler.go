// internal/app/features/winners/handler.go
package winners

import (
	winnerstore "github.com/dalemusser/chapterhub/internal/app/store/winners"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the frozen monthly winner snapshots.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Winners *winnerstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Winners: winnerstore.New(db),
	}
}
