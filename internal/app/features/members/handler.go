// internal/app/features/members/handler.go
package members

import (
	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Members.
// It holds the DB handle, stores, and logger provided by WAFFLE DBDeps / Startup.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Members *memberstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Members: memberstore.New(db),
	}
}
