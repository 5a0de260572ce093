// internal/app/features/submissions/handler.go
package submissions

import (
	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	submissionstore "github.com/dalemusser/chapterhub/internal/app/store/submissions"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for achievement submissions and
// their review lifecycle. It holds the DB handle, stores, and logger
// provided by WAFFLE DBDeps / Startup.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Members     *memberstore.Store
	Submissions *submissionstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Members:     memberstore.New(db),
		Submissions: submissionstore.New(db),
	}
}
