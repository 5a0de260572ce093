// internal/app/features/export/handler.go
package export

import (
	"github.com/dalemusser/chapterhub/internal/app/features/leaderboard"
	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	submissionstore "github.com/dalemusser/chapterhub/internal/app/store/submissions"
	winnerstore "github.com/dalemusser/chapterhub/internal/app/store/winners"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler produces CSV and JSON exports of the chapter's data. The
// JSON form carries the same rows plus headers and a filename so the
// client can render them into a PDF.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Members     *memberstore.Store
	Submissions *submissionstore.Store
	Winners     *winnerstore.Store
	Leaderboard *leaderboard.Handler
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Members:     memberstore.New(db),
		Submissions: submissionstore.New(db),
		Winners:     winnerstore.New(db),
		Leaderboard: leaderboard.NewHandler(db, logger),
	}
}
