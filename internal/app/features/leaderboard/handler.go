// internal/app/features/leaderboard/handler.go
package leaderboard

import (
	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	winnerstore "github.com/dalemusser/chapterhub/internal/app/store/winners"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler projects the live leaderboard from the members collection,
// with trend arrows derived from the latest frozen winner snapshot.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Members *memberstore.Store
	Winners *winnerstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Members: memberstore.New(db),
		Winners: winnerstore.New(db),
	}
}
