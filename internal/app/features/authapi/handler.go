// internal/app/features/authapi/handler.go
package authapi

import (
	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the session endpoints: login, register, admin
// elevation, and logout.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	Sessions      *auth.SessionManager
	Members       *memberstore.Store
	AdminPassword string
}

func NewHandler(db *mongo.Database, sessions *auth.SessionManager, adminPassword string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		Sessions:      sessions,
		Members:       memberstore.New(db),
		AdminPassword: adminPassword,
	}
}
