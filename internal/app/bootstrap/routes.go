// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	authfeature "github.com/dalemusser/chapterhub/internal/app/features/authapi"
	documentsfeature "github.com/dalemusser/chapterhub/internal/app/features/documents"
	eventsfeature "github.com/dalemusser/chapterhub/internal/app/features/events"
	exportfeature "github.com/dalemusser/chapterhub/internal/app/features/export"
	healthfeature "github.com/dalemusser/chapterhub/internal/app/features/health"
	leaderboardfeature "github.com/dalemusser/chapterhub/internal/app/features/leaderboard"
	membersfeature "github.com/dalemusser/chapterhub/internal/app/features/members"
	progressfeature "github.com/dalemusser/chapterhub/internal/app/features/progress"
	reportsfeature "github.com/dalemusser/chapterhub/internal/app/features/reports"
	submissionsfeature "github.com/dalemusser/chapterhub/internal/app/features/submissions"
	winnersfeature "github.com/dalemusser/chapterhub/internal/app/features/winners"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// ChapterHub mounts the JSON API feature routers: auth, members,
// submissions, leaderboard, winners, reports, events, documents,
// progress, and export, plus the health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Storage backend for uploaded documents.
	store, err := buildStorage(appCfg)
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	// Shared limiter for the credential endpoints.
	limiter := ratelimit.New(appCfg.AuthRateLimit, appCfg.AuthRateWindow)

	db := deps.ChapterHubMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ChapterHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Serve locally stored document files. S3-backed deployments serve
	// files straight from the bucket via presigned URLs instead.
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Authentication
	authHandler := authfeature.NewHandler(db, sessionMgr, appCfg.AdminPassword, logger)
	r.Mount("/auth", authfeature.Routes(authHandler, limiter))

	// Members and achievements
	membersHandler := membersfeature.NewHandler(db, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler))

	submissionsHandler := submissionsfeature.NewHandler(db, logger)
	r.Mount("/submissions", submissionsfeature.Routes(submissionsHandler))

	// Rankings
	leaderboardHandler := leaderboardfeature.NewHandler(db, logger)
	r.Mount("/leaderboard", leaderboardfeature.Routes(leaderboardHandler))

	winnersHandler := winnersfeature.NewHandler(db, logger)
	r.Mount("/winners", winnersfeature.Routes(winnersHandler))

	// Reports
	reportsHandler := reportsfeature.NewHandler(db, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler))

	// Chapter content
	eventsHandler := eventsfeature.NewHandler(db, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	documentsHandler := documentsfeature.NewHandler(db, store, logger)
	r.Mount("/documents", documentsfeature.Routes(documentsHandler))
	r.Get("/years", documentsHandler.HandleYears)

	progressHandler := progressfeature.NewHandler(db, logger)
	r.Mount("/progress", progressfeature.Routes(progressHandler))

	// Data export
	exportHandler := exportfeature.NewHandler(db, logger)
	r.Mount("/export", exportfeature.Routes(exportHandler))

	return r, nil
}

// buildStorage constructs the configured storage backend.
func buildStorage(appCfg AppConfig) (storage.Store, error) {
	switch appCfg.StorageType {
	case "local":
		return storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
	case "s3":
		return storage.NewS3(context.Background(), storage.S3Config{
			Region: appCfg.StorageS3Region,
			Bucket: appCfg.StorageS3Bucket,
			Prefix: appCfg.StorageS3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage_type %q", appCfg.StorageType)
	}
}
