// Package setup wires configuration into a ready dependency graph.
package setup

import (
	"fmt"

	"github.com/aviationlaunchpad/launchpad/internal/config"
	"github.com/aviationlaunchpad/launchpad/internal/content"
	"github.com/aviationlaunchpad/launchpad/internal/handler"
	"github.com/aviationlaunchpad/launchpad/internal/identity"
	"github.com/aviationlaunchpad/launchpad/internal/jwt"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
	"github.com/aviationlaunchpad/launchpad/internal/middleware"
	"github.com/aviationlaunchpad/launchpad/internal/service"
	"github.com/aviationlaunchpad/launchpad/internal/storage/localfs"
	"github.com/aviationlaunchpad/launchpad/internal/storage/pg"
)

// store is the union of what both persistence strategies provide.
type store interface {
	service.AccountStorage
	service.ForumStorage
	Cleanup() error
}

type Dependencies struct {
	Config         *config.Config
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth

	// StorePinger is nil for the local strategy, which has nothing to probe.
	StorePinger handler.Pinger

	store store
}

// Cleanup releases the storage strategy's resources.
func (d *Dependencies) Cleanup() error {
	return d.store.Cleanup()
}

// New builds the full dependency graph. Exactly one storage strategy is
// selected from config for the lifetime of the process.
func New(cfg *config.Config) (*Dependencies, error) {
	var (
		st     store
		pinger handler.Pinger
	)
	switch cfg.Public.Forum.Storage {
	case config.ForumStoragePostgres:
		pgStorage, err := pg.New(cfg.Private.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to set up postgres storage: %w", err)
		}
		st = pgStorage
		pinger = pgStorage
	case config.ForumStorageLocal:
		localStorage, err := localfs.New(cfg.Public.Forum.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to set up local storage: %w", err)
		}
		st = localStorage
	default:
		return nil, fmt.Errorf("unknown forum storage %q", cfg.Public.Forum.Storage)
	}
	logger.Log.Info("storage strategy selected", "storage", cfg.Public.Forum.Storage)

	catalog, err := content.Load()
	if err != nil {
		st.Cleanup()
		return nil, fmt.Errorf("failed to load content catalogs: %w", err)
	}

	verifier := identity.NewVerifier(cfg.Private.Assertion)
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	authService := service.NewAuth(st, verifier)
	forumService := service.NewForum(st, service.ForumLimits{
		TitleMaxLen: cfg.Public.Forum.TitleMaxLen,
		BodyMaxLen:  cfg.Public.Forum.BodyMaxLen,
		ReplyMaxLen: cfg.Public.Forum.ReplyMaxLen,
	})

	h := handler.New(authService, forumService, catalog, jwtService, cfg.Public.SecureCookies, cfg.JwtTTL())

	return &Dependencies{
		Config:         cfg,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
		StorePinger:    pinger,
		store:          st,
	}, nil
}
