// Package cli carries the shared startup wiring for the flowboard
// commands: environment, config, logging, backend clients, and the
// signed-in board store.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"flowboard/internal/application/board"
	"flowboard/internal/domain/team"
	"flowboard/internal/infrastructure/config"
	"flowboard/internal/infrastructure/storage"
	"flowboard/internal/infrastructure/supabase"
	"flowboard/internal/shared/logger"
)

// Runtime is everything a signed-in command needs.
type Runtime struct {
	Config  *config.Config
	Logger  logger.Interface
	Client  *supabase.Client
	Storage *storage.Client
	Roster  *team.Roster
	Store   *board.Store
	Drag    *board.DragController
	Session *supabase.Session
}

// Bootstrap loads configuration, initializes logging, signs in, and builds
// the board store. Dependencies are constructed here, at the edge, and
// handed down explicitly.
func Bootstrap(ctx context.Context) (*Runtime, error) {
	// .env is optional; real environments set the variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if cfg.Auth.Email == "" || cfg.Auth.Password == "" {
		return nil, fmt.Errorf("auth.email and auth.password are required (or FLOWBOARD_AUTH_EMAIL / FLOWBOARD_AUTH_PASSWORD)")
	}

	client := supabase.NewClient(
		cfg.Supabase.URL,
		cfg.Supabase.AnonKey,
		log,
		supabase.WithTimeout(time.Duration(cfg.Supabase.TimeoutSeconds)*time.Second),
		supabase.WithAdminEmail(cfg.Auth.AdminEmail),
	)

	session, err := client.SignIn(ctx, cfg.Auth.Email, cfg.Auth.Password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	userID, userName, err := client.ResolveUser(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve user record: %w", err)
	}
	log.Infow("signed in user resolved", "id", userID, "name", userName)

	roster := team.DefaultRoster()
	if cfg.Board.TeamFile != "" {
		roster, err = team.LoadRoster(cfg.Board.TeamFile)
		if err != nil {
			return nil, fmt.Errorf("load team roster: %w", err)
		}
	}

	store := board.NewStore(client, log, userID)

	uploads := storage.NewClient(
		cfg.Supabase.URL,
		cfg.Supabase.AnonKey,
		cfg.Storage.Bucket,
		cfg.Storage.Folder,
		log,
		storage.WithTokenSource(func() string {
			if s := client.CurrentSession(); s != nil {
				return s.AccessToken
			}
			return cfg.Supabase.AnonKey
		}),
	)

	return &Runtime{
		Config:  cfg,
		Logger:  log,
		Client:  client,
		Storage: uploads,
		Roster:  roster,
		Store:   store,
		Drag:    board.NewDragController(store, log),
		Session: session,
	}, nil
}
