package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rest1/board/internal/config"
	httpapp "github.com/rest1/board/internal/http"
	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/logging"
	"github.com/rest1/board/internal/member"
	"github.com/rest1/board/internal/post"
	"github.com/rest1/board/internal/seed"
	"github.com/rest1/board/internal/store"
	"github.com/rest1/board/internal/store/memory"
	"github.com/rest1/board/internal/store/sqlite"
)

const (
	addrFlag  = "addr"
	dbFlag    = "db"
	storeFlag = "store"
)

// Server flags override the BOARD_* environment when set.
var serverFlags = map[string]cobraflags.Flag{
	addrFlag: &cobraflags.StringFlag{
		Name:  addrFlag,
		Value: "",
		Usage: "Listen address (overrides BOARD_ADDR)",
	},
	dbFlag: &cobraflags.StringFlag{
		Name:  dbFlag,
		Value: "",
		Usage: "SQLite database path (overrides BOARD_DB)",
	},
	storeFlag: &cobraflags.StringFlag{
		Name:  storeFlag,
		Value: "",
		Usage: "Store backend, sqlite or memory (overrides BOARD_STORE)",
	},
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the board API server",
		Long: `Start the board API server.

Environment:
  BOARD_ADDR              Listen address (default :8080, or :$PORT)
  BOARD_STORE             sqlite or memory (default sqlite)
  BOARD_DB                SQLite database path (default board.db)
  BOARD_BASE_PATH         Prefix for API routes, e.g. /api/v1
  BOARD_LANG              Message language, en or ko (default en)
  BOARD_LOG_LEVEL         Log level (default info)
  BOARD_LOG_FORMAT        text or json (default text)
  BOARD_SEED              Load the base data into an empty store
  BOARD_CORS_ORIGINS      Comma separated allowed origins (default *)
  BOARD_SHUTDOWN_TIMEOUT  Graceful shutdown timeout (default 5s)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cobraflags.RegisterMap(cmd, serverFlags)
	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the base members, posts and comments into the configured store",
		Long: `Load the base members, posts and comments into the store configured by
the BOARD_* environment. Members are skipped when any exist, and so are
posts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadServerConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			tr := i18n.New(cfg.Lang)
			return seed.Run(cmd.Context(), member.NewService(st, tr), post.NewService(st, tr), log)
		},
	}
	return cmd
}

func loadServerConfig() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if v := serverFlags[addrFlag].GetString(); v != "" {
		cfg.Addr = v
	}
	if v := serverFlags[dbFlag].GetString(); v != "" {
		cfg.DBPath = v
	}
	if v := serverFlags[storeFlag].GetString(); v != "" {
		cfg.Store = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memory.New(), nil
	default:
		st, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open db %s: %w", cfg.DBPath, err)
		}
		return st, nil
	}
}

func runServe(ctx context.Context) error {
	cfg, log, err := loadServerConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	server, err := httpapp.NewServer(st, cfg, log)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}
	if cfg.Seed {
		if err := seed.Run(ctx, server.Members(), server.Posts(), log); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":      cfg.Addr,
			"store":     cfg.Store,
			"base_path": cfg.BasePath,
			"lang":      cfg.Lang,
		}).Info("board listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
