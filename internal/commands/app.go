package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/demobank/internal/auth"
	"github.com/cleared-dev/demobank/internal/bank"
	"github.com/cleared-dev/demobank/internal/config"
	"github.com/cleared-dev/demobank/internal/logger"
	"github.com/cleared-dev/demobank/internal/storage"
	"github.com/cleared-dev/demobank/internal/storage/postgres"
)

const defaultConfigFile = "demobank.yaml"

// app is the wiring every data command runs against.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	dataDir string
	numbers *bank.Registry
	store   *auth.Store
	close   func()
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	if err := validateForCLI(cfg); err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.DevMode()).Level(level)

	a := &app{
		cfg:     cfg,
		log:     log,
		dataDir: cfg.Storage.Dir,
		numbers: bank.NewRegistry(),
		close:   func() {},
	}

	kv, err := a.openKV(cmd.Context())
	if err != nil {
		return nil, err
	}
	a.store = auth.NewStore(kv, a.numbers, &a.log, auth.WithKeys(cfg.Keys.Users, cfg.Keys.Session))
	return a, nil
}

var errMemoryBackend = errors.New("the memory backend keeps no state between commands, use file or postgres")

// validateForCLI is config.Validate plus the backends a one-shot process can
// use. Each command is its own process, so memory storage would lose every
// write on exit.
func validateForCLI(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Storage.Backend == config.BackendMemory {
		return errMemoryBackend
	}
	return nil
}

// loadConfig reads the config file. A missing file is only an error when
// --config was given explicitly. A relative storage dir is resolved against
// the config file's directory.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	path := opts.configPath
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		path = ""
		cfg, err = config.Load("")
	}
	if err != nil {
		return nil, err
	}

	switch {
	case opts.dataDir != "":
		cfg.Storage.Dir = opts.dataDir
	case path != "" && !filepath.IsAbs(cfg.Storage.Dir):
		cfg.Storage.Dir = filepath.Join(filepath.Dir(path), cfg.Storage.Dir)
	}
	return cfg, nil
}

func (a *app) openKV(ctx context.Context) (storage.KV, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendPostgres:
		pg, err := postgres.Open(ctx, a.cfg.Storage.PostgresURL, &a.log)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		a.close = pg.Close
		return pg, nil
	default:
		return storage.NewFileStore(a.dataDir, &a.log)
	}
}

// sessionUser returns the logged-in user or a friendly error.
func (a *app) sessionUser(ctx context.Context) (*bank.User, error) {
	u, err := a.store.RequireSessionUser(ctx)
	if errors.Is(err, auth.ErrNoSession) {
		return nil, errors.New("not logged in, run `demobank user login <name>` first")
	}
	return u, err
}

// withSessionUser loads the session user, runs fn and saves the user if fn
// succeeds.
func withSessionUser(cmd *cobra.Command, opts *rootOptions, fn func(a *app, u *bank.User) error) error {
	return runAsSessionUser(cmd, opts, true, fn)
}

// viewSessionUser is withSessionUser for commands that change nothing.
func viewSessionUser(cmd *cobra.Command, opts *rootOptions, fn func(a *app, u *bank.User) error) error {
	return runAsSessionUser(cmd, opts, false, fn)
}

func runAsSessionUser(cmd *cobra.Command, opts *rootOptions, save bool, fn func(a *app, u *bank.User) error) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	u, err := a.sessionUser(ctx)
	if err != nil {
		return err
	}
	if err := fn(a, u); err != nil {
		return err
	}
	if !save {
		return nil
	}
	return a.store.SaveUser(ctx, u)
}
