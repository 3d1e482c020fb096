package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/config"
	"github.com/Stuart-0728/cqnu/internal/errors"
	"github.com/Stuart-0728/cqnu/internal/log"
	"github.com/Stuart-0728/cqnu/internal/session"
	"github.com/Stuart-0728/cqnu/internal/tui"
)

var (
	flagAPIURL   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "cqnu",
	Short: "CQNU association activity client",
	Long: `cqnu is a terminal client for the CQNU association activity platform.
Browse activities, sign up, manage your registrations, and - with the
admin role - run the association's activities and members.

Run without a subcommand to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// setupLogger configures the global logger from config. When the
// full-screen UI owns the terminal, logs go to the configured file (or
// nowhere) instead of stderr.
func setupLogger(cfg *config.Config, fullScreen bool) error {
	logCfg := log.Config{
		Level:       log.ParseLevel(cfg.Log.Level),
		Format:      log.ParseFormat(cfg.Log.Format),
		Output:      log.OutputStderr(),
		ServiceName: "cqnu",
	}

	if fullScreen {
		if cfg.Log.File == "" {
			logCfg.Level = log.LevelError
			logCfg.Output = log.OutputDiscard()
		} else {
			out, err := log.OutputFile(cfg.Log.File)
			if err != nil {
				return err
			}
			logCfg.Output = out
		}
	}

	log.SetDefaultLogger(log.New(logCfg))
	return nil
}

// newClient builds the API client from config.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL, cfg.API.Timeout())
}

// restoreSession initializes a session store from the persisted token.
func restoreSession(ctx context.Context, client *api.Client) (*session.Store, session.Snapshot) {
	store := session.NewStore(client)
	snap := store.Initialize(ctx)
	return store, snap
}

// requireLogin restores the session and fails if nobody is logged in.
func requireLogin(ctx context.Context, client *api.Client) (*session.Store, session.Snapshot, error) {
	store, snap := restoreSession(ctx, client)
	if !snap.IsLoggedIn() {
		return nil, snap, errors.NewNotLoggedInError()
	}
	return store, snap, nil
}

// requireAdmin is requireLogin plus the admin role check.
func requireAdmin(ctx context.Context, client *api.Client) (*session.Store, session.Snapshot, error) {
	store, snap, err := requireLogin(ctx, client)
	if err != nil {
		return nil, snap, err
	}
	if !snap.IsAdmin() {
		return nil, snap, errors.NewAdminRequiredError()
	}
	return store, snap, nil
}

// runInteractive starts the full-screen application.
func runInteractive(ctx context.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err := setupLogger(cfg, true); err != nil {
		return err
	}

	client := newClient(cfg)
	store := session.NewStore(client)

	if err := tui.Run(client, store); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}
