package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/pkg/authclient"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/pkg/tokenstore"
)

var (
	configPath string

	cfg     config.Config
	client  *authclient.Client
	manager *session.Manager
)

var rootCmd = &cobra.Command{
	Use:   "authctl",
	Short: "authctl manages a session against the auth API",
	Long: `authctl logs in and out of the auth API, persists the session token
across invocations, and inspects the current session and its permissions.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to the YAML config file")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".authkit.yaml"
	}
	return filepath.Join(home, ".authkit.yaml")
}

// setup builds the session manager every command operates on and rehydrates
// it, so commands always see the persisted session.
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.LoadFile(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.FromStrings(cfg.LogLevel, cfg.LogFormat)

	var store tokenstore.Store
	if cfg.RedisAddr != "" {
		store = tokenstore.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		store = tokenstore.NewFile(cfg.DefaultTokenPath())
	}

	client, err = authclient.New(cfg.APIBaseURL, authclient.WithTimeout(cfg.HTTPTimeout))
	if err != nil {
		return err
	}

	manager = session.New(
		session.WithClient(client),
		session.WithStore(store),
		session.WithLogger(log),
	)

	if err := manager.Rehydrate(cmd.Context()); err != nil {
		return fmt.Errorf("rehydrating session: %w", err)
	}
	return nil
}
