package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/medstore/internal/app"
	"github.com/Skotchmaster/medstore/internal/config"
)

type cli struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "medstore",
		Short:         "Online pharmacy storefront API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.log = app.NewLogger(cfg)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "config/config.yaml", "yaml config file, env variables override it")

	root.AddCommand(c.serveCmd(), c.migrateCmd(), c.createAdminCmd(), c.smokeCmd())
	return root
}

// fail logs err under the command's event name and hands it back to cobra.
func (c *cli) fail(event string, err error) error {
	if c.log != nil {
		c.log.Error(event, "error", err)
	}
	return err
}
