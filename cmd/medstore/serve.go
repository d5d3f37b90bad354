package main

import (
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/medstore/internal/app"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.cfg.Validate(); err != nil {
				return c.fail("config_invalid", err)
			}
			fxApp := app.New(c.cfg)
			if err := fxApp.Err(); err != nil {
				return c.fail("startup_failed", err)
			}
			fxApp.Run()
			return nil
		},
	}
}
