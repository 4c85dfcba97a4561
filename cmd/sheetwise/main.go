// Command sheetwise runs the SheetWise API.
//
// @title                       SheetWise API
// @version                     1.0
// @description                 Excel upload, parsing, charting and insights backend.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/y-sudharshan/SheetWise/internal/pkg/config"
	"github.com/y-sudharshan/SheetWise/pkg/logger"
)

// app is filled by the root command before any subcommand runs.
type app struct {
	envFile string
	cfg     *config.Config
	log     zerolog.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "sheetwise:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "sheetwise",
		Short:         "SheetWise spreadsheet analytics API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "seed-admin",
			Short: "Create the configured admin account if it does not exist",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.seedAdmin(cmd.Context())
			},
		},
	)
	return root
}

// init loads the optional dotenv file, the configuration and the logger.
// Variables already set in the environment win over the file.
func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", a.envFile, err)
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "sheetwise",
	})
	return nil
}
