package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"riftcoach/internal/config"
	"riftcoach/internal/logger"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgPath string
	cfg     *config.Config
)

func main() {
	root := &cobra.Command{
		Use:           "riftcoach",
		Short:         "Deterministic pre-game coaching pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
			logFile, err := setupLogOutput(cfg.Log.Path)
			if err != nil {
				return err
			}
			if logFile != nil {
				cobra.OnFinalize(func() { logFile.Close() })
			}
			logger.SetLevel(cfg.Log.Level)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", os.Getenv("RIFTCOACH_CONFIG"),
		"path to config file (defaults apply when empty)")

	root.AddCommand(
		newCoachCmd(),
		newIngestCmd(),
		newServeCmd(),
		newWatchCmd(),
		newSearchCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the riftcoach version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "riftcoach", version)
		},
	}
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}
