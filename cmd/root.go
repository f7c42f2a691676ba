// Package cmd implements the toolchat CLI using cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolchat/toolchat/internal/config"
)

const version = "0.1.0"

var (
	configPath string
	showLogs   bool
	debugLogs  bool
)

// rootCmd is the base command. Without a subcommand it starts the chat REPL.
var rootCmd = &cobra.Command{
	Use:               "toolchat",
	Short:             "Chat with a model that can look up weather and remember preferences",
	PersistentPreRunE: setupLogging,
	RunE:              runChat,
	SilenceUsage:      true,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default "+config.ConfigPath()+")")
	pf.BoolVar(&showLogs, "logs", false, "Show runtime logs")
	pf.BoolVar(&debugLogs, "debug", false, "Show debug logs")

	addChatFlags(rootCmd)

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(initCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	switch {
	case debugLogs:
		level = slog.LevelDebug
	case showLogs:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ConfigPath()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(resolvedConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
