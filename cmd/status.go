package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolchat/toolchat/internal/memory"
	"github.com/toolchat/toolchat/internal/providers"
	"github.com/toolchat/toolchat/internal/tools"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show toolchat status",
	RunE:  runStatus,
}

func runStatus(c *cobra.Command, _ []string) error {
	w := c.OutOrStdout()
	cfgPath := resolvedConfigPath()

	fmt.Fprintln(w, "toolchat status")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Config:    %s %s\n", cfgPath, mark(cfgPath))

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "  (could not load config: %v)\n", err)
		return nil
	}

	label := cfg.ProviderName()
	if spec := providers.FindByName(label); spec != nil {
		label = spec.Label()
	}
	key := "(not set, export " + cfg.APIKeyEnv() + ")"
	if cfg.Provider.APIKey != "" {
		key = "✓"
	}
	fmt.Fprintf(w, "Provider:  %s %s\n", label, key)
	fmt.Fprintf(w, "Model:     %s\n", cfg.Agent.Model)
	fmt.Fprintf(w, "Tools:     %d\n", len(tools.Advertised()))

	fmt.Fprintf(w, "Memory:    %s %s\n", cfg.Store.Path, mark(cfg.Store.Path))
	if _, err := os.Stat(cfg.Store.Path); err == nil {
		store := memory.Open(cfg.Store.Path)
		fmt.Fprintf(w, "  preferences:   %d categories\n", len(store.Preferences()))
		fmt.Fprintf(w, "  conversations: %d\n", len(store.Conversations()))
	}
	return nil
}

func mark(path string) string {
	if _, err := os.Stat(path); err == nil {
		return "✓"
	}
	return "✗"
}
