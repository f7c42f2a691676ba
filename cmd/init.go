package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolchat/toolchat/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runInit,
}

func runInit(c *cobra.Command, _ []string) error {
	w := c.OutOrStdout()
	cfgPath := resolvedConfigPath()

	if _, err := os.Stat(cfgPath); err == nil {
		existing, err := config.LoadFile(cfgPath)
		if err != nil {
			return err
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Created config at %s\n", cfgPath)
	}

	fmt.Fprintln(w, "\ntoolchat is ready!")
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  1. Put %s=<key> in .env, or set provider.apiKey in %s\n", config.EnvAPIKey, cfgPath)
	fmt.Fprintln(w, "     Get one at: https://platform.deepseek.com/api_keys")
	fmt.Fprintln(w, "  2. Chat: toolchat chat")
	return nil
}
