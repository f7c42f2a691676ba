package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toolchat/toolchat/internal/dependency"
	"github.com/toolchat/toolchat/internal/shared/cmdutils"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the tools self-check without the model",
	RunE:  runDemo,
}

func runDemo(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := dependency.NewTools(cfg)
	if err != nil {
		return err
	}
	runSelfCheck(c.Context(), cmdutils.NewPrinter(c.OutOrStdout()), container.Registry())
	return nil
}
