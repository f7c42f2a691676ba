package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toolchat/toolchat/internal/dependency"
	"github.com/toolchat/toolchat/internal/mcpserver"
	"github.com/toolchat/toolchat/internal/shared/llmutils"
)

var (
	serveTransport string
	serveAddr      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the tools over MCP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveTransport, "transport", "t", "stdio", "Transport: stdio or http")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address for the http transport (default from config)")
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := dependency.NewTools(cfg)
	if err != nil {
		return err
	}

	s := mcpserver.New(mcpserver.Deps{
		Registry: container.Registry(),
		Store:    container.Store(),
		Version:  version,
	})

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch serveTransport {
	case "stdio":
		slog.Info("MCP server on stdio")
		return mcpserver.ServeStdio(ctx, s, c.InOrStdin(), c.OutOrStdout())
	case "http":
		addr := llmutils.StringOrDefault(serveAddr, container.Config().MCP.Addr)
		fmt.Fprintf(c.ErrOrStderr(), "MCP server listening on http://%s%s\n", addr, mcpserver.EndpointPath)
		return mcpserver.ServeHTTP(ctx, s, addr)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", serveTransport)
	}
}
