package mcpserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// EndpointPath is where the streamable HTTP transport is mounted.
const EndpointPath = "/mcp"

// ServeStdio runs s over the given streams until ctx is cancelled or in is
// closed.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s)
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// ServeHTTP runs s over streamable HTTP on addr until ctx is cancelled,
// then shuts the listener down gracefully.
func ServeHTTP(ctx context.Context, s *server.MCPServer, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(EndpointPath, server.NewStreamableHTTPServer(s))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("MCP server listening", "addr", addr, "path", EndpointPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
