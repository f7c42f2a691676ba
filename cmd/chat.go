package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toolchat/toolchat/internal/dependency"
	"github.com/toolchat/toolchat/internal/schema"
	"github.com/toolchat/toolchat/internal/shared/cmdutils"
	"github.com/toolchat/toolchat/internal/shared/llmutils"
	"github.com/toolchat/toolchat/internal/tools"
)

var chatMessage string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat interactively (default command)",
	RunE:  runChat,
}

func init() {
	addChatFlags(chatCmd)
}

func addChatFlags(c *cobra.Command) {
	c.Flags().StringVarP(&chatMessage, "message", "m", "", "Send a single message and exit")
}

// exitCommands end the REPL; matching is case-insensitive.
var exitCommands = map[string]bool{
	"quit": true,
	"exit": true,
	"q":    true,
}

const demoCommand = "demo"

// maxInputLine caps one REPL line.
const maxInputLine = 1 << 20

func runChat(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmdutils.NewPrinter(c.OutOrStdout())

	container, aiErr := dependency.New(cfg)
	if aiErr != nil {
		if !errors.Is(aiErr, dependency.ErrNoAPIKey) {
			return aiErr
		}
		container, err = dependency.NewTools(cfg)
		if err != nil {
			return err
		}
	}

	if chatMessage != "" {
		if aiErr != nil {
			return aiErr
		}
		orch := container.Orchestrator()
		orch.OnToolCall(announceToolCall(out))
		out.Response(orch.Chat(ctx, chatMessage))
		return nil
	}

	out.Banner("toolchat",
		"AI can now use weather and memory tools!",
		"Try asking about weather or telling it your preferences",
		"Type 'demo' to test the tools, 'quit' to exit",
	)

	demo := func() { runSelfCheck(ctx, out, container.Registry()) }
	demo()

	if aiErr != nil {
		out.Warn("AI setup failed: %v", aiErr)
		out.Info("Make sure you have:")
		out.Info("1. Created .env file with DEEPSEEK_API_KEY")
		out.Info("2. Or run 'toolchat init' and set provider.apiKey in %s", resolvedConfigPath())
		return nil
	}
	out.Info("\nAI initialized with tools!")

	orch := container.Orchestrator()
	orch.OnToolCall(announceToolCall(out))
	return runREPL(ctx, c.InOrStdin(), out, orch.Chat, demo)
}

// runREPL reads lines from in until EOF, an exit command or cancellation.
// Empty lines are ignored; "demo" runs the self-check instead of chatting.
func runREPL(ctx context.Context, in io.Reader, out *cmdutils.Printer, chat func(context.Context, string) string, demo func()) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxInputLine)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		out.Prompt()

		var line string
		var ok bool
		select {
		case line, ok = <-lines:
		case <-ctx.Done():
			ok = false
		}
		if !ok {
			select {
			case err := <-readErr:
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			default:
			}
			out.Info("\nGoodbye!")
			return nil
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case exitCommands[strings.ToLower(line)]:
			out.Info("Goodbye!")
			return nil
		case strings.EqualFold(line, demoCommand):
			demo()
			continue
		}

		out.Response(chat(ctx, line))
	}
}

func announceToolCall(out *cmdutils.Printer) func(string, schema.ToolArgs) {
	return func(name string, args schema.ToolArgs) {
		out.ToolCall(llmutils.ToolHint(name, args))
	}
}

// runSelfCheck runs the tools self-check and explains a weather failure.
func runSelfCheck(ctx context.Context, out *cmdutils.Printer, reg *tools.Registry) {
	out.Info("\n=== Tools Demo ===")
	if tools.SelfCheck(ctx, reg, out.Writer()).WeatherFailed() {
		out.Warn("Weather lookup failed; you may not have an internet connection")
	}
}
