// Command lifeline watches the _lifeline folder of a workspace for request
// markdown files and answers them with a chat-completion API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	lifeline "github.com/lifelinehq/lifeline"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "lifeline",
		Short:         "Answer markdown requests in a _lifeline folder with an LLM",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newWatchCmd(),
		newAskCmd(),
		newCopyLatestCmd(),
		newConfigCmd(),
	)
	return root
}

// loadConfig loads the user config, falling back to defaults with a warning.
func loadConfig() *lifeline.Config {
	cfg, err := lifeline.LoadConfig()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "path", lifeline.ConfigPath(), "error", err)
		return lifeline.DefaultConfig()
	}
	return cfg
}
