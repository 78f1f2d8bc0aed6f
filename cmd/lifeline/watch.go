package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	lifeline "github.com/lifelinehq/lifeline"
	"github.com/lifelinehq/lifeline/generate"
	"github.com/lifelinehq/lifeline/host"
	"github.com/lifelinehq/lifeline/watch"
	"github.com/lifelinehq/lifeline/workflow"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [workspace...]",
		Short: "Watch workspace _lifeline folders and answer new request files",
		Long: `Watch creates a _lifeline folder in each workspace (default: the current
directory) and answers every new _lifeline-<name>.md file by writing
_lifeline-response-<name>.md next to it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := workspaceRoots(args)
			if err != nil {
				return err
			}

			cfg := loadConfig()
			for _, w := range lifeline.ValidateConfig(cfg) {
				slog.Warn("config", "warning", w)
			}

			term, err := host.NewTerminal(os.Stdout, lifeline.ResolveEditor(cfg))
			if err != nil {
				return err
			}
			client := generate.NewClientFromConfig(cfg)

			g, ctx := errgroup.WithContext(cmd.Context())
			for _, root := range roots {
				wf := workflow.NewFromConfig(root, cfg, client, term, host.Clipboard{})
				if err := wf.Init(); err != nil {
					wf.Close()
					return err
				}
				watcher, err := watch.New(wf.Dir())
				if err != nil {
					wf.Close()
					return fmt.Errorf("watch %s: %w", wf.Dir(), err)
				}
				slog.Info("file watcher registered", "workspace", root, "dir", wf.Dir())

				g.Go(func() error {
					defer wf.Close()
					defer watcher.Close()
					wf.Run(ctx, watcher.Events())
					return nil
				})
			}

			slog.Info("ready")
			return g.Wait()
		},
	}
}

// workspaceRoots returns absolute workspace roots, defaulting to the current directory.
func workspaceRoots(args []string) ([]string, error) {
	if len(args) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("LifeLine requires a workspace to function: %w", err)
		}
		args = []string{cwd}
	}

	roots := make([]string, 0, len(args))
	seen := make(map[string]bool)
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("not a directory: %s", arg)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		roots = append(roots, abs)
	}
	return roots, nil
}
