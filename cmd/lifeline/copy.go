package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	lifeline "github.com/lifelinehq/lifeline"
	"github.com/lifelinehq/lifeline/host"
	"github.com/lifelinehq/lifeline/workflow"
)

func newCopyLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy-latest [workspace]",
		Short: "Copy the newest response file to the clipboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := workspaceRoots(args)
			if err != nil {
				return err
			}
			term := host.NewWriter(os.Stderr)

			path, err := workflow.CopyLatest(lifeline.Dir(roots[0]), host.Clipboard{})
			if err != nil {
				term.Error("Failed to copy LifeLine response: " + err.Error())
				return err
			}
			term.Info(fmt.Sprintf("Copied %s to clipboard", path))
			return nil
		},
	}
}
