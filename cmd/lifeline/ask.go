package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	lifeline "github.com/lifelinehq/lifeline"
	"github.com/lifelinehq/lifeline/generate"
	"github.com/lifelinehq/lifeline/host"
	"github.com/lifelinehq/lifeline/workflow"
)

func newAskCmd() *cobra.Command {
	var (
		system      string
		model       string
		temperature float64
	)

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Ask a single question and print the reply",
		Long: `Ask sends one prompt to the model and prints the reply as markdown.
Without a prompt argument the prompt and an optional system context are read
interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			params := lifeline.Params{
				Prompt:       strings.Join(args, " "),
				SystemPrompt: system,
				Model:        model,
			}
			if cmd.Flags().Changed("temperature") {
				params.Temperature = &temperature
			}

			// Notifications go to stderr so the reply can be piped.
			notify, err := host.NewTerminal(os.Stderr, "")
			if err != nil {
				return err
			}
			out, err := host.NewTerminal(os.Stdout, "")
			if err != nil {
				return err
			}
			prompter := host.NewPrompter(os.Stdin, os.Stderr)

			_, err = workflow.Ask(cmd.Context(), generate.NewClientFromConfig(cfg), prompter, askHost{notify, out}, params)
			return err
		},
	}
	cmd.Flags().StringVarP(&system, "system", "s", "", "system prompt (asked interactively when omitted)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model override")
	cmd.Flags().Float64VarP(&temperature, "temperature", "t", 0, "sampling temperature override")
	return cmd
}

// askHost sends notifications to one terminal and the reply document to another.
type askHost struct {
	*host.Terminal
	doc *host.Terminal
}

func (h askHost) ShowDocument(content string) error {
	return h.doc.ShowDocument(content)
}
