package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	lifeline "github.com/lifelinehq/lifeline"
	defaults "github.com/lifelinehq/lifeline/default"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "config [get|defaults|prompt|default-prompt|validate|path]",
		Short:     "Inspect the lifeline configuration",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"get", "defaults", "prompt", "default-prompt", "validate", "path"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "get"
			if len(args) == 1 {
				action = args[0]
			}
			return runConfig(cmd.OutOrStdout(), action)
		},
	}
}

func runConfig(w io.Writer, action string) error {
	switch action {
	case "get":
		cfg, err := lifeline.LoadConfig()
		if err != nil {
			return err
		}
		return writeJSON(w, redact(cfg))

	case "defaults":
		return writeJSON(w, lifeline.DefaultConfig())

	case "prompt":
		_, err := io.WriteString(w, lifeline.LoadSystemPrompt())
		return err

	case "default-prompt":
		_, err := io.WriteString(w, defaults.DefaultPrompt)
		return err

	case "validate":
		cfg, err := lifeline.LoadConfig()
		if err != nil {
			return err
		}
		warnings := lifeline.ValidateConfig(cfg)
		if len(warnings) == 0 {
			fmt.Fprintln(w, "ok")
			return nil
		}
		for _, warn := range warnings {
			fmt.Fprintln(w, "warning:", warn)
		}
		return nil

	case "path":
		fmt.Fprintln(w, lifeline.ConfigPath())
		return nil
	}
	return fmt.Errorf("unknown config action: %s", action)
}

// redact masks the API key of a copy of cfg.
func redact(cfg *lifeline.Config) *lifeline.Config {
	out := *cfg
	if key := out.Generation.APIKey; key != "" {
		if len(key) > 8 {
			out.Generation.APIKey = key[:4] + "…" + key[len(key)-4:]
		} else {
			out.Generation.APIKey = "…"
		}
	}
	return &out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
