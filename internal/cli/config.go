package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pablasso/lessonplan/internal/config"
	"github.com/pablasso/lessonplan/internal/logging"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
}

func runConfig(cmd *cobra.Command, _ []string) error {
	s := config.Chat()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	row := func(k, v string) { fmt.Fprintf(w, "%s\t%s\n", k, v) }

	row(config.KeyChatProvider, s.Provider)
	row(config.KeyChatModel, s.Model)
	row(config.KeyChatBaseURL, orNone(s.BaseURL))
	row(config.KeyChatAPIKey, maskKey(s.APIKey))
	row(config.KeySaveDelay, config.SaveDelay().String())
	row(config.KeyOutputFormat, config.OutputFormat())
	row(config.KeyDebug, fmt.Sprint(config.Debug()))

	files := config.ConfigFiles()
	if len(files) == 0 {
		row("config files", "(none)")
	} else {
		row("config files", strings.Join(files, ", "))
	}
	if path, err := logging.GetLogPath(); err == nil {
		state := "off"
		if logging.Enabled() {
			state = "writing"
		}
		row("debug log", fmt.Sprintf("%s (%s)", path, state))
	}
	return w.Flush()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// maskKey shows only the last four characters of a secret.
func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 8:
		return "****"
	default:
		return "****" + key[len(key)-4:]
	}
}
