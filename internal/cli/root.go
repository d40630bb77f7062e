package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pablasso/lessonplan/internal/chat"
	"github.com/pablasso/lessonplan/internal/config"
	"github.com/pablasso/lessonplan/internal/lesson"
	"github.com/pablasso/lessonplan/internal/logging"
	"github.com/pablasso/lessonplan/internal/tui"
	"github.com/pablasso/lessonplan/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runTUI starts the interactive editor. Replaced in tests.
var runTUI = tui.Run

// NewRootCmd builds the lessonplan command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lessonplan",
		Short: "Draft lesson plans with an assistant at your side",
		Long: `lessonplan is a terminal editor for lesson plans. Fill in a title,
description, date and tags on the left; ask the assistant for ideas on the right.

Run without a subcommand to open the editor.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runEditor,
	}

	flags := cmd.PersistentFlags()
	flags.Bool("debug", false, "write a debug log to ~/.lessonplan/debug.log")
	flags.String("provider", "", "chat backend: openai, claude, demo, or none")
	flags.String("model", "", "chat model name")
	flags.Duration("save-delay", 0, "how long the simulated save takes")

	cmd.AddCommand(newNewCmd(), newChatCmd(), newConfigCmd(), newVersionCmd())
	return cmd
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer logging.Close()

	return NewRootCmd().ExecuteContext(ctx)
}

// setup loads configuration, applies flag overrides, and starts logging.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.Initialize(); err != nil {
		return err
	}
	if err := config.ApplyOverrides(flagOverrides(cmd)); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	if err := logging.Init(config.Debug()); err != nil {
		return fmt.Errorf("start debug log: %w", err)
	}

	logging.L().Debug("command started",
		zap.String("command", cmd.CommandPath()),
		zap.Strings("config_files", config.ConfigFiles()),
	)
	return nil
}

// flagOverrides maps the persistent flags the user actually set to config
// keys, so unset flags do not mask file or env values.
func flagOverrides(cmd *cobra.Command) map[string]any {
	flags := cmd.Flags()
	overrides := map[string]any{}

	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		overrides[config.KeyDebug] = v
	}
	if flags.Changed("provider") {
		v, _ := flags.GetString("provider")
		overrides[config.KeyChatProvider] = v
	}
	if flags.Changed("model") {
		v, _ := flags.GetString("model")
		overrides[config.KeyChatModel] = v
	}
	if flags.Changed("save-delay") {
		v, _ := flags.GetDuration("save-delay")
		overrides[config.KeySaveDelay] = v
	}
	return overrides
}

// chatOptions converts the resolved settings for chat.NewService.
func chatOptions() chat.Options {
	s := config.Chat()
	return chat.Options{
		Provider:     s.Provider,
		Model:        s.Model,
		BaseURL:      s.BaseURL,
		APIKey:       s.APIKey,
		SystemPrompt: s.SystemPrompt,
	}
}

func runEditor(cmd *cobra.Command, _ []string) error {
	log := logging.L()

	svc, chatErr := chat.NewService(chatOptions())
	if chatErr != nil {
		log.Info("chat panel disabled", zap.Error(chatErr))
	}

	return runTUI(tui.Options{
		Chat:          svc,
		ChatErr:       chatErr,
		Saver:         lesson.NewSimulatedSaver(config.SaveDelay(), log.Named("saver")),
		Logger:        log,
		MarkdownStyle: config.OutputFormat(),
		Now:           time.Now,
	})
}
