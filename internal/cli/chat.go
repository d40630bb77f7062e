package cli

import (
	"fmt"
	"strings"

	"github.com/pablasso/lessonplan/internal/chat"
	"github.com/pablasso/lessonplan/internal/config"
	"github.com/pablasso/lessonplan/internal/display"
	"github.com/spf13/cobra"
)

// newService builds the chat backend. Replaced in tests.
var newService = chat.NewService

func newChatCmd() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "chat <question...>",
		Short: "Ask the assistant a one-off question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, strings.Join(args, " "), markdown)
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "wait for the full reply and render it as Markdown")
	return cmd
}

func runChat(cmd *cobra.Command, question string, markdown bool) error {
	svc, err := newService(chatOptions())
	if err != nil {
		return err
	}

	events, err := svc.Stream(cmd.Context(), []chat.Message{{Role: chat.RoleUser, Content: question}})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if markdown {
		reply, err := chat.Collect(events)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, display.MarkdownRenderer(config.OutputFormat(), 80)(reply))
		return nil
	}

	for ev := range events {
		switch ev.Type {
		case chat.EventText:
			fmt.Fprint(out, ev.Text)
		case chat.EventError:
			fmt.Fprintln(out)
			return ev.Err
		}
	}
	fmt.Fprintln(out)
	return nil
}
