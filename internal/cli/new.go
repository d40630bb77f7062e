package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pablasso/lessonplan/internal/config"
	"github.com/pablasso/lessonplan/internal/display"
	"github.com/pablasso/lessonplan/internal/lesson"
	"github.com/pablasso/lessonplan/internal/logging"
	"github.com/spf13/cobra"
)

type newOptions struct {
	title       string
	description string
	date        string
	tags        []string
	dryRun      bool
}

func newNewCmd() *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a lesson plan without opening the editor",
		Example: `  lessonplan new --title "Fractions with pizza" \
    --description "Introduce halves and quarters" \
    --date 2026-10-19 --tag math --tag grade-3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNew(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.title, "title", "", "lesson title (required)")
	f.StringVar(&opts.description, "description", "", "lesson description (required)")
	f.StringVar(&opts.date, "date", "", "lesson date as YYYY-MM-DD (required)")
	f.StringArrayVar(&opts.tags, "tag", nil, "tag to attach; repeat for several")
	f.BoolVar(&opts.dryRun, "dry-run", false, "validate only, do not save")
	return cmd
}

func runNew(cmd *cobra.Command, opts newOptions) error {
	form := lesson.NewForm()
	form.SetTitle(opts.title)
	form.SetDescription(opts.description)

	if opts.date != "" {
		d, err := lesson.ParseDate(opts.date)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
		form.SetDate(d)
	}
	for _, tag := range opts.tags {
		form.SetPendingTag(tag)
		form.AddPendingTag()
	}

	if errs := form.Validate(); len(errs) > 0 {
		return fmt.Errorf("lesson plan is invalid: %w", errs)
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		fmt.Fprintln(out, "Lesson plan is valid.")
		return nil
	}

	plan := form.Draft()
	saver := lesson.NewSimulatedSaver(config.SaveDelay(), logging.Named("saver"))

	status := display.New(cmd.ErrOrStderr())
	status.Start(plan.Title)
	err := form.Submit(cmd.Context(), saver)
	if errors.Is(err, context.Canceled) {
		status.Stop()
		return errors.New("cancelled before the lesson plan was saved")
	}
	if err != nil {
		status.Finish(display.StatusFailed)
		var saveErr *lesson.SaveError
		if errors.As(err, &saveErr) {
			return fmt.Errorf("failed to create lesson plan: %w", saveErr.Err)
		}
		return err
	}

	status.Finish(display.StatusSaved)

	render := display.MarkdownRenderer(config.OutputFormat(), 80)
	fmt.Fprintln(out, render(plan.Markdown()))
	return nil
}
