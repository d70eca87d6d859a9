package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/shot-cli/internal/adapters/watcher"
	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var (
	watchCopy    bool
	watchNoClear bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live preview of the draft prompt",
	Long: `Re-render the generated prompt every time the draft changes, whether
from 'shot set' in another terminal, 'shot compose', or an editor open
on draft.yaml.

With --copy the clipboard is kept in sync with the prompt.
Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchCopy, "copy", "c", false, "Copy the prompt to the clipboard on every change")
	watchCmd.Flags().BoolVar(&watchNoClear, "no-clear", false, "Append renders instead of clearing the screen")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	w := watcher.New(draftRepo.Path(), debounce, logger)

	last := ""
	render := func() {
		fields, err := draftService.Load(ctx)
		if err != nil {
			logger.Warn("draft render failed", zap.Error(err))
			fmt.Fprintln(out, ui.FormatError(err.Error()))
			return
		}

		prompt := domain.GeneratePrompt(*fields)
		if prompt == last {
			return
		}
		last = prompt

		renderWatchFrame(out, prompt, !watchNoClear)

		if watchCopy {
			if _, err := draftService.CopyFields(*fields); err != nil && !errors.Is(err, domain.ErrEmptyPrompt) {
				fmt.Fprintln(out, ui.FormatWarning(err.Error()))
			}
		}
	}

	// Show the current state before waiting for changes
	last = "\x00"
	render()

	if err := w.Run(ctx, render); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatMuted("Stopped watching."))
	return nil
}

// renderWatchFrame draws one refresh of the live preview
func renderWatchFrame(out io.Writer, prompt string, clear bool) {
	if clear {
		fmt.Fprint(out, "\033[H\033[2J")
	}
	fmt.Fprintln(out, ui.FormatShot("Live preview")+"  "+ui.FormatMuted(time.Now().Format("15:04:05")))
	fmt.Fprintln(out)
	printPrompt(out, prompt)
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatMuted("Watching "+draftRepo.Path()+" (Ctrl+C to stop)"))
}
