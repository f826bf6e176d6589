package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"a11yscan/internal/extract"
	"a11yscan/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-run the analysis whenever source files change",
	Long: `Watches the given directory (default: the workspace) and re-runs the
full analysis after changes settle. Rapid editor saves are debounced into
a single run. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := workspace
	if len(args) == 1 {
		root = args[0]
	}

	factory := extract.DefaultFactory()

	rerun := func(paths []string) {
		logger.Info("change detected", zap.Strings("paths", paths))
		// Re-analyze the whole tree: a change in one file can add or
		// remove joins on elements declared in others.
		if _, err := analyze(cmd, []string{root}); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}

	w, err := watch.New(root, factory.SupportedExtensions(), rerun)
	if err != nil {
		return err
	}
	if err := w.Start(cmd.Context()); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s, press Ctrl-C to stop\n", root)

	// Initial run so the first report doesn't wait for an edit.
	if _, err := analyze(cmd, []string{root}); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
