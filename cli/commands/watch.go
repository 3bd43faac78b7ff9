package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/schemaflow/cli/internal/ui"
	"github.com/satishbabariya/schemaflow/cli/internal/watch"
)

func newWatchCommand(opts *options) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "watch [migration file]",
		Short: "Recompile a migration whenever it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := migrationPaths(opts, args)[0]
			dir := resolveOutputDir(opts, outputDir)

			w, err := watch.NewWatcher(path, func() error {
				return runCompile(cmd.OutOrStdout(), opts, []string{path}, dir, false)
			}, func(err error) {
				ui.PrintError("%v", err)
			})
			if err != nil {
				return err
			}

			ui.PrintHeader("schemaflow watch", "Watching "+path+" (Ctrl+C to stop)")
			if err := w.Start(); err != nil {
				return err
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig

			ui.PrintInfo("Stopping watcher")
			return w.Stop()
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config)")

	return cmd
}
