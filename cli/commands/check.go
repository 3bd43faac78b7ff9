package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/schemaflow/cli/internal/config"
	"github.com/satishbabariya/schemaflow/cli/internal/ui"
	"github.com/satishbabariya/schemaflow/migrate/diff"
	"github.com/satishbabariya/schemaflow/migrate/history"
)

func newCheckCommand(opts *options) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "check [migration files...]",
		Short: "Verify compiled scripts are up to date",
		Long: `Recompile migration files and compare the result with the scripts and
manifests in the output directory. Exits with an error if any of them has
drifted or was never compiled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(migrationPaths(opts, args), resolveOutputDir(opts, outputDir))
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config)")

	return cmd
}

func runCheck(paths []string, outputDir string) error {
	compiled, err := compileAll(paths)
	if err != nil {
		return err
	}

	store := history.NewStore(config.AppFs, outputDir)
	failed := 0
	for _, c := range compiled {
		err := store.Verify(c.Name, c.Result)
		if err == nil {
			ui.PrintSuccess("%s is up to date", c.Name)
			continue
		}
		failed++

		var drift *history.DriftError
		if !errors.As(err, &drift) {
			ui.PrintError("%v", err)
			continue
		}

		ui.PrintError("%v", drift)
		manifest, script, readErr := store.Read(c.Name)
		if readErr != nil {
			continue
		}
		if changes := diff.Diff(manifest.Schema, history.Snapshot(c.Result.Schema)); !changes.IsEmpty() {
			ui.PrintInfo("Schema changes since %s was compiled:", c.Name)
			ui.PrintList(changes.Descriptions())
		}
		ui.PrintDiff(script, c.Result.SQL)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d migration(s) are out of date", failed, len(compiled))
	}
	return nil
}
