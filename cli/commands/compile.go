package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/schemaflow/cli/internal/config"
	"github.com/satishbabariya/schemaflow/cli/internal/ui"
	"github.com/satishbabariya/schemaflow/migrate/history"
)

func newCompileCommand(opts *options) *cobra.Command {
	var outputDir string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "compile [migration files...]",
		Short: "Compile migration files into DDL scripts",
		Long: `Compile one or more migration files.

For every file a script (<name>.sql) and a manifest (<name>.lock.json) are
written to the output directory. Files are compiled independently and in
parallel, and all of them are compiled before any file is written: if one
fails to compile, nothing is written. Files are then written one migration
at a time, so an I/O error leaves the migrations before it already written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.OutOrStdout(), opts, migrationPaths(opts, args), resolveOutputDir(opts, outputDir), toStdout)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the scripts instead of writing files")

	return cmd
}

func runCompile(w io.Writer, opts *options, paths []string, outputDir string, toStdout bool) error {
	compiled, err := compileAll(paths)
	if err != nil {
		return err
	}

	if toStdout {
		for _, c := range compiled {
			if len(compiled) > 1 {
				fmt.Fprintf(w, "-- %s\n", c.Name)
			}
			fmt.Fprint(w, c.Result.SQL)
		}
		return nil
	}

	store := history.NewStore(config.AppFs, outputDir)
	for _, c := range compiled {
		manifest, err := store.Write(c.Name, c.Result)
		if err != nil {
			return err
		}
		ui.PrintSuccess("Compiled %s to %s (%d statements, checksum %s)",
			c.Path, store.ScriptPath(c.Name), len(manifest.Statements), manifest.Checksum)
	}

	return nil
}
