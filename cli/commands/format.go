package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/schemaflow/cli/internal/config"
	"github.com/satishbabariya/schemaflow/cli/internal/ui"
	"github.com/satishbabariya/schemaflow/dsl"
)

func newFormatCommand(opts *options) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [migration files...]",
		Short: "Rewrite migration files in canonical form",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(migrationPaths(opts, args), check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Fail instead of rewriting files that are not formatted")

	return cmd
}

func runFormat(paths []string, check bool) error {
	var unformatted []string

	for _, path := range paths {
		original, err := afero.ReadFile(config.AppFs, path)
		if err != nil {
			return fmt.Errorf("failed to read migration: %w", err)
		}

		file, err := dsl.ParseString(path, string(original))
		if err != nil {
			return err
		}

		formatted := dsl.Format(file)
		if formatted == string(original) {
			continue
		}

		if check {
			unformatted = append(unformatted, path)
			continue
		}

		if err := afero.WriteFile(config.AppFs, path, []byte(formatted), 0o644); err != nil {
			return fmt.Errorf("failed to write migration: %w", err)
		}
		ui.PrintSuccess("Formatted %s", path)
	}

	if len(unformatted) > 0 {
		for _, path := range unformatted {
			ui.PrintWarning("%s is not formatted", path)
		}
		return fmt.Errorf("%d file(s) need formatting", len(unformatted))
	}
	return nil
}
