package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/schemaflow/cli/internal/config"
	"github.com/satishbabariya/schemaflow/cli/internal/ui"
)

const sampleMigration = `-- Every statement sees the schema left by the statements above it.
create table accounts (
	id string,
	email string,
	unique email
);

create table sessions (
	id string,
	account accounts.id,
	token string,
	unique (account, token)
);
`

// confirm asks a yes/no question. Replaced in tests.
var confirm = func(message string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok)
	return ok, err
}

func newInitCommand(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [migration file]",
		Short: "Create a sample migration and config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, migrationPaths(opts, args)[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files without asking")

	return cmd
}

func runInit(opts *options, path string, force bool) error {
	exists, err := afero.Exists(config.AppFs, path)
	if err != nil {
		return err
	}

	if exists && !force {
		ok, err := confirm(fmt.Sprintf("%s already exists. Overwrite?", path))
		if err != nil {
			return fmt.Errorf("%s already exists (use --force to overwrite): %w", path, err)
		}
		if !ok {
			ui.PrintInfo("Left %s unchanged", path)
			return nil
		}
	}

	if err := afero.WriteFile(config.AppFs, path, []byte(sampleMigration), 0o644); err != nil {
		return fmt.Errorf("failed to write migration: %w", err)
	}
	ui.PrintSuccess("Created %s", path)

	configExists, err := afero.Exists(config.AppFs, config.FileName)
	if err != nil {
		return err
	}
	if !configExists {
		cfg := *opts.cfg
		cfg.MigrationPath = path
		if err := config.SaveConfig(&cfg, config.FileName); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		ui.PrintSuccess("Created %s", config.FileName)
	}

	return nil
}
