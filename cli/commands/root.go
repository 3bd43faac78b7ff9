// Package commands implements the schemaflow CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/schemaflow/cli/internal/config"
	"github.com/satishbabariya/schemaflow/cli/internal/ui"
	"github.com/satishbabariya/schemaflow/cli/internal/version"
	"github.com/satishbabariya/schemaflow/internal/debug"
)

// options is shared by all commands. cfg is populated before any command runs.
type options struct {
	configFile string
	debug      bool
	cfg        *config.Config
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "schemaflow",
		Short: "Compile schema migrations into DDL scripts",
		Long: `schemaflow compiles migration files into ordered DDL scripts.

Every statement of a migration sees exactly the schema produced by the
statements before it, so columns can only reference tables and columns
that exist at that point of the migration.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			opts.cfg = cfg

			debug.Init(opts.debug || cfg.Debug)
			debug.Debug("loaded config", "migration_path", cfg.MigrationPath, "output_dir", cfg.OutputDir)

			return version.Check(version.Version, cfg.RequiredVersion)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to config file (default "+config.FileName+")")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newCompileCommand(opts))
	cmd.AddCommand(newPlanCommand(opts))
	cmd.AddCommand(newSchemaCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newWatchCommand(opts))
	cmd.AddCommand(newInitCommand(opts))
	cmd.AddCommand(newFormatCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute is the main entry point for the CLI
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}
