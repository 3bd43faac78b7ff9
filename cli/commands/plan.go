package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/schemaflow/cli/internal/ui"
	"github.com/satishbabariya/schemaflow/migrate/planner"
)

func newPlanCommand(opts *options) *cobra.Command {
	var markdown bool
	var showSQL bool

	cmd := &cobra.Command{
		Use:   "plan [migration file]",
		Short: "Show the statements a migration will run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := compileFile(migrationPaths(opts, args)[0])
			if err != nil {
				return err
			}
			return printPlan(planner.Plan(c.Name, c.Result), markdown, showSQL)
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the plan as markdown")
	cmd.Flags().BoolVar(&showSQL, "sql", false, "Also print the generated SQL")

	return cmd
}

func printPlan(plan *planner.MigrationPlan, markdown, showSQL bool) error {
	if markdown {
		return ui.PrintMarkdown(plan.Markdown())
	}

	ui.PrintSection("Migration plan: " + plan.Name)
	if len(plan.Steps) == 0 {
		ui.PrintInfo("No statements")
		return nil
	}

	rows := plan.Rows()
	for i, step := range plan.Steps {
		rows[i] = append([]string{ui.StatementMarker(!step.IsSafe)}, rows[i]...)
	}
	if err := ui.PrintTable([]string{"", "#", "Type", "Table", "Safety"}, rows); err != nil {
		return err
	}

	for _, warning := range plan.Warnings {
		ui.PrintWarning("%s", warning)
	}

	if showSQL {
		var sql string
		for _, step := range plan.Steps {
			sql += step.SQL + "\n"
		}
		ui.PrintCodeBlock(sql, "sql")
	}

	return nil
}
