package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/schemaflow/cli/internal/ui"
	"github.com/satishbabariya/schemaflow/migrate/history"
	"github.com/satishbabariya/schemaflow/migrate/schema"
)

func newSchemaCommand(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schema [migration file]",
		Short: "Show the schema a migration produces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := compileFile(migrationPaths(opts, args)[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printSchemaJSON(cmd.OutOrStdout(), c.Result.Schema)
			}
			printSchema(c.Result.Schema)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the schema as JSON")

	return cmd
}

func printSchemaJSON(w io.Writer, db schema.Database) error {
	out, err := history.SerializeSchema(db)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func printSchema(db schema.Database) {
	tables := db.Tables()
	if len(tables) == 0 {
		ui.PrintInfo("The migration leaves no tables")
		return
	}

	for _, table := range tables {
		ui.PrintSection(table.Name())

		items := make([]string, 0, len(table.Columns())+len(table.Constraints()))
		for _, col := range table.Columns() {
			items = append(items, fmt.Sprintf("%s %s", col.Name(), col.Type()))
		}
		for _, c := range table.Constraints() {
			items = append(items, fmt.Sprintf("%s (%s)", c.Kind(), strings.Join(c.Columns(), ", ")))
		}
		ui.PrintList(items)
	}
}
