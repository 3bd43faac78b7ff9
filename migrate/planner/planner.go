// Package planner describes a compiled migration as a reviewable plan.
package planner

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/schemaflow/migrate"
	"github.com/satishbabariya/schemaflow/migrate/schema"
)

// MigrationPlan represents a planned migration with steps
type MigrationPlan struct {
	Name     string
	Steps    []MigrationStep
	IsSafe   bool
	Warnings []string
}

// MigrationStep represents a single migration step
type MigrationStep struct {
	Type        string
	Table       string
	Description string
	SQL         string
	IsSafe      bool
}

// Plan builds a plan from a compiled migration, one step per emitted
// statement. Dropping a table is destructive and marks the plan unsafe.
func Plan(name string, result migrate.Result) *MigrationPlan {
	plan := &MigrationPlan{
		Name:     name,
		Steps:    []MigrationStep{},
		IsSafe:   true,
		Warnings: []string{},
	}

	for i, stmt := range result.Schema.Statements() {
		step := MigrationStep{
			Type:   string(stmt.Kind),
			Table:  stmt.Table,
			SQL:    stmt.SQL,
			IsSafe: true,
		}

		switch stmt.Kind {
		case schema.StatementCreateTable:
			step.Description = fmt.Sprintf("Create table %s", stmt.Table)
		case schema.StatementDropTable:
			step.Description = fmt.Sprintf("Drop table %s", stmt.Table)
			step.IsSafe = false
			plan.IsSafe = false
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("step %d drops table %s and all of its data", i+1, stmt.Table))
		}

		plan.Steps = append(plan.Steps, step)
	}

	return plan
}

// Rows returns the plan as table rows: index, type, table, safety.
func (p *MigrationPlan) Rows() [][]string {
	rows := make([][]string, 0, len(p.Steps))
	for i, step := range p.Steps {
		safety := "safe"
		if !step.IsSafe {
			safety = "destructive"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), step.Type, step.Table, safety})
	}
	return rows
}

// Markdown renders the plan as a markdown document.
func (p *MigrationPlan) Markdown() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Migration plan: %s\n\n", p.Name))
	if len(p.Steps) == 0 {
		sb.WriteString("_No statements._\n")
		return sb.String()
	}

	sb.WriteString("| # | Step | Table | Safety |\n|---|------|-------|--------|\n")
	for _, row := range p.Rows() {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	if len(p.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range p.Warnings {
			sb.WriteString("- " + w + "\n")
		}
	}

	sb.WriteString("\n## SQL\n\n```sql\n")
	sb.WriteString(strings.TrimRight(combinedSQL(p.Steps), "\n"))
	sb.WriteString("\n```\n")

	return sb.String()
}

func combinedSQL(steps []MigrationStep) string {
	var sb strings.Builder
	for _, s := range steps {
		sb.WriteString(s.SQL)
		if !strings.HasSuffix(s.SQL, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
