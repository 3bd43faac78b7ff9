package schema

import (
	"fmt"
	"strings"
)

// StatementKind identifies the operation that emitted a DDL statement.
type StatementKind string

const (
	StatementCreateTable StatementKind = "CreateTable"
	StatementDropTable   StatementKind = "DropTable"
)

// Statement is one emitted DDL fragment.
type Statement struct {
	Kind  StatementKind
	Table string
	SQL   string
}

// createTableSQL renders a table as
//
//	create table <name> (
//		<col> <type>,
//		unique <col>
//	);
//
// columns first, then constraints, each in declaration order.
func createTableSQL(t Table) string {
	body := make([]string, 0, t.columns.Len()+len(t.constraints))
	t.columns.Range(func(_ string, c Column) bool {
		body = append(body, c.name+" "+c.typ)
		return true
	})
	for _, c := range t.constraints {
		body = append(body, constraintSQL(c))
	}

	var sb strings.Builder
	sb.WriteString("create table ")
	sb.WriteString(t.name)
	sb.WriteString(" (\n\t")
	sb.WriteString(strings.Join(body, ",\n\t"))
	sb.WriteString("\n);\n")
	return sb.String()
}

func constraintSQL(c Constraint) string {
	if len(c.columns) == 1 {
		return fmt.Sprintf("%s %s", c.kind, c.columns[0])
	}
	return fmt.Sprintf("%s (%s)", c.kind, strings.Join(c.columns, ", "))
}

func dropTableSQL(name string) string {
	return "drop table " + name + ";"
}
