package dsl

import (
	"strings"
)

// Format renders a parsed migration in canonical form: one statement per
// block, table bodies tab-indented, statements separated by a blank line.
// Comments are kept. A comment on the same line as the code before it stays
// at the end of that line; other comments get a line of their own above the
// code that follows them.
func Format(f *File) string {
	var lines []string
	var prev *Statement
	prevLine := 0

	for _, stmt := range f.Statements {
		if c := stmt.Comment; c != nil {
			switch {
			case prev != nil && prev.Comment == nil && c.Pos.Line == prevLine:
				lines[len(lines)-1] += " " + c.String()
				continue
			case prev != nil && prev.Comment == nil:
				lines = append(lines, "")
			case prev != nil && c.Pos.Line > prevLine+1:
				lines = append(lines, "")
			}
			lines = append(lines, c.String())
			prev, prevLine = stmt, c.Pos.Line
			continue
		}

		if prev != nil && prev.Comment == nil {
			lines = append(lines, "")
		}
		lines = append(lines, formatStatement(stmt)...)
		prev, prevLine = stmt, stmt.endLine()
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func formatStatement(s *Statement) []string {
	switch {
	case s.Create != nil:
		return formatCreateTable(s.Create)
	case s.Drop != nil:
		return []string{"drop table " + s.Drop.Name + ";"}
	default:
		return nil
	}
}

// bodyLine is one rendered line of a table body.
type bodyLine struct {
	text       string
	definition bool
	trailing   string
}

func formatCreateTable(c *CreateTable) []string {
	var body []bodyLine
	lastDef := -1
	codeLine := 0

	for _, item := range c.Items {
		switch {
		case item.Comment != nil:
			if lastDef >= 0 && item.Comment.Pos.Line == codeLine && body[lastDef].trailing == "" {
				body[lastDef].trailing = item.Comment.String()
				continue
			}
			body = append(body, bodyLine{text: item.Comment.String()})
		case item.Separator:
			codeLine = item.Pos.Line
		default:
			body = append(body, bodyLine{text: formatDefinition(item), definition: true})
			lastDef = len(body) - 1
			codeLine = item.Pos.Line
		}
	}

	if len(body) == 0 {
		return []string{"create table " + c.Name + " ();"}
	}

	lines := make([]string, 0, len(body)+2)
	lines = append(lines, "create table "+c.Name+" (")
	for i, b := range body {
		line := "\t" + b.text
		if b.definition && i != lastDef {
			line += ","
		}
		if b.trailing != "" {
			line += " " + b.trailing
		}
		lines = append(lines, line)
	}
	lines = append(lines, ");")

	return lines
}

func formatDefinition(item *TableItem) string {
	if item.Unique != nil {
		return formatUnique(item.Unique)
	}
	return item.Column.Name + " " + item.Column.Type.String()
}

func formatUnique(u *UniqueConstraint) string {
	if len(u.Columns) == 1 {
		return "unique " + u.Columns[0]
	}
	return "unique (" + strings.Join(u.Columns, ", ") + ")"
}
