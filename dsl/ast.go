package dsl

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed migration file: statements and comments in source order.
type File struct {
	Pos        lexer.Position
	Statements []*Statement `@@*`
}

// Statement is one top-level entry: a comment or a statement.
type Statement struct {
	Pos     lexer.Position
	Comment *Comment     `  @@`
	Create  *CreateTable `| @@`
	Drop    *DropTable   `| @@`
}

// Comment is a `--` or `//` comment running to the end of the line.
type Comment struct {
	Pos  lexer.Position
	Text string `@Comment`
}

// String returns the comment text without trailing whitespace.
func (c *Comment) String() string {
	return strings.TrimRight(c.Text, " \t\r")
}

// CreateTable is `create table <name> ( <item>, ... );`. Items keep the
// separators and comments of the body in source order.
type CreateTable struct {
	Pos   lexer.Position
	Name  string       `"create" "table" @Ident "("`
	Items []*TableItem `@@*`
	End   *BodyEnd     `@@`
}

// BodyEnd is the closing `)` of a table body with its optional `;`.
type BodyEnd struct {
	Pos   lexer.Position
	Paren string `@")"`
	Semi  bool   `@";"?`
}

// DropTable is `drop table <name>;`.
type DropTable struct {
	Pos  lexer.Position
	Name string `"drop" "table" @Ident ";"?`
}

// TableItem is one entry of a create table body: a definition, a
// separating comma, or a comment.
type TableItem struct {
	Pos       lexer.Position
	Comment   *Comment          `  @@`
	Separator bool              `| @","`
	Unique    *UniqueConstraint `| @@`
	Column    *ColumnDef        `| @@`
}

// IsDefinition reports whether the item declares a column or a constraint.
func (i *TableItem) IsDefinition() bool {
	return i.Unique != nil || i.Column != nil
}

// Definitions returns the columns and constraints of the table body,
// without separators and comments.
func (c *CreateTable) Definitions() []*TableItem {
	defs := make([]*TableItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.IsDefinition() {
			defs = append(defs, item)
		}
	}
	return defs
}

// UniqueConstraint is `unique <col>` or `unique (<col>, ...)`.
type UniqueConstraint struct {
	Pos     lexer.Position
	Columns []string `"unique" ( "(" @Ident ( "," @Ident )* ")" | @Ident )`
}

// ColumnDef is `<name> <type>`.
type ColumnDef struct {
	Pos  lexer.Position
	Name string   `@Ident`
	Type *TypeRef `@@`
}

// TypeRef is a column type: a bare tag (`string`), a quoted tag
// (`"varchar(255)"`), or a reference to an existing column (`users.id`)
// whose type is mirrored.
type TypeRef struct {
	Pos    lexer.Position
	Quoted *string `  @String`
	Name   string  `| @Ident`
	Member string  `  ( "." @Ident )?`
}

// IsReference reports whether the type mirrors another table's column.
func (t *TypeRef) IsReference() bool {
	return t.Quoted == nil && t.Member != ""
}

// Tag returns the literal type tag. It is empty for references.
func (t *TypeRef) Tag() string {
	switch {
	case t.Quoted != nil:
		return *t.Quoted
	case t.Member != "":
		return ""
	default:
		return t.Name
	}
}

// String renders the type as it would be written in a migration file.
func (t *TypeRef) String() string {
	switch {
	case t.Quoted != nil:
		return strconv.Quote(*t.Quoted)
	case t.Member != "":
		return t.Name + "." + t.Member
	default:
		return t.Name
	}
}

// TableName returns the table the statement operates on. It is empty for
// comments.
func (s *Statement) TableName() string {
	switch {
	case s.Create != nil:
		return s.Create.Name
	case s.Drop != nil:
		return s.Drop.Name
	default:
		return ""
	}
}

// endLine returns the line the statement's last token is on.
func (s *Statement) endLine() int {
	switch {
	case s.Create != nil:
		return s.Create.End.Pos.Line
	case s.Drop != nil:
		return s.Drop.Pos.Line
	default:
		return s.Comment.Pos.Line
	}
}
