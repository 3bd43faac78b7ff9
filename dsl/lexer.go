package dsl

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// MigrationLexer defines the token types of the migration language.
var MigrationLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments
	{Name: "Comment", Pattern: `(?:--|//)[^\n]*`},

	// Literals
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},

	// Identifiers; keywords are matched by value
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},

	// Punctuation
	{Name: "Punct", Pattern: `[(),;.]`},

	// Whitespace and newlines
	{Name: "Whitespace", Pattern: `\s+`},
})
