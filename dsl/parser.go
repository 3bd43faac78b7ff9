// Package dsl parses migration files written in a small DDL-like language
// and turns them into migration steps.
//
//	create table users (
//		id string,
//		email "varchar(255)",
//		unique email
//	);
//	create table accounts (
//		id string,
//		userId users.id,
//		unique (id, userId)
//	);
//	drop table users;
//
// A column typed `table.column` mirrors the type of that column as it
// exists when the statement runs. `unique` is reserved and cannot name a
// column. Comments start with `--` or `//` and may appear between
// statements and between the items of a table body; Format keeps them.
package dsl

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// parser is the Participle parser instance.
var parser = participle.MustBuild[File](
	participle.Lexer(MigrationLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(4),
)

// Parse parses a migration from an io.Reader.
func Parse(filename string, r io.Reader) (*File, error) {
	f, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	for _, stmt := range f.Statements {
		if stmt.Create == nil {
			continue
		}
		if err := stmt.Create.validate(); err != nil {
			return err
		}
	}
	return nil
}

// validate checks that definitions in a table body are separated by
// exactly one comma, with no leading or trailing comma.
func (c *CreateTable) validate() error {
	expectDefinition := true
	sawSeparator := false

	for _, item := range c.Items {
		switch {
		case item.Comment != nil:
		case item.Separator:
			if expectDefinition {
				return participle.Errorf(item.Pos, `unexpected "," in table %s`, c.Name)
			}
			expectDefinition = true
			sawSeparator = true
		default:
			if !expectDefinition {
				return participle.Errorf(item.Pos, `expected "," before item in table %s`, c.Name)
			}
			expectDefinition = false
		}
	}

	if expectDefinition && sawSeparator {
		return participle.Errorf(c.End.Pos, `unexpected ")" after "," in table %s`, c.Name)
	}
	return nil
}

// ParseString parses a migration from a string.
func ParseString(filename, input string) (*File, error) {
	return Parse(filename, strings.NewReader(input))
}

// MustParseString parses a migration from a string, panicking on error.
func MustParseString(filename, input string) *File {
	f, err := ParseString(filename, input)
	if err != nil {
		panic(err)
	}
	return f
}
