package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TypeExpr is a union of one or more postfix types. A single member is not
// a union.
type TypeExpr struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Members []*PostfixType `@@ ( "|" @@ )*`
}

// PostfixType is an atom followed by any number of `[]` and `?` suffixes,
// applied left to right.
type PostfixType struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Atom     *AtomType `@@`
	Suffixes []string  `@( "[]" | "?" )*`
}

type AtomType struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Group  *GroupType  `  @@`
	Object *ObjectType `| @@`
	Named  *NamedType  `| @@`
}

// GroupType is either a parenthesised type or, when an arrow follows, a
// function type.
type GroupType struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Elems  []*TypeExpr `"(" ( @@ ( "," @@ )* )? ")"`
	Arrow  bool        `( @"->"`
	Return *TypeExpr   `  @@ )?`
}

type ObjectType struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Fields []*FieldType `"{" ( @@ ( "," @@ )* ","? )? "}"`
}

type FieldType struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string    `@Ident ":"`
	Type   *TypeExpr `@@`
}

// NamedType is a primitive or generic name, or a `lang::Name` path with
// optional type arguments.
type NamedType struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Path   []string    `@Ident ( "::" @Ident )*`
	Args   []*TypeExpr `( "<" @@ ( "," @@ )* ">" )?`
}
