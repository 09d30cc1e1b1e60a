package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TypeLexer tokenizes type annotations such as `python::dict<string, number>?`
// or `(number, string) -> boolean`. A trailing run of '*' belongs to the
// identifier so C pointer names like `char*` stay in one token.
var TypeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*\**`},
	// "[]" is a single token so `T[]` cannot be confused with indexing.
	{Name: "Punct", Pattern: `\[\]|::|->|[(){}<>,:|?]`},
})
