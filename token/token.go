package token

// Type is the type of a token.
type Type string

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of file

	// Literals. GON defers all scalar typing to access time, so the lexer
	// never distinguishes numbers or booleans from other bare words.
	WORD   Type = "WORD"   // key, 12345, true, New_York
	STRING Type = "STRING" // "hello world"

	// Delimiters
	LBRACE Type = "{"
	RBRACE Type = "}"
	LBRACK Type = "["
	RBRACK Type = "]"
	COMMA  Type = ","
	COLON  Type = ":"

	// Comments
	COMMENT Type = "COMMENT" // # a comment
)
