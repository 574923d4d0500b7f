package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gon-format/go-gon/lexer"
	"github.com/gon-format/go-gon/token"
)

func TestNextToken(t *testing.T) {
	input := "# inventory\n" +
		"big_factory {\n" +
		"  location \"New York City\"\n" +
		"  count 5\n" +
		"}\n" +
		"weekdays [Monday, Tuesday]\n"

	expectedTokens := []struct {
		expectedType    token.Type
		expectedLiteral string
		expectedLine    int
		expectedColumn  int
	}{
		{token.COMMENT, "inventory", 1, 1},
		{token.WORD, "big_factory", 2, 1},
		{token.LBRACE, "{", 2, 13},
		{token.WORD, "location", 3, 3},
		{token.STRING, "New York City", 3, 12},
		{token.WORD, "count", 4, 3},
		{token.WORD, "5", 4, 9},
		{token.RBRACE, "}", 5, 1},
		{token.WORD, "weekdays", 6, 1},
		{token.LBRACK, "[", 6, 10},
		{token.WORD, "Monday", 6, 11},
		{token.COMMA, ",", 6, 17},
		{token.WORD, "Tuesday", 6, 19},
		{token.RBRACK, "]", 6, 26},
		{token.EOF, "", 7, 1},
	}

	l := lexer.New([]byte(input))

	for i, tt := range expectedTokens {
		tok := l.NextToken()
		require.Equal(t, tt.expectedType, tok.Type, "test[%d] - wrong token type. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		require.Equal(t, tt.expectedLiteral, tok.Literal, "test[%d] - wrong literal. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		require.Equal(t, tt.expectedLine, tok.Line, "test[%d] - wrong line. expected=%d, got=%d", i, tt.expectedLine, tok.Line)
		require.Equal(t, tt.expectedColumn, tok.Column, "test[%d] - wrong column. expected=%d, got=%d", i, tt.expectedColumn, tok.Column)
	}
}

func TestBareWords(t *testing.T) {
	// A bare word is a maximal run of non-whitespace, non-structural
	// characters. Numbers, booleans, and punctuation-heavy values are all
	// plain words to the lexer.
	tests := []struct {
		input    string
		expected []string
	}{
		{`-12.5e3`, []string{"-12.5e3"}},
		{`true false null`, []string{"true", "false", "null"}},
		{`en-US;q=0.8`, []string{"en-US;q=0.8"}},
		{`a\b`, []string{`a\b`}},
		{`key"quoted"`, []string{"key", "quoted"}},
		{`x[y]`, []string{"x", "[", "y", "]"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := lexer.New([]byte(tt.input))
			var got []string
			for {
				tok := l.NextToken()
				if tok.Type == token.EOF {
					break
				}
				got = append(got, tok.Literal)
			}
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input     string
		expected  string
		isIllegal bool
	}{
		{`""`, "", false},
		{`"\""`, `"`, false},
		{`"\\"`, `\`, false},
		{`"\/"`, `/`, false},
		{`"\b"`, "\b", false},
		{`"\f"`, "\f", false},
		{`"\n"`, "\n", false},
		{`"\r"`, "\r", false},
		{`"\t"`, "\t", false},
		{"\"\\u0022\"", `"`, false},
		{"\"two\nlines\"", "two\nlines", false},
		{"\"\\uD83D\\uDE00\"", "invalid unicode scalar value (surrogate pair)", true},
		{`"\u12G"`, "invalid unicode escape", true},
		{`"\x"`, "invalid escape sequence \\x", true},
		{`"a\qc"`, "invalid escape sequence \\q", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := lexer.New([]byte(tt.input))
			tok := l.NextToken()
			if tt.isIllegal {
				require.Equal(t, token.ILLEGAL, tok.Type)
			} else {
				require.Equal(t, token.STRING, tok.Type)
			}
			require.Equal(t, tt.expected, tok.Literal)
		})
	}
}

func TestIllegalTokens(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedLiteral string
	}{
		{
			name:            "unterminated string",
			input:           `"hello`,
			expectedLiteral: "unterminated string",
		},
		{
			name:            "backslash at end of string",
			input:           `"hello\`,
			expectedLiteral: "unterminated string",
		},
		{
			name:            "invalid utf-8 in string",
			input:           "\"a\xffb\"",
			expectedLiteral: "invalid utf-8 sequence in string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := lexer.New([]byte(tt.input))
			tok := l.NextToken()
			require.Equal(t, token.ILLEGAL, tok.Type)
			require.Equal(t, tt.expectedLiteral, tok.Literal)
		})
	}
}

func TestComments(t *testing.T) {
	input := "# first\nkey value # trailing\n# last"
	l := lexer.New([]byte(input))

	var types []token.Type
	var literals []string
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		literals = append(literals, tok.Literal)
		if tok.Type == token.EOF {
			break
		}
	}

	require.Equal(t, []token.Type{token.COMMENT, token.WORD, token.WORD, token.COMMENT, token.COMMENT, token.EOF}, types)
	require.Equal(t, []string{"first", "key", "value", "trailing", "last", ""}, literals)
}
