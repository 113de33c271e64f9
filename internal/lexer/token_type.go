package lexer

// TokenType represents the type of a token in Joy source code.
type TokenType int

// Token type constants organized by category.
const (
	// Special tokens
	ILLEGAL TokenType = iota // Unexpected character
	EOF                      // End of file
	COMMENT                  // (* ... *) or # ... block/line comment

	// Identifiers and literals
	INT    // integer literals: 42, -17
	FLOAT  // float literals: 3.14, -2.5e10, inf, -inf, nan
	STRING // string literals: "hello"
	CHAR   // character literals: 'a, 'a', '\n

	literalEnd // marker for end of literals section

	// Keywords - boolean literals
	TRUE  // true
	FALSE // false

	// Keywords - definitions and scoping
	DEFINE  // DEFINE
	LIBRA   // LIBRA (DEFINE synonym)
	CONST   // CONST (DEFINE synonym restricted to literal bodies)
	HIDE    // HIDE
	IN      // IN
	END     // END
	MODULE  // MODULE
	PUBLIC  // PUBLIC
	PRIVATE // PRIVATE

	keywordEnd // marker for end of keywords section

	// Delimiters
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
	PERIOD    // .
	DEFOP     // ==

	// Symbols: identifiers and operator-runs resolved at execution time
	SYMBOL

	// Shell escape line ($ ...), stripped from the stream unless forwarded
	SHELLESCAPE
)

// String returns the string representation of a TokenType.
func (tt TokenType) String() string {
	if int(tt) < len(tokenTypeStrings) {
		return tokenTypeStrings[tt]
	}
	return "UNKNOWN"
}

// IsLiteral returns true if the token type is a literal value.
func (tt TokenType) IsLiteral() bool {
	return tt > EOF && tt < literalEnd
}

// IsKeyword returns true if the token type is a reserved word.
func (tt TokenType) IsKeyword() bool {
	return tt > literalEnd && tt < keywordEnd
}

// IsDelimiter returns true if the token type is a structural delimiter.
func (tt TokenType) IsDelimiter() bool {
	return tt >= LBRACKET && tt <= DEFOP
}

// tokenTypeStrings maps TokenType values to their string representations.
var tokenTypeStrings = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",
	CHAR:   "CHAR",

	TRUE:  "TRUE",
	FALSE: "FALSE",

	DEFINE:  "DEFINE",
	LIBRA:   "LIBRA",
	CONST:   "CONST",
	HIDE:    "HIDE",
	IN:      "IN",
	END:     "END",
	MODULE:  "MODULE",
	PUBLIC:  "PUBLIC",
	PRIVATE: "PRIVATE",

	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	SEMICOLON: "SEMICOLON",
	PERIOD:    "PERIOD",
	DEFOP:     "DEFOP",

	SYMBOL:      "SYMBOL",
	SHELLESCAPE: "SHELLESCAPE",
}

// keywords maps reserved words to their token type. Matching is
// case-sensitive: Joy's reserved words are written in upper case, and a
// lower-case identifier of the same spelling is an ordinary symbol.
var keywords = map[string]TokenType{
	"true":    TRUE,
	"false":   FALSE,
	"DEFINE":  DEFINE,
	"LIBRA":   LIBRA,
	"CONST":   CONST,
	"HIDE":    HIDE,
	"IN":      IN,
	"END":     END,
	"MODULE":  MODULE,
	"PUBLIC":  PUBLIC,
	"PRIVATE": PRIVATE,
}

// LookupKeyword returns the keyword TokenType for word, and whether it is one.
// Matching is exact: only the canonical spellings in keywords bind, so a
// primitive symbol that happens to share letters with a reserved word in
// some other case (e.g. "in") still lexes as SYMBOL.
func LookupKeyword(word string) (TokenType, bool) {
	tt, ok := keywords[word]
	return tt, ok
}
