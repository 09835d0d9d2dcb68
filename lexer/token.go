package lexer

import "fmt"

// TokenKind represents the kind of a raw lexical token.
// It is defined as a string to allow for easy comparison and debugging.
// The raw token set is deliberately flat: every operator is a single
// character at this stage, and multi-character operators are fused later,
// on demand, by the parser's token stream (see parser.TokenStream).
type TokenKind string

// TokenKind Constants:
// These constants define all possible raw token kinds.
const (
	// Special kinds
	EOF_TYPE     TokenKind = "EOF"     // End of the input stream
	INVALID_TYPE TokenKind = "Invalid" // Unrecognized or malformed token

	// Payload-carrying kinds
	IDENTIFIER_TYPE TokenKind = "Identifier" // Identifier or keyword (classified later)
	LITERAL_TYPE    TokenKind = "Literal"    // Literal of any kind (see LiteralKind)

	// Trivia kinds (skipped by the token stream)
	COMMENT_TYPE    TokenKind = "Comment"    // Line or block comment
	WHITESPACE_TYPE TokenKind = "WhiteSpace" // Run of space, tab, newline

	// Grouping tokens
	LEFT_PAREN    TokenKind = "("
	RIGHT_PAREN   TokenKind = ")"
	LEFT_BRACKET  TokenKind = "["
	RIGHT_BRACKET TokenKind = "]"
	LEFT_BRACE    TokenKind = "{"
	RIGHT_BRACE   TokenKind = "}"

	// Single-character operators and punctuation
	PLUS_OP         TokenKind = "+"
	MINUS_OP        TokenKind = "-"
	STAR_OP         TokenKind = "*"
	SLASH_OP        TokenKind = "/"
	PERCENT_OP      TokenKind = "%"
	CARET_OP        TokenKind = "^"
	NOT_OP          TokenKind = "!"
	AND_OP          TokenKind = "&"
	OR_OP           TokenKind = "|"
	GT_OP           TokenKind = ">"
	LT_OP           TokenKind = "<"
	EQUAL_OP        TokenKind = "="
	AT_SYMBOL       TokenKind = "@"
	DOT_OP          TokenKind = "."
	COMMA_DELIM     TokenKind = ","
	COLON_DELIM     TokenKind = ":"
	SEMICOLON_DELIM TokenKind = ";"
	POUND_SYMBOL    TokenKind = "#"
	DOLLAR_SIGN     TokenKind = "$"
	QUESTION_OP     TokenKind = "?"
	TILDE_OP        TokenKind = "~"
	UNDERSCORE      TokenKind = "_" // Only when not part of an identifier
)

// LiteralKind classifies a raw literal token. Numeric bases are still
// distinguished here; the token stream collapses them into integer vs
// float cooked literals.
type LiteralKind string

const (
	BIN_LITERAL          LiteralKind = "Bin"        // 0b...
	OCT_LITERAL          LiteralKind = "Oct"        // 0o...
	DEC_LITERAL          LiteralKind = "Dec"        // plain decimal
	HEX_LITERAL          LiteralKind = "Hex"        // 0x...
	FLOAT_LITERAL        LiteralKind = "Float"      // with fraction and/or exponent
	CHAR_LITERAL         LiteralKind = "Char"       // 'x'
	STR_LITERAL          LiteralKind = "Str"        // "..."
	STR_RAW_LITERAL      LiteralKind = "StrRaw"     // r"..." / r#"..."#
	BYTE_LITERAL         LiteralKind = "Byte"       // b'x'
	BYTE_STR_LITERAL     LiteralKind = "ByteStr"    // b"..."
	BYTE_STR_RAW_LITERAL LiteralKind = "ByteStrRaw" // br"..." / br#"..."#
	C_STR_LITERAL        LiteralKind = "CStr"       // c"..."
	C_STR_RAW_LITERAL    LiteralKind = "CStrRaw"    // cr"..." / cr#"..."#
)

// LiteralInfo is the literal descriptor attached to LITERAL_TYPE tokens.
//
// Fields:
//   - Kind: The literal's classification
//   - Prefix: Literal prefix, e.g. "r", "b", "br", "c", "cr"
//   - Symbol: The literal body without prefix and suffix
//   - Suffix: The trailing type suffix, e.g. "u32", "_f64"
//   - HasExponent: Whether a float literal was written with an exponent
type LiteralInfo struct {
	Kind        LiteralKind
	Prefix      string
	Symbol      string
	Suffix      string
	HasExponent bool
}

// Token represents a single raw lexical token.
//
// Fields:
//   - Kind: The kind of this token
//   - Text: The exact source slice this token covers
//   - Literal: The literal descriptor (only for LITERAL_TYPE tokens)
//   - Row: Row in the source (1-indexed)
//   - Column: Column in the source (1-indexed, reset on '\n')
//
// Every byte of a successfully-lexed input belongs to exactly one token;
// whitespace and comments are emitted as tokens too and elided later.
type Token struct {
	Kind    TokenKind
	Text    string
	Literal *LiteralInfo
	Row     int
	Column  int
}

// NewToken creates a new raw token.
func NewToken(kind TokenKind, text string, row int, column int) Token {
	return Token{
		Kind:   kind,
		Text:   text,
		Row:    row,
		Column: column,
	}
}

// String returns a human-readable "text:kind" representation of the token.
func (tok Token) String() string {
	return fmt.Sprintf("%s:%s", tok.Text, string(tok.Kind))
}
