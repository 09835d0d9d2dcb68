package lexer

import "unicode"

// Character class predicates used by the lexer. Identifier classes follow
// the Unicode XID_Start / XID_Continue sets (approximated by the unicode
// package's letter and digit tables) extended with '_'.

// isWhitespace reports whether c is one of the recognized whitespace
// characters: space, tab, or newline.
func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// isIdentifierStart reports whether c may start an identifier.
func isIdentifierStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

// isIdentifierContinue reports whether c may continue an identifier.
func isIdentifierContinue(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

// isBinDigit reports whether c is a binary digit.
func isBinDigit(c rune) bool {
	return c == '0' || c == '1'
}

// isOctDigit reports whether c is an octal digit.
func isOctDigit(c rune) bool {
	return c >= '0' && c <= '7'
}

// isDecDigit reports whether c is a decimal digit.
func isDecDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// singleCharKind maps a punctuation or operator character to its raw
// token kind. The second result is false for characters that do not form
// a single-character token.
func singleCharKind(c rune) (TokenKind, bool) {
	switch c {
	case '+':
		return PLUS_OP, true
	case '-':
		return MINUS_OP, true
	case '*':
		return STAR_OP, true
	case '/':
		return SLASH_OP, true
	case '%':
		return PERCENT_OP, true
	case '^':
		return CARET_OP, true
	case '!':
		return NOT_OP, true
	case '&':
		return AND_OP, true
	case '|':
		return OR_OP, true
	case '>':
		return GT_OP, true
	case '<':
		return LT_OP, true
	case '=':
		return EQUAL_OP, true
	case '@':
		return AT_SYMBOL, true
	case '.':
		return DOT_OP, true
	case ',':
		return COMMA_DELIM, true
	case ':':
		return COLON_DELIM, true
	case ';':
		return SEMICOLON_DELIM, true
	case '#':
		return POUND_SYMBOL, true
	case '$':
		return DOLLAR_SIGN, true
	case '?':
		return QUESTION_OP, true
	case '~':
		return TILDE_OP, true
	case '(':
		return LEFT_PAREN, true
	case ')':
		return RIGHT_PAREN, true
	case '[':
		return LEFT_BRACKET, true
	case ']':
		return RIGHT_BRACKET, true
	case '{':
		return LEFT_BRACE, true
	case '}':
		return RIGHT_BRACE, true
	}
	return INVALID_TYPE, false
}

// stringPrefixKind maps a literal prefix identifier to the literal kind of
// the string flavor it introduces. The second result is false when the
// identifier is not a recognized string prefix.
func stringPrefixKind(prefix string) (LiteralKind, bool) {
	switch prefix {
	case "r":
		return STR_RAW_LITERAL, true
	case "b":
		return BYTE_STR_LITERAL, true
	case "br":
		return BYTE_STR_RAW_LITERAL, true
	case "c":
		return C_STR_LITERAL, true
	case "cr":
		return C_STR_RAW_LITERAL, true
	}
	return "", false
}

// isRawPrefix reports whether the string prefix introduces a raw flavor,
// i.e. one whose body may be delimited by matched '#' runs and whose
// content is taken verbatim without escape processing.
func isRawPrefix(prefix string) bool {
	return prefix == "r" || prefix == "br" || prefix == "cr"
}
