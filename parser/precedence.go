package parser

import "github.com/nagc-lang/nagc/token"

// Binding powers for the Pratt operator sub-parser.
//
// Each infix operator carries a (left, right) pair. The Pratt loop exits
// when the next operator's left binding power is below the caller's
// minimum; otherwise it consumes the operator and parses the right-hand
// side with the operator's right binding power as the new minimum. A
// left < right pair yields left associativity, left > right yields right
// associativity. Parenthesized groups reset the minimum to 0.
//
// The table, highest binding first:
//
//	.                                  (15,16)
//	prefix ! -                         right 15
//	* / %                              (13,14)
//	+ -                                (12,13)
//	<< >>                              (11,10)  right-assoc
//	&                                  (10, 9)  right-assoc
//	^                                  ( 9, 8)  right-assoc
//	|                                  ( 8, 7)  right-assoc
//	== != < > <= >=                    ( 7, 7)  non-chaining
//	&&                                 ( 6, 5)
//	||                                 ( 5, 4)
//	.. ..=                             ( 4, 3)
//	<-                                 ( 3, 2)
//	= += -= *= /= %= ^= &= |=          ( 2, 1)

// prefixBindingPower returns the right binding power of a prefix
// operator. The second result is false for non-prefix tokens.
func prefixBindingPower(kind token.Kind) (int, bool) {
	switch kind {
	case token.NOT_OP, token.MINUS_OP:
		return 15, true
	}
	return 0, false
}

// infixBindingPower returns the (left, right) binding powers of an infix
// operator. The second result is false for non-infix tokens.
func infixBindingPower(kind token.Kind) (int, int, bool) {
	switch kind {
	case token.DOT_OP:
		return 15, 16, true

	case token.STAR_OP, token.SLASH_OP, token.PERCENT_OP:
		return 13, 14, true
	case token.PLUS_OP, token.MINUS_OP:
		return 12, 13, true

	case token.LEFT_SHIFT_OP, token.RIGHT_SHIFT_OP:
		return 11, 10, true

	case token.AND_OP:
		return 10, 9, true
	case token.CARET_OP:
		return 9, 8, true
	case token.OR_OP:
		return 8, 7, true

	// The comparison family is non-chaining: its right side parses at
	// the family's own level, so a chained comparison folds once and is
	// rejected by the Pratt loop's chain check, while the weaker && and
	// || stay outside: a == b && c is (a == b) && c.
	case token.EQ_OP, token.NE_OP, token.LT_OP, token.GT_OP, token.LE_OP, token.GE_OP:
		return 7, 7, true

	case token.ANDAND_OP:
		return 6, 5, true
	case token.OROR_OP:
		return 5, 4, true

	case token.DOTDOT_OP, token.DOTDOT_EQ_OP:
		return 4, 3, true

	case token.LEFT_ARROW:
		return 3, 2, true

	case token.EQUAL_OP, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.CARET_ASSIGN,
		token.AND_ASSIGN, token.OR_ASSIGN:
		return 2, 1, true
	}
	return 0, 0, false
}

// postfixBindingPower returns the left binding power of a postfix
// operator. No postfix operator is defined yet; the hook exists so the
// Pratt loop keeps its three-way shape.
func postfixBindingPower(kind token.Kind) (int, bool) {
	return 0, false
}

// isComparison reports whether the operator belongs to the non-chaining
// comparison family.
func isComparison(kind token.Kind) bool {
	switch kind {
	case token.EQ_OP, token.NE_OP, token.LT_OP, token.GT_OP, token.LE_OP, token.GE_OP:
		return true
	}
	return false
}
