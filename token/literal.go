package token

// LiteralKind classifies a cooked literal token.
// The lexer distinguishes numeric bases; stream construction collapses
// bin/oct/dec/hex into Integer and keeps the exponent flag on Float.
type LiteralKind string

const (
	BOOL_LITERAL         LiteralKind = "Bool"
	BYTE_LITERAL         LiteralKind = "Byte"
	CHAR_LITERAL         LiteralKind = "Char"
	INTEGER_LITERAL      LiteralKind = "Integer"
	FLOAT_LITERAL        LiteralKind = "Float"
	STR_LITERAL          LiteralKind = "Str"
	STR_RAW_LITERAL      LiteralKind = "StrRaw"
	BYTE_STR_LITERAL     LiteralKind = "ByteStr"
	BYTE_STR_RAW_LITERAL LiteralKind = "ByteStrRaw"
	C_STR_LITERAL        LiteralKind = "CStr"
	C_STR_RAW_LITERAL    LiteralKind = "CStrRaw"
	ERROR_LITERAL        LiteralKind = "Error"
)

// Literal is the descriptor attached to every literal token.
//
// Fields:
//   - Kind: The literal's classification
//   - Prefix: Literal prefix, e.g. "r", "b", "br", "c" (empty for plain forms)
//   - Symbol: The literal body without prefix and suffix
//   - Suffix: The trailing type suffix, e.g. "_f64", "u32" (may be empty)
//   - BoolValue: The value of a Bool literal
//   - HasExponent: Whether a Float literal was written with an exponent
type Literal struct {
	Kind        LiteralKind `json:"literal_kind"`
	Prefix      string      `json:"prefix"`
	Symbol      string      `json:"symbol"`
	Suffix      string      `json:"suffix"`
	BoolValue   bool        `json:"bool_value,omitempty"`
	HasExponent bool        `json:"has_exponent,omitempty"`
}

// NewLiteral creates a literal descriptor with empty prefix and suffix.
func NewLiteral(kind LiteralKind, symbol string) *Literal {
	return &Literal{
		Kind:   kind,
		Symbol: symbol,
	}
}

// NewBoolLiteral creates the descriptor for a true/false literal.
func NewBoolLiteral(value bool) *Literal {
	return &Literal{
		Kind:      BOOL_LITERAL,
		BoolValue: value,
	}
}

// BinaryOperator is the semantic operator identity attached to AST binary
// operator nodes after lowering.
type BinaryOperator string

const (
	OPERATOR_EQUAL       BinaryOperator = "Equal"
	OPERATOR_ADD         BinaryOperator = "Add"
	OPERATOR_SUB         BinaryOperator = "Sub"
	OPERATOR_MUL         BinaryOperator = "Mul"
	OPERATOR_DIV         BinaryOperator = "Div"
	OPERATOR_MOD         BinaryOperator = "Mod"
	OPERATOR_XOR         BinaryOperator = "Xor"
	OPERATOR_OR          BinaryOperator = "Or"
	OPERATOR_AND         BinaryOperator = "And"
	OPERATOR_LEFT_SHIFT  BinaryOperator = "LeftShift"
	OPERATOR_RIGHT_SHIFT BinaryOperator = "RightShift"
	OPERATOR_LOGICAL_AND BinaryOperator = "LogicalAnd"
	OPERATOR_LOGICAL_OR  BinaryOperator = "LogicalOr"
	OPERATOR_EQ          BinaryOperator = "Eq"
	OPERATOR_NE          BinaryOperator = "Ne"
	OPERATOR_LT          BinaryOperator = "Lt"
	OPERATOR_GT          BinaryOperator = "Gt"
	OPERATOR_LE          BinaryOperator = "Le"
	OPERATOR_GE          BinaryOperator = "Ge"
	OPERATOR_DOT         BinaryOperator = "Dot"
	OPERATOR_RANGE       BinaryOperator = "Range"
	OPERATOR_RANGE_INCL  BinaryOperator = "RangeInclusive"
	OPERATOR_ADD_ASSIGN  BinaryOperator = "AddAssign"
	OPERATOR_SUB_ASSIGN  BinaryOperator = "SubAssign"
	OPERATOR_MUL_ASSIGN  BinaryOperator = "MulAssign"
	OPERATOR_DIV_ASSIGN  BinaryOperator = "DivAssign"
	OPERATOR_MOD_ASSIGN  BinaryOperator = "ModAssign"
	OPERATOR_XOR_ASSIGN  BinaryOperator = "XorAssign"
	OPERATOR_AND_ASSIGN  BinaryOperator = "AndAssign"
	OPERATOR_OR_ASSIGN   BinaryOperator = "OrAssign"
	OPERATOR_SEND        BinaryOperator = "Send"
)

// BinaryOperatorOf maps a glued operator token kind to its semantic
// operator. Compound assignments map to their *Assign operators. The
// second result is false for token kinds that do not lower to a binary
// operator, which includes the shift assignments <<= and >>=.
func BinaryOperatorOf(kind Kind) (BinaryOperator, bool) {
	switch kind {
	case EQUAL_OP:
		return OPERATOR_EQUAL, true
	case PLUS_OP:
		return OPERATOR_ADD, true
	case MINUS_OP:
		return OPERATOR_SUB, true
	case STAR_OP:
		return OPERATOR_MUL, true
	case SLASH_OP:
		return OPERATOR_DIV, true
	case PERCENT_OP:
		return OPERATOR_MOD, true
	case CARET_OP:
		return OPERATOR_XOR, true
	case OR_OP:
		return OPERATOR_OR, true
	case AND_OP:
		return OPERATOR_AND, true
	case LEFT_SHIFT_OP:
		return OPERATOR_LEFT_SHIFT, true
	case RIGHT_SHIFT_OP:
		return OPERATOR_RIGHT_SHIFT, true
	case ANDAND_OP:
		return OPERATOR_LOGICAL_AND, true
	case OROR_OP:
		return OPERATOR_LOGICAL_OR, true
	case EQ_OP:
		return OPERATOR_EQ, true
	case NE_OP:
		return OPERATOR_NE, true
	case LT_OP:
		return OPERATOR_LT, true
	case GT_OP:
		return OPERATOR_GT, true
	case LE_OP:
		return OPERATOR_LE, true
	case GE_OP:
		return OPERATOR_GE, true
	case DOT_OP:
		return OPERATOR_DOT, true
	case DOTDOT_OP:
		return OPERATOR_RANGE, true
	case DOTDOT_EQ_OP:
		return OPERATOR_RANGE_INCL, true
	case PLUS_ASSIGN:
		return OPERATOR_ADD_ASSIGN, true
	case MINUS_ASSIGN:
		return OPERATOR_SUB_ASSIGN, true
	case STAR_ASSIGN:
		return OPERATOR_MUL_ASSIGN, true
	case SLASH_ASSIGN:
		return OPERATOR_DIV_ASSIGN, true
	case PERCENT_ASSIGN:
		return OPERATOR_MOD_ASSIGN, true
	case CARET_ASSIGN:
		return OPERATOR_XOR_ASSIGN, true
	case AND_ASSIGN:
		return OPERATOR_AND_ASSIGN, true
	case OR_ASSIGN:
		return OPERATOR_OR_ASSIGN, true
	case LEFT_ARROW:
		return OPERATOR_SEND, true
	}
	return "", false
}
