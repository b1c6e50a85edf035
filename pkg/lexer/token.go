package lexer

import (
	"fmt"
)

type TokenType int
type TokenCategory int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Literal value (if applicable), empty string if not
	Pos     Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, Pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     Pos,
	}
}

const (
	NONE TokenCategory = iota
	KEYWORD
	SEGMENT
	IDENTIFIER
	LITERAL
	DELIMITER
)

const (
	EOF TokenType = iota // End of file

	PUSH     // push
	POP      // pop
	ARITH    // add, sub, neg, eq, gt, lt, and, or, not
	LABEL    // label
	GOTO     // goto
	IFGOTO   // if-goto
	FUNCTION // function
	CALL     // call
	RETURN   // return

	SEG // local, argument, this, that, pointer, temp, constant, static

	ID  // symbol
	NUM // decimal number

	NEWLINE // end of line

	ILLEGAL // illegal token
)

var Keywords = map[string]TokenType{
	"push":     PUSH,
	"pop":      POP,
	"add":      ARITH,
	"sub":      ARITH,
	"neg":      ARITH,
	"eq":       ARITH,
	"gt":       ARITH,
	"lt":       ARITH,
	"and":      ARITH,
	"or":       ARITH,
	"not":      ARITH,
	"label":    LABEL,
	"goto":     GOTO,
	"if-goto":  IFGOTO,
	"function": FUNCTION,
	"call":     CALL,
	"return":   RETURN,
	"local":    SEG,
	"argument": SEG,
	"this":     SEG,
	"that":     SEG,
	"pointer":  SEG,
	"temp":     SEG,
	"constant": SEG,
	"static":   SEG,
}

var typeNames = map[TokenType]string{
	EOF:      "$",
	PUSH:     "push",
	POP:      "pop",
	ARITH:    "arith",
	LABEL:    "label",
	GOTO:     "goto",
	IFGOTO:   "if-goto",
	FUNCTION: "function",
	CALL:     "call",
	RETURN:   "return",
	SEG:      "segment",
	ID:       "id",
	NUM:      "num",
	NEWLINE:  "newline",
	ILLEGAL:  "illegal",
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("T_{%s, %q, nil, %s}", t.Type, t.Lexeme, t.Pos)
	}

	return fmt.Sprintf("T_{%s, %q, %q, %s}", t.Type, t.Lexeme, t.Literal, t.Pos)
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := typeNames[t]; ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch t {
	case PUSH, POP, ARITH, LABEL, GOTO, IFGOTO, FUNCTION, CALL, RETURN:
		return KEYWORD
	case SEG:
		return SEGMENT
	case ID:
		return IDENTIFIER
	case NUM:
		return LITERAL
	case NEWLINE:
		return DELIMITER
	default:
		return NONE
	}
}

// IsWord reports whether tokens of this type are spelled like a symbol, so
// they can stand for a label or function name
func (t TokenType) IsWord() bool {
	c := t.GetCategory()
	return c == KEYWORD || c == SEGMENT || c == IDENTIFIER
}

// IsKeyword checks if the given word is a keyword and returns its TokenType if it is
func IsKeyword(word string) (TokenType, bool) {
	tokenType, ok := Keywords[word]
	return tokenType, ok
}
