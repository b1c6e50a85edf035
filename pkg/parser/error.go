package parser

import (
	"fmt"
	"hackvm/pkg/color"
	"hackvm/pkg/lexer"
)

// addError records a parsing error at the token's location
func (p *Parser) addError(tok lexer.Token, msg string) {
	formatted := color.RedText(msg) + " at " + color.YellowText(fmt.Sprintf("Line: %d, Column %d", tok.Pos.Line, tok.Pos.Column))
	p.errors = append(p.errors, formatted)
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}
