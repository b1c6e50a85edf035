package parser

import (
	"errors"
	"fmt"
	"hackvm/pkg/command"
	"hackvm/pkg/lexer"
	"strconv"
)

type Parser struct {
	lexer        *lexer.Lexer      // lexer instance
	currentToken lexer.Token       // current token
	line         []lexer.Token     // tokens of the line being parsed
	commands     []command.Command // parsed commands in source order
	errors       []string          // list of errors
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: []string{},
	}

	// Initialize current token
	p.nextToken()

	return p
}

// Parse parses the whole input, one command per line. A bad line is
// reported and skipped so that every error in the input is collected.
func (p *Parser) Parse() {
	for p.currentToken.Type != lexer.EOF {
		p.line = p.line[:0]
		for p.currentToken.Type != lexer.NEWLINE && p.currentToken.Type != lexer.EOF {
			p.line = append(p.line, p.currentToken)
			p.nextToken()
		}

		if len(p.line) > 0 {
			if cmd, ok := p.parseLine(); ok {
				p.commands = append(p.commands, cmd)
			}
		}

		if p.currentToken.Type == lexer.NEWLINE {
			p.nextToken()
		}
	}
}

// parseLine builds a command from the tokens of one line
func (p *Parser) parseLine() (command.Command, bool) {
	head := p.line[0]

	for _, tok := range p.line {
		if tok.Type == lexer.ILLEGAL {
			p.addError(tok, fmt.Sprintf("Illegal character '%s'", tok.Lexeme))
			return nil, false
		}
	}

	switch head.Type {
	case lexer.ARITH:
		if !p.expectFields(1) {
			return nil, false
		}
		return p.build(command.NewArithmeticLogical(command.Operation(head.Lexeme)))

	case lexer.PUSH, lexer.POP:
		if !p.expectFields(3) {
			return nil, false
		}
		if p.line[1].Type != lexer.SEG {
			p.addError(p.line[1], "Expected segment")
			return nil, false
		}
		index, ok := p.number(p.line[2])
		if !ok {
			return nil, false
		}
		return p.build(command.NewMemoryTransfer(command.Operation(head.Lexeme), command.Segment(p.line[1].Lexeme), index))

	case lexer.LABEL, lexer.GOTO, lexer.IFGOTO:
		if !p.expectFields(2) {
			return nil, false
		}
		label, ok := p.symbol(p.line[1])
		if !ok {
			return nil, false
		}
		return p.build(command.NewBranching(command.Operation(head.Lexeme), label))

	case lexer.FUNCTION, lexer.CALL:
		if !p.expectFields(3) {
			return nil, false
		}
		name, ok := p.symbol(p.line[1])
		if !ok {
			return nil, false
		}
		n, ok := p.number(p.line[2])
		if !ok {
			return nil, false
		}
		if head.Type == lexer.FUNCTION {
			return p.build(command.NewFunctionDefinition(name, n))
		}
		return p.build(command.NewFunctionCall(name, n))

	case lexer.RETURN:
		if !p.expectFields(1) {
			return nil, false
		}
		return command.Return{}, true

	default:
		p.addError(head, fmt.Sprintf("Unknown command '%s'", head.Lexeme))
		return nil, false
	}
}

// build records a constructor error against the line
func (p *Parser) build(cmd command.Command, err error) (command.Command, bool) {
	if err != nil {
		p.addError(p.line[0], err.Error())
		return nil, false
	}
	return cmd, true
}

// expectFields checks the number of fields on the line
func (p *Parser) expectFields(n int) bool {
	if len(p.line) < n {
		last := p.line[len(p.line)-1]
		p.addError(last, fmt.Sprintf("Missing operand for '%s'", p.line[0].Lexeme))
		return false
	}
	if len(p.line) > n {
		p.addError(p.line[n], fmt.Sprintf("Unexpected token '%s'", p.line[n].Lexeme))
		return false
	}
	return true
}

// number converts a NUM token
func (p *Parser) number(tok lexer.Token) (int, bool) {
	if tok.Type != lexer.NUM {
		p.addError(tok, "Expected number")
		return 0, false
	}
	n, err := strconv.Atoi(tok.Literal)
	if err != nil {
		p.addError(tok, "Number out of range")
		return 0, false
	}
	return n, true
}

// symbol accepts any word token as a name
func (p *Parser) symbol(tok lexer.Token) (string, bool) {
	if !tok.Type.IsWord() {
		p.addError(tok, "Expected symbol")
		return "", false
	}
	return tok.Lexeme, true
}

// nextToken advances to the next token from the lexer
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// Commands returns the parsed commands
func (p *Parser) Commands() []command.Command {
	return p.commands
}

// ParseString parses src and returns its commands, or the first error
func ParseString(src string) ([]command.Command, error) {
	p := NewParser(lexer.NewLexer(src))
	p.Parse()

	if errs := p.Errors(); len(errs) > 0 {
		return nil, errors.New(errs[0])
	}

	return p.Commands(), nil
}
