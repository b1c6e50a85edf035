package lexer

import (
	"regexp"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

// Token regex patterns. Keywords are matched as ID and reclassified.
var tokenRegexes = map[TokenType]tokenRegex{
	IFGOTO:  {regexp.MustCompile(`^if-goto\b`), `^if-goto\b`},
	ID:      {regexp.MustCompile(`^[A-Za-z_.$:][A-Za-z0-9_.$:]*`), `^[A-Za-z_.$:][A-Za-z0-9_.$:]*`},
	NUM:     {regexp.MustCompile(`^\d+`), `^\d+`},
	NEWLINE: {regexp.MustCompile(`^\r?\n`), `^\r?\n`},
}

var (
	whitespaceRegex = regexp.MustCompile(`^[ \t\f\v]+`)
	commentRegex    = regexp.MustCompile(`^//[^\n]*`)
)

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{IFGOTO, NUM, ID, NEWLINE}

// Get the regex pattern for a token type
func (t TokenType) Regex() *regexp.Regexp {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Pattern
	}

	return nil
}

// Match the token at the start of the string. Whitespace and comments are
// reported as a matched EOF with their lexeme so the caller can skip them.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.Pattern.FindString(s); match != "" {
				if tokenType == ID {
					if kw, ok := IsKeyword(match); ok {
						return kw, match, true
					}
				}
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}
