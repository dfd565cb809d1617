package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// evalExpr evaluates a small arithmetic grammar: integer literals,
// identifiers from the symbol table, + - * /, and parentheses.
// Division is real-number division; the final result is floored.
// This is deliberately an allow-listed interpreter, not a general
// expression language.
func evalExpr(input string, symbols map[string]int) (int, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return 0, err
	}

	p := &exprParser{tokens: tokens, symbols: symbols}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.tokens) {
		return 0, fmt.Errorf("unexpected token %q", p.tokens[p.pos].text)
	}

	return int(math.Floor(value)), nil
}

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenIdent
	tokenOp
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(input string) ([]token, error) {
	var tokens []token

	for i := 0; i < len(input); {
		ch := rune(input[i])

		switch {
		case unicode.IsSpace(ch):
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "("})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")"})
			i++
		case strings.ContainsRune("+-*/", ch):
			tokens = append(tokens, token{kind: tokenOp, text: string(ch)})
			i++
		case unicode.IsDigit(ch):
			start := i
			for i < len(input) && unicode.IsDigit(rune(input[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: input[start:i]})
		case unicode.IsLetter(ch) || ch == '_':
			start := i
			for i < len(input) && (unicode.IsLetter(rune(input[i])) || unicode.IsDigit(rune(input[i])) || input[i] == '_') {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: input[start:i]})
		default:
			return nil, fmt.Errorf("unexpected character %q", ch)
		}
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression")
	}

	return tokens, nil
}

type exprParser struct {
	tokens  []token
	symbols map[string]int
	pos     int
}

func (p *exprParser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

// expr := term (('+' | '-') term)*
func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}

		if tok.text == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

// term := factor (('*' | '/') factor)*
func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokenOp || (tok.text != "*" && tok.text != "/") {
			return left, nil
		}
		p.pos++

		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}

		if tok.text == "*" {
			left *= right
		} else {
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		}
	}
}

// factor := number | ident | '(' expr ')' | '-' factor
func (p *exprParser) parseFactor() (float64, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}

	switch tok.kind {
	case tokenNumber:
		p.pos++
		n, err := strconv.Atoi(tok.text)
		if err != nil {
			return 0, err
		}
		return float64(n), nil

	case tokenIdent:
		p.pos++
		value, found := p.symbols[tok.text]
		if !found {
			return 0, fmt.Errorf("unknown identifier %q", tok.text)
		}
		return float64(value), nil

	case tokenLParen:
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokenRParen {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil

	case tokenOp:
		if tok.text == "-" {
			p.pos++
			value, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			return -value, nil
		}
	}

	return 0, fmt.Errorf("unexpected token %q", tok.text)
}
