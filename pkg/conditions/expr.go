package conditions

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/fxmartin/create-project-sub002/pkg/schema"
)

// evalExpr evaluates a restricted boolean expression against the
// resolved-variable map. The grammar is intentionally tiny: literals,
// variable lookups, and/or/not, comparisons, and parentheses. There is
// no call syntax, no indexing, and no way to reach host code.
//
//	expr    := or
//	or      := and ("or" and)*
//	and     := not ("and" not)*
//	not     := "not" not | cmp
//	cmp     := primary (("=="|"!="|"<"|"<="|">"|">=") primary)?
//	primary := "(" expr ")" | literal | identifier
func evalExpr(input string, vars map[string]interface{}) (bool, error) {
	tokens, err := lexExpr(input)
	if err != nil {
		return false, err
	}
	p := &exprParser{tokens: tokens, vars: vars}
	value, err := p.parseOr()
	if err != nil {
		return false, err
	}
	if p.pos != len(p.tokens) {
		return false, fmt.Errorf("unexpected token %q", p.tokens[p.pos].text)
	}
	return truthy(value), nil
}

type exprTokenKind int

const (
	tokIdent exprTokenKind = iota
	tokString
	tokNumber
	tokOp
	tokLParen
	tokRParen
)

type exprToken struct {
	kind exprTokenKind
	text string
}

func lexExpr(input string) ([]exprToken, error) {
	var tokens []exprToken
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			tokens = append(tokens, exprToken{tokLParen, "("})
			i++
		case c == ')':
			tokens = append(tokens, exprToken{tokRParen, ")"})
			i++
		case c == '\'' || c == '"':
			quote := c
			j := i + 1
			for j < len(input) && input[j] != quote {
				j++
			}
			if j >= len(input) {
				return nil, fmt.Errorf("unterminated string")
			}
			tokens = append(tokens, exprToken{tokString, input[i+1 : j]})
			i = j + 1
		case strings.ContainsRune("=!<>", rune(c)):
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, exprToken{tokOp, input[i : i+2]})
				i += 2
			} else if c == '<' || c == '>' {
				tokens = append(tokens, exprToken{tokOp, string(c)})
				i++
			} else {
				return nil, fmt.Errorf("unexpected character %q", c)
			}
		case unicode.IsDigit(rune(c)) || (c == '-' && i+1 < len(input) && unicode.IsDigit(rune(input[i+1]))):
			j := i + 1
			for j < len(input) && (unicode.IsDigit(rune(input[j])) || input[j] == '.') {
				j++
			}
			tokens = append(tokens, exprToken{tokNumber, input[i:j]})
			i = j
		case unicode.IsLetter(rune(c)) || c == '_':
			j := i + 1
			for j < len(input) && (unicode.IsLetter(rune(input[j])) || unicode.IsDigit(rune(input[j])) || input[j] == '_') {
				j++
			}
			tokens = append(tokens, exprToken{tokIdent, input[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", c)
		}
	}
	return tokens, nil
}

type exprParser struct {
	tokens []exprToken
	pos    int
	vars   map[string]interface{}
}

func (p *exprParser) peek() (exprToken, bool) {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos], true
	}
	return exprToken{}, false
}

func (p *exprParser) parseOr() (interface{}, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokIdent || !strings.EqualFold(tok.text, "or") {
			return left, nil
		}
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = truthy(left) || truthy(right)
	}
}

func (p *exprParser) parseAnd() (interface{}, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokIdent || !strings.EqualFold(tok.text, "and") {
			return left, nil
		}
		p.pos++
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = truthy(left) && truthy(right)
	}
}

func (p *exprParser) parseNot() (interface{}, error) {
	tok, ok := p.peek()
	if ok && tok.kind == tokIdent && strings.EqualFold(tok.text, "not") {
		p.pos++
		value, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return !truthy(value), nil
	}
	return p.parseCmp()
}

func (p *exprParser) parseCmp() (interface{}, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	tok, ok := p.peek()
	if !ok || tok.kind != tokOp {
		return left, nil
	}
	p.pos++
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	switch tok.text {
	case "==":
		return looseEqual(left, right), nil
	case "!=":
		return !looseEqual(left, right), nil
	case "<":
		return evalOrdering(schema.OpLess, left, right), nil
	case "<=":
		return evalOrdering(schema.OpLessEqual, left, right), nil
	case ">":
		return evalOrdering(schema.OpGreater, left, right), nil
	case ">=":
		return evalOrdering(schema.OpGreaterEqual, left, right), nil
	}
	return nil, fmt.Errorf("unknown operator %q", tok.text)
}

func (p *exprParser) parsePrimary() (interface{}, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	switch tok.kind {
	case tokLParen:
		p.pos++
		value, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil
	case tokString:
		p.pos++
		return tok.text, nil
	case tokNumber:
		p.pos++
		n, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", tok.text)
		}
		return n, nil
	case tokIdent:
		p.pos++
		switch strings.ToLower(tok.text) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		// An absent variable resolves to nil, which is falsey and
		// compares unequal to everything.
		return p.vars[tok.text], nil
	}
	return nil, fmt.Errorf("unexpected token %q", tok.text)
}

// truthy converts an expression value to a boolean: booleans as-is,
// non-empty strings true (modulo the literal tokens), non-zero numbers
// true, nil false.
func truthy(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		if b, ok := boolLiteral(value); ok {
			return b
		}
		return value != ""
	case float64:
		return value != 0
	case int:
		return value != 0
	case []string:
		return len(value) > 0
	case []interface{}:
		return len(value) > 0
	}
	return false
}
