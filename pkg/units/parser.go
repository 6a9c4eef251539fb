package units

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokNumber
	tokMul
	tokDiv
	tokPow
	tokLParen
	tokRParen
	// tokSuper is a superscript exponent such as "²".
	tokSuper
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var superscripts = map[rune]int{
	'¹': 1,
	'²': 2,
	'³': 3,
	'⁴': 4,
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '°' || r == '%'
}

func isNamePart(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r)
}

func tokenize(expr string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(expr) {
		r, size := utf8.DecodeRuneInString(expr[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '*':
			if strings.HasPrefix(expr[i:], "**") {
				toks = append(toks, token{kind: tokPow, text: "**", pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokMul, text: "*", pos: i})
				i++
			}
		case r == '^':
			toks = append(toks, token{kind: tokPow, text: "^", pos: i})
			i++
		case r == '/':
			toks = append(toks, token{kind: tokDiv, text: "/", pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case superscripts[r] != 0:
			toks = append(toks, token{kind: tokSuper, text: string(r), pos: i})
			i += size
		case unicode.IsDigit(r) || r == '.' || r == '-' || r == '+':
			j := scanNumber(expr, i)
			if j == i {
				return nil, &SyntaxError{Expr: expr, Pos: i, Reason: "unexpected character " + strconv.QuoteRune(r)}
			}
			toks = append(toks, token{kind: tokNumber, text: expr[i:j], pos: i})
			i = j
		case isNameStart(r):
			j := i + size
			for j < len(expr) {
				r2, size2 := utf8.DecodeRuneInString(expr[j:])
				if !isNamePart(r2) {
					break
				}
				j += size2
			}
			toks = append(toks, token{kind: tokName, text: expr[i:j], pos: i})
			i = j
		default:
			return nil, &SyntaxError{Expr: expr, Pos: i, Reason: "unexpected character " + strconv.QuoteRune(r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(expr)})
	return toks, nil
}

// scanNumber returns the end of the longest numeric literal starting at i,
// or i if there is none.
func scanNumber(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '-' || s[j] == '+') {
		j++
	}
	digits := 0
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
		digits++
	}
	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			digits++
		}
	}
	if digits == 0 {
		return i
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '-' || s[k] == '+') {
			k++
		}
		start := k
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > start {
			j = k
		}
	}
	return j
}

// parser implements:
//
//	expr   := term { ('*' | '/' | <implicit>) term }
//	term   := factor [ ('**' | '^') int | superscript ]
//	factor := name | number | '(' expr ')'
type parser struct {
	expr  string
	reg   *Registry
	toks  []token
	pos   int
	depth int
}

// maxNesting bounds parenthesis depth so recursion stays shallow.
const maxNesting = 32

func (p *parser) parse() (Unit, error) {
	if strings.TrimSpace(p.expr) == "" {
		return Unit{}, &SyntaxError{Expr: p.expr, Reason: "empty unit expression"}
	}

	toks, err := tokenize(p.expr)
	if err != nil {
		return Unit{}, err
	}
	p.toks = toks

	u, err := p.parseExpr()
	if err != nil {
		return Unit{}, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return Unit{}, p.errorf(t, "unexpected %q", t.text)
	}
	return u, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Expr: p.expr, Pos: t.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) parseExpr() (Unit, error) {
	left, err := p.parseTerm()
	if err != nil {
		return Unit{}, err
	}

	for {
		t := p.peek()
		switch t.kind {
		case tokMul, tokDiv:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return Unit{}, err
			}
			if t.kind == tokMul {
				left, err = left.mul(right)
			} else {
				left, err = left.div(right)
			}
			if err != nil {
				return Unit{}, err
			}
		case tokName, tokNumber, tokLParen:
			right, err := p.parseTerm()
			if err != nil {
				return Unit{}, err
			}
			left, err = left.mul(right)
			if err != nil {
				return Unit{}, err
			}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (Unit, error) {
	base, err := p.parseFactor()
	if err != nil {
		return Unit{}, err
	}

	t := p.peek()
	switch t.kind {
	case tokPow:
		p.next()
		nt := p.next()
		if nt.kind != tokNumber {
			return Unit{}, p.errorf(nt, "expected exponent after %q", t.text)
		}
		n, err := strconv.Atoi(nt.text)
		if err != nil {
			return Unit{}, p.errorf(nt, "exponent must be an integer, got %q", nt.text)
		}
		return base.pow(n)
	case tokSuper:
		p.next()
		return base.pow(superscripts[[]rune(t.text)[0]])
	}
	return base, nil
}

func (p *parser) parseFactor() (Unit, error) {
	t := p.next()
	switch t.kind {
	case tokName:
		return p.reg.Lookup(t.text)
	case tokNumber:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return Unit{}, p.errorf(t, "invalid number %q", t.text)
		}
		if f <= 0 {
			return Unit{}, p.errorf(t, "scale factor must be positive, got %s", t.text)
		}
		return Unit{Name: t.text, Scale: f, Dim: Dimensionless}, nil
	case tokLParen:
		if p.depth >= maxNesting {
			return Unit{}, p.errorf(t, "parentheses nested deeper than %d", maxNesting)
		}
		p.depth++
		u, err := p.parseExpr()
		p.depth--
		if err != nil {
			return Unit{}, err
		}
		if rt := p.next(); rt.kind != tokRParen {
			return Unit{}, p.errorf(rt, "expected \")\"")
		}
		return u, nil
	case tokEOF:
		return Unit{}, p.errorf(t, "unexpected end of expression")
	default:
		return Unit{}, p.errorf(t, "unexpected %q", t.text)
	}
}
