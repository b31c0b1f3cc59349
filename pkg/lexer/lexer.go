// Package lexer turns KerML/SysML v2 source text into a total stream of
// tokens: every byte of the input is accounted for, including whitespace
// and comments as trivia, and unrecognized bytes become single-byte ERROR
// tokens rather than aborting the scan.
package lexer

import (
	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/token"
)

// Lex scans src under dialect d and returns the full token stream in
// source order, trivia included. Lex never fails.
func Lex(src []byte, d token.Dialect) []token.Token {
	l := &lexer{src: src, dialect: d}
	var out []token.Token
	for {
		tok := l.next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

type lexer struct {
	src     []byte
	pos     int
	dialect token.Dialect
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) make(kind token.Kind, start int) token.Token {
	return token.Token{
		Kind:  kind,
		Range: ids.NewRange(uint32(start), uint32(l.pos)),
		Text:  string(l.src[start:l.pos]),
	}
}

func (l *lexer) next() token.Token {
	start := l.pos
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Range: ids.NewRange(uint32(start), uint32(start)), Text: ""}
	}

	c := l.peek()
	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		return l.lexWhitespace(start)
	case c == '/' && l.peekAt(1) == '/':
		return l.lexLineComment(start)
	case c == '/' && l.peekAt(1) == '*':
		return l.lexBlockComment(start)
	case c == '\'':
		return l.lexUnrestrictedIdent(start)
	case c == '"':
		return l.lexString(start)
	case isIdentStart(c):
		return l.lexIdentOrKeyword(start)
	case isDigit(c):
		return l.lexNumber(start)
	default:
		return l.lexPunct(start)
	}
}

func (l *lexer) lexWhitespace(start int) token.Token {
	for l.pos < len(l.src) {
		c := l.peek()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.pos++
			continue
		}
		break
	}
	return l.make(token.WHITESPACE, start)
}

func (l *lexer) lexLineComment(start int) token.Token {
	l.pos += 2
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	return l.make(token.LINE_COMMENT, start)
}

func (l *lexer) lexBlockComment(start int) token.Token {
	l.pos += 2
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.pos += 2
			return l.make(token.BLOCK_COMMENT, start)
		}
		l.pos++
	}
	// Unterminated: consume to EOF; the parser will report the missing close.
	return l.make(token.BLOCK_COMMENT, start)
}

// lexUnrestrictedIdent scans '...' with \' and \\ escapes, quotes retained.
func (l *lexer) lexUnrestrictedIdent(start int) token.Token {
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.peek()
		if c == '\\' && l.pos+1 < len(l.src) && (l.peekAt(1) == '\'' || l.peekAt(1) == '\\') {
			l.pos += 2
			continue
		}
		if c == '\'' {
			l.pos++
			return l.make(token.IDENT_UNRESTR, start)
		}
		l.pos++
	}
	// Unterminated: whole remainder is one ERROR-ish unrestricted ident;
	// the parser's recovery will flag the missing closing quote via its
	// own expected-token check.
	return l.make(token.IDENT_UNRESTR, start)
}

func (l *lexer) lexString(start int) token.Token {
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.peek()
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if c == '"' {
			l.pos++
			return l.make(token.STRING, start)
		}
		l.pos++
	}
	return l.make(token.STRING, start)
}

func (l *lexer) lexIdentOrKeyword(start int) token.Token {
	l.pos++
	for l.pos < len(l.src) && isIdentCont(l.peek()) {
		l.pos++
	}
	word := string(l.src[start:l.pos])
	if kind, ok := token.LookupKeyword(word, l.dialect); ok {
		return l.make(kind, start)
	}
	return l.make(token.IDENT, start)
}

func (l *lexer) lexNumber(start int) token.Token {
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.pos++
	}
	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.pos++
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.pos
		p := l.pos + 1
		if p < len(l.src) && (l.src[p] == '+' || l.src[p] == '-') {
			p++
		}
		if p < len(l.src) && isDigit(l.src[p]) {
			isFloat = true
			l.pos = p
			for l.pos < len(l.src) && isDigit(l.peek()) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	if isFloat {
		return l.make(token.DECIMAL, start)
	}
	return l.make(token.INTEGER, start)
}

// lexLeadingDotNumber handles a DECIMAL literal starting with '.', e.g. .5 —
// called from lexPunct when '.' is followed by a digit.
func (l *lexer) lexLeadingDotNumber(start int) token.Token {
	l.pos++ // consume '.'
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.pos++
	}
	return l.make(token.DECIMAL, start)
}

// three-byte, two-byte, then one-byte operator tables, tried in that order
// (maximal munch).
var threeByteOps = map[string]token.Kind{
	"::>": token.COLON_COLON_GT,
	":>>": token.COLON_GT_GT,
}

var twoByteOps = map[string]token.Kind{
	"::": token.COLON_COLON,
	":>": token.COLON_GT,
	"->": token.ARROW,
	"=>": token.FAT_ARROW,
	"..": token.DOT_DOT,
	"@@": token.AT_AT,
	"**": token.STAR_STAR,
	"==": token.EQ_EQ,
	"!=": token.BANG_EQ,
	"<=": token.LT_EQ,
	">=": token.GT_EQ,
}

var oneByteOps = map[byte]token.Kind{
	'{': token.L_BRACE, '}': token.R_BRACE,
	'[': token.L_BRACKET, ']': token.R_BRACKET,
	'(': token.L_PAREN, ')': token.R_PAREN,
	';': token.SEMICOLON, ':': token.COLON,
	'.': token.DOT, ',': token.COMMA, '=': token.EQ,
	'~': token.TILDE, '@': token.AT, '*': token.STAR,
	'+': token.PLUS, '-': token.MINUS, '/': token.SLASH,
	'%': token.PERCENT, '?': token.QUESTION, '!': token.BANG,
	'|': token.PIPE, '&': token.AMP, '$': token.DOLLAR,
	'<': token.LT, '>': token.GT,
}

func (l *lexer) lexPunct(start int) token.Token {
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		return l.lexLeadingDotNumber(start)
	}
	rest := l.src[l.pos:]
	if len(rest) >= 3 {
		if k, ok := threeByteOps[string(rest[:3])]; ok {
			l.pos += 3
			return l.make(k, start)
		}
	}
	if len(rest) >= 2 {
		if k, ok := twoByteOps[string(rest[:2])]; ok {
			l.pos += 2
			return l.make(k, start)
		}
	}
	if k, ok := oneByteOps[l.peek()]; ok {
		l.pos++
		return l.make(k, start)
	}
	// Unknown byte: one-byte ERROR token, total-lexer guarantee.
	l.pos++
	return l.make(token.ERROR, start)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
