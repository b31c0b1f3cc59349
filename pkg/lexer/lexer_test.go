package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmlkit/pkg/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexSimplePackage(t *testing.T) {
	toks := Lex([]byte("package Vehicle { part def Car; }"), token.DialectSysML)
	require.NotEmpty(t, toks)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)

	var nonTrivia []token.Kind
	for _, tk := range toks {
		if !tk.IsTrivia() && tk.Kind != token.EOF {
			nonTrivia = append(nonTrivia, tk.Kind)
		}
	}
	assert.Equal(t, []token.Kind{
		token.KW_PACKAGE, token.IDENT, token.L_BRACE,
		token.KW_PART, token.KW_DEF, token.IDENT, token.SEMICOLON,
		token.R_BRACE,
	}, nonTrivia)
}

func TestLexKeywordMaximalMunch(t *testing.T) {
	// "interaction" must not split into "in" + "teraction".
	toks := Lex([]byte("interaction"), token.DialectKerML)
	require.Len(t, toks, 2) // KW_INTERACTION + EOF
	assert.Equal(t, token.KW_INTERACTION, toks[0].Kind)
	assert.Equal(t, "interaction", toks[0].Text)
}

func TestLexUnrestrictedIdentifierRetainsQuotes(t *testing.T) {
	toks := Lex([]byte(`'vehicle model 1'`), token.DialectSysML)
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, token.IDENT_UNRESTR, toks[0].Kind)
	assert.Equal(t, `'vehicle model 1'`, toks[0].Text)
}

func TestLexUnrestrictedIdentifierEscapes(t *testing.T) {
	toks := Lex([]byte(`'a\'b\\c'`), token.DialectSysML)
	assert.Equal(t, token.IDENT_UNRESTR, toks[0].Kind)
	assert.Equal(t, `'a\'b\\c'`, toks[0].Text)
}

func TestLexOperators(t *testing.T) {
	toks := Lex([]byte(":>> :> ::> :: => ~ : . .."), token.DialectSysML)
	got := kinds(toks)
	want := []token.Kind{
		token.COLON_GT_GT, token.WHITESPACE,
		token.COLON_GT, token.WHITESPACE,
		token.COLON_COLON_GT, token.WHITESPACE,
		token.COLON_COLON, token.WHITESPACE,
		token.FAT_ARROW, token.WHITESPACE,
		token.TILDE, token.WHITESPACE,
		token.COLON, token.WHITESPACE,
		token.DOT, token.WHITESPACE,
		token.DOT_DOT, token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestLexNumbers(t *testing.T) {
	toks := Lex([]byte("42 3.14 .5 1e10 2.5e-3"), token.DialectSysML)
	var lits []token.Token
	for _, tk := range toks {
		if tk.Kind == token.INTEGER || tk.Kind == token.DECIMAL {
			lits = append(lits, tk)
		}
	}
	require.Len(t, lits, 5)
	assert.Equal(t, token.INTEGER, lits[0].Kind)
	assert.Equal(t, token.DECIMAL, lits[1].Kind)
	assert.Equal(t, token.DECIMAL, lits[2].Kind)
	assert.Equal(t, token.DECIMAL, lits[3].Kind)
	assert.Equal(t, token.DECIMAL, lits[4].Kind)
}

func TestLexUnknownByteIsErrorToken(t *testing.T) {
	toks := Lex([]byte("a \x01 b"), token.DialectSysML)
	var errTok *token.Token
	for i := range toks {
		if toks[i].Kind == token.ERROR {
			errTok = &toks[i]
		}
	}
	require.NotNil(t, errTok)
	assert.Equal(t, "\x01", errTok.Text)
}

func TestLexIsTotalRoundTrip(t *testing.T) {
	src := "package P {\n  // comment\n  part def 'x y'; /* block */\n}\n"
	toks := Lex([]byte(src), token.DialectSysML)
	var rebuilt string
	for _, tk := range toks {
		rebuilt += tk.Text
	}
	assert.Equal(t, src, rebuilt)
}

func TestLexDialectGatesSysMLKeywords(t *testing.T) {
	toks := Lex([]byte("part"), token.DialectKerML)
	assert.Equal(t, token.IDENT, toks[0].Kind, "part is a plain identifier in bare KerML")

	toks = Lex([]byte("part"), token.DialectSysML)
	assert.Equal(t, token.KW_PART, toks[0].Kind)
}
