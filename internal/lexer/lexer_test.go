package lexer

import (
	"testing"

	"github.com/corrosion-lang/corrosion/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `let x = 5 + 10;
fn add(a: Int, b: Int) -> Int { a + b }

if x > 10 { print("big"); } else { print("small"); }

for i in range(1, 4) { print(i); };

cons(1, []); head(l); tail(l); fst(p); snd(p);
inl(1); inr(2);
case v of inl n => n | inr m => m

import "std.corr" as std;

"a\nb" != "" && true || false
// line comment
/* block comment */
`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.LET, "let"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.PLUS, "+"},
		{token.INT, "10"},
		{token.SEMICOLON, ";"},

		{token.FN, "fn"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.COLON, ":"},
		{token.IDENT, "Int"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.COLON, ":"},
		{token.IDENT, "Int"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.IDENT, "Int"},
		{token.LBRACE, "{"},
		{token.IDENT, "a"},
		{token.PLUS, "+"},
		{token.IDENT, "b"},
		{token.RBRACE, "}"},

		{token.IF, "if"},
		{token.IDENT, "x"},
		{token.GT, ">"},
		{token.INT, "10"},
		{token.LBRACE, "{"},
		{token.PRINT, "print"},
		{token.LPAREN, "("},
		{token.STRING, "big"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.ELSE, "else"},
		{token.LBRACE, "{"},
		{token.PRINT, "print"},
		{token.LPAREN, "("},
		{token.STRING, "small"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},

		{token.FOR, "for"},
		{token.IDENT, "i"},
		{token.IN, "in"},
		{token.RANGE, "range"},
		{token.LPAREN, "("},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "4"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.PRINT, "print"},
		{token.LPAREN, "("},
		{token.IDENT, "i"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.SEMICOLON, ";"},

		{token.CONS, "cons"},
		{token.LPAREN, "("},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.LBRACKET, "["},
		{token.RBRACKET, "]"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.HEAD, "head"},
		{token.LPAREN, "("},
		{token.IDENT, "l"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.TAIL, "tail"},
		{token.LPAREN, "("},
		{token.IDENT, "l"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.FST, "fst"},
		{token.LPAREN, "("},
		{token.IDENT, "p"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.SND, "snd"},
		{token.LPAREN, "("},
		{token.IDENT, "p"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.INL, "inl"},
		{token.LPAREN, "("},
		{token.INT, "1"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.INR, "inr"},
		{token.LPAREN, "("},
		{token.INT, "2"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},

		{token.CASE, "case"},
		{token.IDENT, "v"},
		{token.OF, "of"},
		{token.INL, "inl"},
		{token.IDENT, "n"},
		{token.FARROW, "=>"},
		{token.IDENT, "n"},
		{token.PIPE, "|"},
		{token.INR, "inr"},
		{token.IDENT, "m"},
		{token.FARROW, "=>"},
		{token.IDENT, "m"},

		{token.IMPORT, "import"},
		{token.STRING, "std.corr"},
		{token.AS, "as"},
		{token.IDENT, "std"},
		{token.SEMICOLON, ";"},

		{token.STRING, "a\nb"},
		{token.NEQ, "!="},
		{token.STRING, ""},
		{token.AND, "&&"},
		{token.TRUE, "true"},
		{token.OR, "||"},
		{token.FALSE, "false"},

		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestLineColumnTracking(t *testing.T) {
	l := New("let x\n= 1;")
	tok := l.NextToken() // let
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("expected let at 1:1, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	l.NextToken()       // x
	tok = l.NextToken()  // =
	if tok.Pos.Line != 2 {
		t.Fatalf("expected '=' on line 2, got line %d", tok.Pos.Line)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for unterminated string, got %s", tok.Type)
	}
}
