package lexer

import (
	"bytes"
	"testing"

	"github.com/corrosion-lang/corrosion/internal/token"
	"golang.org/x/text/unicode/norm"
)

// nfcCafe and nfdCafe are the same visible word, "cafe" with an accented
// e, in two different Unicode encodings: nfcCafe uses the single
// precomposed codepoint U+00E9, nfdCafe uses the base letter 'e' followed
// by a combining acute accent U+0301. Normalize must map the latter to
// the former.
var (
	nfcCafe = "café"
	nfdCafe = "café"
)

func TestBOMStripping(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{"with_bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, []byte("hi")},
		{"without_bom", []byte("hi"), []byte("hi")},
		{"empty_with_bom", bomUTF8, []byte{}},
		{"partial_bom", []byte{0xEF, 0xBB, 'h', 'i'}, []byte{0xEF, 0xBB, 'h', 'i'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if !bytes.Equal(result, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNFCNormalization(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already_nfc", nfcCafe, nfcCafe},
		{"nfd_to_nfc", nfdCafe, nfcCafe},
		{"ascii_unchanged", "hello world", "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := string(Normalize([]byte(tt.input)))
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
			if !norm.NFC.IsNormalString(result) {
				t.Errorf("result is not in NFC form")
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, input := range []string{"hello", nfcCafe, nfdCafe, "﻿hello"} {
		first := Normalize([]byte(input))
		second := Normalize(first)
		if !bytes.Equal(first, second) {
			t.Errorf("Normalize not idempotent for %q: first=%q second=%q", input, first, second)
		}
	}
}

// TestIdentifierEncodingInvariance is the canary: a unicode identifier
// written in NFD form must lex to the same token stream as its NFC
// spelling, since the lexer normalizes at the boundary before scanning.
func TestIdentifierEncodingInvariance(t *testing.T) {
	nfc := New("let " + nfcCafe + " = 1;")
	nfd := New("let " + nfdCafe + " = 1;")

	for {
		a, b := nfc.NextToken(), nfd.NextToken()
		if a.Type != b.Type || a.Literal != b.Literal {
			t.Fatalf("token mismatch: nfc=%v nfd=%v", a, b)
		}
		if a.Type == token.EOF {
			break
		}
	}
}
