package lexer

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

// bomUTF8 is the UTF-8 Byte Order Mark.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize performs input normalization at the lexer boundary:
//  1. strips a leading UTF-8 BOM if present
//  2. applies Unicode NFC normalization
//
// This ensures that lexically equivalent source produces identical token
// streams regardless of the encoding variant used for combining characters,
// e.g. "café" in NFC vs NFD form lexes to the same STRING token content.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)

	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}

	return src
}
