package cutelog

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// fallbackCharsets are tried in order when the input is not valid UTF-8.
var fallbackCharsets = []encoding.Encoding{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// ToSafeUTF8 converts arbitrary bytes into a valid UTF-8 string. It never fails:
// bytes that cannot be decoded end up as '?'.
func ToSafeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	for _, enc := range fallbackCharsets {
		if s, ok := decodeLossless(enc, b); ok {
			return s
		}
	}
	return strings.ToValidUTF8(string(b), "?")
}

// SafeString is ToSafeUTF8 for string input; valid strings are returned as is.
func SafeString(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return ToSafeUTF8([]byte(s))
}

// decodeLossless decodes b with enc and rejects results where the decoder had to
// substitute undefined bytes.
func decodeLossless(enc encoding.Encoding, b []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil || !utf8.Valid(out) {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}
