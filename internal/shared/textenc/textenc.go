// Package textenc decodes the text inputs of the pipeline. Exports produced by
// spreadsheet tools frequently start with a UTF-8 byte order mark, which must
// not leak into the first header name or break JSON decoding. Older exports
// are not UTF-8 at all and come in the Windows-1252 code page.
package textenc

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by DecodeCharset
const (
	CharsetUTF8        = "utf-8"
	CharsetUTF16       = "utf-16"
	CharsetWindows1252 = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOM returns the UTF-8 byte order mark
func BOM() []byte {
	return append([]byte(nil), utf8BOM...)
}

// Decode returns data as UTF-8 with any leading BOM removed
func Decode(data []byte) ([]byte, error) {
	out, _, err := DecodeCharset(data)
	return out, err
}

// DecodeCharset returns data as UTF-8 together with the charset it was read as.
// UTF-16 with a BOM is transcoded. Input that is not valid UTF-8 is read as
// Windows-1252 instead of having its bytes replaced.
func DecodeCharset(data []byte) ([]byte, string, error) {
	if hasUTF16BOM(data) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode utf-16: %w", err)
		}
		return out, CharsetUTF16, nil
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, CharsetUTF8, nil
	}

	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode windows-1252: %w", err)
	}
	return out, CharsetWindows1252, nil
}

// ReadAll reads r to the end and decodes it with DecodeCharset
func ReadAll(r io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	return DecodeCharset(data)
}

// EscapeNonASCII rewrites every non-ASCII character of an encoded JSON
// document as a \uXXXX escape, using surrogate pairs above the BMP. Non-ASCII
// bytes only occur inside JSON strings, so the result decodes to the same value.
func EscapeNonASCII(data []byte) []byte {
	ascii := true
	for _, b := range data {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data) + len(data)/4)
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		switch {
		case r < utf8.RuneSelf:
			buf.WriteByte(byte(r))
		case r > 0xFFFF:
			r -= 0x10000
			fmt.Fprintf(&buf, `\u%04x\u%04x`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))
		default:
			fmt.Fprintf(&buf, `\u%04x`, r)
		}
	}
	return buf.Bytes()
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 && ((data[0] == 0xFE && data[1] == 0xFF) || (data[0] == 0xFF && data[1] == 0xFE))
}
