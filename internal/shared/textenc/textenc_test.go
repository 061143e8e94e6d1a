package textenc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCharset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		charset string
	}{
		{name: "with bom", input: "\xEF\xBB\xBFOrder #,Country\n", want: "Order #,Country\n", charset: CharsetUTF8},
		{name: "without bom", input: "Order #,Country\n", want: "Order #,Country\n", charset: CharsetUTF8},
		{name: "empty", input: "", want: "", charset: CharsetUTF8},
		{name: "utf-8 umlaut", input: "M\xc3\xbcller", want: "Müller", charset: CharsetUTF8},
		{name: "utf16 little endian", input: "\xFF\xFEa\x00b\x00", want: "ab", charset: CharsetUTF16},
		{name: "windows-1252", input: "DT1,M\xfcller,\x80 5\n", want: "DT1,Müller,€ 5\n", charset: CharsetWindows1252},
		{name: "windows-1252 after bom", input: "\xEF\xBB\xBFStra\xdfe", want: "Straße", charset: CharsetWindows1252},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, charset, err := ReadAll(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
			assert.Equal(t, tt.charset, charset)
			assert.NotContains(t, string(out), "�")
		})
	}
}

func TestDecode(t *testing.T) {
	out, err := Decode([]byte("\xEF\xBB\xBF{\"a\": 1}"))
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, string(out))

	plain := []byte(`{"b": 2}`)
	out, err = Decode(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, out)
}

func TestEscapeNonASCII(t *testing.T) {
	plain := []byte(`{"a": "b"}`)
	assert.Equal(t, plain, EscapeNonASCII(plain))

	in := []byte(`{"country": "österreich", "note": "€ 😀 <&>"}`)
	out := EscapeNonASCII(in)
	assert.Equal(t, `{"country": "\u00f6sterreich", "note": "\u20ac \ud83d\ude00 <&>"}`, string(out))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "österreich", decoded["country"])
	assert.Equal(t, "€ 😀 <&>", decoded["note"])
}

func TestBOM(t *testing.T) {
	b := BOM()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, b)
	b[0] = 0
	assert.Equal(t, byte(0xEF), BOM()[0])
}
