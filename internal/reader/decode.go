package reader

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode turns file bytes into NFC-normalized UTF-8 text. A leading BOM is
// dropped. Bytes that are not valid UTF-8 are read as Windows-1252, the
// encoding of most legacy Gutenberg plain-text files.
func Decode(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		if out, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
			data = out
		} else {
			data = bytes.ToValidUTF8(data, []byte("\uFFFD"))
		}
	}
	return norm.NFC.String(string(data))
}
