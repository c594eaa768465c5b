package tdsvalue

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

const defaultCodepage = "UTF-8"

var codepages = map[string]encoding.Encoding{
	"CP437":  charmap.CodePage437,
	"CP850":  charmap.CodePage850,
	"CP874":  charmap.Windows874,
	"CP932":  japanese.ShiftJIS,
	"CP936":  simplifiedchinese.GBK,
	"CP949":  korean.EUCKR,
	"CP950":  traditionalchinese.Big5,
	"CP1250": charmap.Windows1250,
	"CP1251": charmap.Windows1251,
	"CP1252": charmap.Windows1252,
	"CP1253": charmap.Windows1253,
	"CP1254": charmap.Windows1254,
	"CP1255": charmap.Windows1255,
	"CP1256": charmap.Windows1256,
	"CP1257": charmap.Windows1257,
	"CP1258": charmap.Windows1258,
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func normalizeCodepage(codepage string) string {
	cp := strings.ToUpper(strings.TrimSpace(codepage))
	switch {
	case cp == "":
		return defaultCodepage
	case strings.HasPrefix(cp, "WINDOWS-"):
		cp = "CP" + cp[len("WINDOWS-"):]
	case cp[0] >= '0' && cp[0] <= '9':
		cp = "CP" + cp
	}
	switch cp {
	case "UTF8", "UTF-8", "CP65001":
		return defaultCodepage
	}
	return cp
}

// supportedCodepage reports whether decodeChars understands codepage.
func supportedCodepage(codepage string) bool {
	cp := normalizeCodepage(codepage)
	if cp == defaultCodepage {
		return true
	}
	_, ok := codepages[cp]
	return ok
}

// decodeChars converts narrow character data in codepage to a Go string.
// An empty codepage means UTF-8.
func decodeChars(b []byte, codepage string) (string, error) {
	cp := normalizeCodepage(codepage)
	if cp == defaultCodepage {
		if utf8.Valid(b) {
			return string(b), nil
		}
		// one replacement character per invalid byte
		s, err := unicode.UTF8.NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(s), nil
	}
	enc, ok := codepages[cp]
	if !ok {
		return "", fmt.Errorf("unsupported codepage %s", codepage)
	}
	s, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// decodeUCS2 converts UTF-16 little-endian data to a Go string. A dangling
// odd byte is dropped.
func decodeUCS2(b []byte) (string, error) {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	s, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(s), nil
}
