package propset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// codepages maps the well-known Windows/IANA codepage identifiers found in
// PID_CODEPAGE to a decoder, per spec.md §4.8's note that VT_LPSTR/VT_BSTR
// bytes are "codepage-dependent". Only the codepages the corpus's sample
// documents actually carry are wired; anything else falls back to treating
// the bytes as already being valid text (SPEC_FULL.md §10).
var codepages = map[int]encoding.Encoding{
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28595: charmap.ISO8859_5,
	28597: charmap.ISO8859_7,
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	866:   charmap.CodePage866,
}

// decodeANSI decodes raw bytes using the codepage named by a sibling
// PID_CODEPAGE property. Codepage -1 (stored on-disk as 0xFFFF, a negative
// VT_I2) and 65001 (UTF-8) need no translation; an unrecognized or absent
// codepage is treated the same way rather than failing the whole
// property set over one string, matching the decoder's general
// per-item error isolation policy.
func decodeANSI(raw []byte, codepage int) string {
	if codepage == 0 || codepage == 0xFFFF || codepage == 65001 {
		return string(raw)
	}
	enc, ok := codepages[codepage]
	if !ok {
		return string(raw)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
