// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is the character set name a statement file is decoded with.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingUTF8BOM     Encoding = "utf-8-sig"
	EncodingUTF16       Encoding = "utf-16"
	EncodingUTF16BOM    Encoding = "utf-16-sig"
	EncodingWindows1252 Encoding = "windows-1252"
	EncodingLatin1      Encoding = "iso-8859-1"
	EncodingLatin2      Encoding = "iso-8859-2"
	EncodingLatin4      Encoding = "iso-8859-4"
	EncodingBig5        Encoding = "big5"
	EncodingGB18030     Encoding = "gb18030"
	EncodingShiftJIS    Encoding = "shift_jis"
	EncodingWindows1251 Encoding = "windows-1251"
	EncodingKOI8R       Encoding = "koi8_r"
	EncodingKOI8U       Encoding = "koi8_u"
)

type charset struct {
	label string
	enc   encoding.Encoding
}

var charsets = map[Encoding]charset{
	EncodingUTF8:        {"UTF-8", unicode.UTF8},
	EncodingUTF8BOM:     {"UTF-8 (with BOM)", unicode.UTF8BOM},
	EncodingUTF16:       {"UTF-16", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	EncodingUTF16BOM:    {"UTF-16 (with BOM)", unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)},
	EncodingWindows1252: {"Western (Windows-1252)", charmap.Windows1252},
	EncodingLatin1:      {"Western (Latin-1 / ISO 8859-1)", charmap.ISO8859_1},
	EncodingLatin2:      {"Central European (Latin-2 / ISO 8859-2)", charmap.ISO8859_2},
	EncodingLatin4:      {"Baltic (Latin-4 / ISO 8859-4)", charmap.ISO8859_4},
	EncodingBig5:        {"Traditional Chinese (big5)", traditionalchinese.Big5},
	EncodingGB18030:     {"Unified Chinese (gb18030)", simplifiedchinese.GB18030},
	EncodingShiftJIS:    {"Japanese (Shift JIS)", japanese.ShiftJIS},
	EncodingWindows1251: {"Cyrillic (Windows-1251)", charmap.Windows1251},
	EncodingKOI8R:       {"Cyrillic (KOI8-R)", charmap.KOI8R},
	EncodingKOI8U:       {"Cyrillic (KOI8-U)", charmap.KOI8U},
}

// Encodings lists the supported encodings in display order.
func Encodings() []Encoding {
	return []Encoding{
		EncodingUTF8, EncodingUTF8BOM, EncodingUTF16, EncodingUTF16BOM,
		EncodingWindows1252, EncodingLatin1, EncodingLatin2, EncodingLatin4,
		EncodingBig5, EncodingGB18030, EncodingShiftJIS,
		EncodingWindows1251, EncodingKOI8R, EncodingKOI8U,
	}
}

// IsValid reports whether e is a supported encoding name.
func (e Encoding) IsValid() bool {
	_, ok := charsets[e]
	return ok
}

// Label is the human readable name shown in the settings form.
func (e Encoding) Label() string {
	if cs, ok := charsets[e]; ok {
		return cs.label
	}
	return string(e)
}

// Charset returns the x/text encoding implementing e.
func (e Encoding) Charset() (encoding.Encoding, error) {
	cs, ok := charsets[e]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, string(e))
	}
	return cs.enc, nil
}

// NewReader wraps r so that reads yield UTF-8 text decoded from e.
func (e Encoding) NewReader(r io.Reader) (io.Reader, error) {
	enc, err := e.Charset()
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
