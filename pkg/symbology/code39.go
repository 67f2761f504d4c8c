package symbology

import (
	"strings"

	"github.com/boombuler/barcode/code39"

	"github.com/valorem-chem/milabel/pkg/errors"
)

// code39Alphabet is the full character set of the standard (non-extended)
// Code 39 symbology: digits, uppercase letters and a small symbol set. Each
// character encodes as nine elements, five bars and four spaces, three of
// them wide.
const code39Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

// code39MinQuietZone is the minimum quiet zone for Code 39 in narrow-element
// multiples. Discrete symbologies need a wider margin than Code 128.
const code39MinQuietZone = 10

// Code39 encodes a payload as a standard Code 39 symbol. The payload is
// restricted to digits, uppercase letters and the symbols "-. $/+%";
// lowercase letters are rejected rather than silently upcased.
//
// No checksum character is appended unless [WithChecksum] is given: the
// secondary-identifier payload is fixed-length numeric and the verification
// equipment reads it without a check digit.
func Code39(payload string, opts ...Option) (*Bitmap, error) {
	if payload == "" {
		return nil, errors.New(errors.ErrCodeEncodeFailed, "code 39 payload is empty")
	}
	for _, r := range payload {
		if !strings.ContainsRune(code39Alphabet, r) {
			return nil, errors.New(errors.ErrCodeEncodeFailed,
				"code 39 payload %q contains unsupported character %q", payload, r)
		}
	}

	o := buildOptions(opts)
	if o.quietZone < code39MinQuietZone {
		o.quietZone = code39MinQuietZone
	}

	bc, err := code39.Encode(payload, o.checksum, false)
	if err != nil {
		return nil, encodeErr(err, "code 39", payload)
	}
	return frame(bc, o.quietZone, false), nil
}
