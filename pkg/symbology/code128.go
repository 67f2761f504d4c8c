package symbology

import (
	"github.com/boombuler/barcode/code128"

	"github.com/valorem-chem/milabel/pkg/errors"
)

// Code128 encodes a payload as a Code 128 symbol. The payload may be any
// printable ASCII string of any length; the symbology is variable-length
// and self-checking, so no length cap or extra check character applies.
//
// The bitmap never contains a human-readable echo of the payload. Callers
// that want one render it as a separate text element, which keeps the
// symbol deterministic regardless of font availability.
func Code128(payload string, opts ...Option) (*Bitmap, error) {
	if payload == "" {
		return nil, errors.New(errors.ErrCodeEncodeFailed, "code 128 payload is empty")
	}
	for _, r := range payload {
		if r < 0x20 || r > 0x7e {
			return nil, errors.New(errors.ErrCodeEncodeFailed,
				"code 128 payload %q contains non-printable character %q", payload, r)
		}
	}

	o := buildOptions(opts)
	bc, err := code128.Encode(payload)
	if err != nil {
		return nil, encodeErr(err, "code 128", payload)
	}
	return frame(bc, o.quietZone, false), nil
}
