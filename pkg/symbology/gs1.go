package symbology

import (
	"bytes"

	"github.com/boombuler/barcode/datamatrix"

	"github.com/valorem-chem/milabel/pkg/errors"
)

// GroupSeparator is the control byte delimiting variable-length fields
// inside the 2D matrix payload.
const GroupSeparator byte = 0x1d

// Group is one (application identifier, value) pair of a grouped-identifier
// payload.
type Group struct {
	ID    string
	Value string
}

// BuildGS1Payload serializes an ordered list of identifier groups into the
// matrix payload: one separator byte before the whole payload, then each
// group as id++value with a separator byte between consecutive groups. No
// separator follows the last group.
func BuildGS1Payload(groups []Group) ([]byte, error) {
	if len(groups) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyPayloadGroups, "matrix payload has no identifier groups")
	}

	var buf bytes.Buffer
	buf.WriteByte(GroupSeparator)
	for i, g := range groups {
		if g.ID == "" {
			return nil, errors.New(errors.ErrCodeEncodeFailed, "identifier group %d has an empty group id", i)
		}
		if i > 0 {
			buf.WriteByte(GroupSeparator)
		}
		buf.WriteString(g.ID)
		buf.WriteString(g.Value)
	}
	return buf.Bytes(), nil
}

// DataMatrix encodes a grouped-identifier payload as a square ECC 200 Data
// Matrix symbol. The payload is built with [BuildGS1Payload] and encoded at
// the byte level; no text codepage is involved.
func DataMatrix(groups []Group) (*Bitmap, error) {
	payload, err := BuildGS1Payload(groups)
	if err != nil {
		return nil, err
	}

	bc, err := datamatrix.Encode(string(payload))
	if err != nil {
		return nil, encodeErr(err, "data matrix", string(payload))
	}
	return frame(bc, matrixQuietZone, true), nil
}
