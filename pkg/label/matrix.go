package label

import (
	"github.com/valorem-chem/milabel/pkg/field"
	"github.com/valorem-chem/milabel/pkg/symbology"
)

// GS1 application identifiers carried in the shipment Data Matrix.
const (
	aiNSN    = "7001" // NATO stock number, 13 digits
	aiBatch  = "10"   // batch or lot number
	aiExpiry = "17"   // expiration date, YYMMDD
	aiSerial = "21"   // serial number
)

// MatrixGroups assembles the identifier groups encoded into the label's
// Data Matrix, in their mandated order. The serial group is present only
// when the record carries a serial number.
func (r *Record) MatrixGroups() []symbology.Group {
	groups := []symbology.Group{
		{ID: aiNSN, Value: r.NSNDigits},
		{ID: aiBatch, Value: r.LotID},
		{ID: aiExpiry, Value: field.FormatYYMMDD(r.Expiry)},
	}
	if r.Serial != Placeholder {
		groups = append(groups, symbology.Group{ID: aiSerial, Value: r.Serial})
	}
	return groups
}
