// Package label defines the record model for a single label render: the
// fixed attributes supplied by the product catalog, the variable per-job
// inputs, and the derived fields computed from both.
//
// Optional fields are normalized to an explicit placeholder once, at record
// build time. Rendering code compares against [Placeholder] and never
// re-implements empty/null checks of its own.
package label

import (
	"strings"
	"time"
	"unicode"

	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/field"
)

// Placeholder is the value an empty optional field resolves to. Fields
// classed "always visible" render their caption and this dash; decorative
// framing is skipped for it.
const Placeholder = "-"

// MaxLotLength bounds the lot identifier. The bound is shared between the
// Code 128 payload and the matrix batch group: a longer lot would force the
// linear symbol below its quiet-zone/height tradeoff at the smallest sizes.
const MaxLotLength = 10

// defaultShelfLifeMonths applies when the catalog entry carries no shelf
// life.
const defaultShelfLifeMonths = 24

// sentinels are legacy spreadsheet values that mean "no value". They were
// historically typed into the fixed-attribute columns by hand and still
// appear in imported catalogs.
var sentinels = map[string]struct{}{
	"":                        {},
	"-":                       {},
	"n/a":                     {},
	"na":                      {},
	"none":                    {},
	"nan":                     {},
	"blank":                   {},
	"-/blank":                 {},
	"not applicable or blank": {},
}

// Normalize trims a raw field value and resolves sentinel spellings of
// "empty" to [Placeholder].
func Normalize(v string) string {
	trimmed := strings.TrimSpace(v)
	if _, ok := sentinels[strings.ToLower(trimmed)]; ok {
		return Placeholder
	}
	return trimmed
}

// CatalogEntry is the fixed attribute set of one product, supplied by the
// external catalog store and never edited per label.
type CatalogEntry struct {
	ID                string `json:"id"`
	ProductName       string `json:"product_name"`
	NSN               string `json:"nsn"`
	NATOCode          string `json:"nato_code,omitempty"`
	JSDReference      string `json:"jsd_reference,omitempty"`
	Specification     string `json:"specification,omitempty"`
	ContractorDetails string `json:"contractor_details,omitempty"`
	UnitOfIssue       string `json:"unit_of_issue,omitempty"`
	ShelfLifeMonths   int    `json:"shelf_life_months,omitempty"`
	SafetyMarkings    string `json:"safety_markings,omitempty"`
	HazardCode        string `json:"hazardous_material_code,omitempty"`
	CapacityWeight    string `json:"capacity_weight,omitempty"`
	BatchLotManaged   bool   `json:"batch_lot_managed,omitempty"`
}

// JobInput is the variable per-print-job part of a label.
type JobInput struct {
	LotID           string
	ManufactureDate time.Time
	TestReport      string
	RequalOverride  *time.Time
	Serial          string
}

// Record is a fully validated, immutable label record: fixed fields
// normalized, variable fields checked, derived fields computed. A Record is
// built immediately before a render call and discarded afterwards; nothing
// mutates it in place.
type Record struct {
	// Fixed (normalized).
	ProductName       string
	NSN               string
	NSNDigits         string // 13 digits, separators stripped
	NATOCode          string
	JSDReference      string
	Specification     string
	ContractorDetails string
	UnitOfIssue       string
	SafetyMarkings    string
	HazardCode        string
	CapacityWeight    string
	BatchLotManaged   bool
	ShelfLifeMonths   int

	// Variable.
	LotID           string
	ManufactureDate time.Time
	TestReport      string
	Serial          string

	// Derived.
	NIIN            string // trailing 9 characters of the NSN
	Expiry          time.Time
	Requalification time.Time

	// Warnings are non-fatal compliance findings collected during build.
	Warnings []errors.Warning
}

// Build assembles and validates a Record from a catalog entry and a job
// input. All validation happens here, before any rendering begins; a
// returned error means no partial output exists anywhere.
func Build(e CatalogEntry, in JobInput) (*Record, error) {
	niin, err := field.ExtractSecondaryID(e.NSN)
	if err != nil {
		return nil, err
	}

	if err := validateLot(in.LotID); err != nil {
		return nil, err
	}
	if in.ManufactureDate.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidDate, "manufacture date is not set")
	}

	shelfLife := e.ShelfLifeMonths
	if shelfLife < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"shelf life of %d months is negative", shelfLife)
	}
	if shelfLife == 0 {
		shelfLife = defaultShelfLifeMonths
	}

	expiry := field.ComputeExpiry(in.ManufactureDate, shelfLife)
	requal := field.ResolveRequalification(expiry, in.RequalOverride)

	testReport := Normalize(in.TestReport)

	rec := &Record{
		ProductName:       Normalize(e.ProductName),
		NSN:               Normalize(e.NSN),
		NSNDigits:         field.StripSeparators(e.NSN),
		NATOCode:          Normalize(e.NATOCode),
		JSDReference:      Normalize(e.JSDReference),
		Specification:     Normalize(e.Specification),
		ContractorDetails: Normalize(e.ContractorDetails),
		UnitOfIssue:       Normalize(e.UnitOfIssue),
		SafetyMarkings:    Normalize(e.SafetyMarkings),
		HazardCode:        Normalize(e.HazardCode),
		CapacityWeight:    Normalize(e.CapacityWeight),
		BatchLotManaged:   e.BatchLotManaged,
		ShelfLifeMonths:   shelfLife,

		LotID:           in.LotID,
		ManufactureDate: in.ManufactureDate,
		TestReport:      testReport,
		Serial:          Normalize(in.Serial),

		NIIN:            niin,
		Expiry:          expiry,
		Requalification: requal,
	}

	if in.RequalOverride != nil && !in.RequalOverride.IsZero() && testReport == Placeholder {
		rec.Warnings = append(rec.Warnings, errors.NewWarning(errors.WarnOverrideWithoutReport,
			"re-qualification override for lot %s has no test report reference", in.LotID))
	}

	return rec, nil
}

// validateLot checks the lot identifier against the shared length bound and
// the alphanumeric alphabet.
func validateLot(lot string) error {
	if lot == "" {
		return errors.New(errors.ErrCodeInvalidLot, "lot identifier is empty")
	}
	if len(lot) > MaxLotLength {
		return errors.New(errors.ErrCodeInvalidLot,
			"lot identifier %q has %d characters, max %d", lot, len(lot), MaxLotLength)
	}
	for _, r := range lot {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return errors.New(errors.ErrCodeInvalidLot,
				"lot identifier %q contains non-alphanumeric character %q", lot, r)
		}
	}
	return nil
}
