package label

import (
	"testing"
	"time"

	"github.com/valorem-chem/milabel/pkg/errors"
)

func testEntry() CatalogEntry {
	return CatalogEntry{
		ID:              "OX-24",
		ProductName:     "OX-24 Preservative Oil",
		NSN:             "9150-66-035-7879",
		NATOCode:        "O-190",
		JSDReference:    "JSD-ARMY-2021",
		ShelfLifeMonths: 24,
		BatchLotManaged: true,
	}
}

func testInput() JobInput {
	return JobInput{
		LotID:           "FM251115A",
		ManufactureDate: time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC),
		TestReport:      "TR-4417",
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: Placeholder},
		{name: "whitespace only", in: "   ", want: Placeholder},
		{name: "dash", in: "-", want: Placeholder},
		{name: "n/a lowercase", in: "n/a", want: Placeholder},
		{name: "N/A uppercase", in: "N/A", want: Placeholder},
		{name: "none", in: "None", want: Placeholder},
		{name: "spreadsheet nan", in: "NaN", want: Placeholder},
		{name: "legacy long form", in: "Not applicable or blank", want: Placeholder},
		{name: "real value kept", in: "O-190", want: "O-190"},
		{name: "real value trimmed", in: "  O-190 ", want: "O-190"},
		{name: "value containing na substring", in: "NATO", want: "NATO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildDerivedFields(t *testing.T) {
	rec, err := Build(testEntry(), testInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if rec.NSNDigits != "9150660357879" {
		t.Errorf("NSNDigits = %q, want 9150660357879", rec.NSNDigits)
	}
	if rec.NIIN != "660357879" {
		t.Errorf("NIIN = %q, want 660357879", rec.NIIN)
	}

	wantExpiry := time.Date(2027, time.November, 12, 0, 0, 0, 0, time.UTC)
	if !rec.Expiry.Equal(wantExpiry) {
		t.Errorf("Expiry = %v, want %v", rec.Expiry, wantExpiry)
	}
	if !rec.Requalification.Equal(wantExpiry) {
		t.Errorf("Requalification = %v, want expiry %v", rec.Requalification, wantExpiry)
	}
	if len(rec.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", rec.Warnings)
	}
}

func TestBuildNormalizesOptionalFields(t *testing.T) {
	e := testEntry()
	e.Specification = "n/a"
	e.UnitOfIssue = ""
	e.SafetyMarkings = "  "

	rec, err := Build(e, testInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rec.Specification != Placeholder {
		t.Errorf("Specification = %q, want placeholder", rec.Specification)
	}
	if rec.UnitOfIssue != Placeholder {
		t.Errorf("UnitOfIssue = %q, want placeholder", rec.UnitOfIssue)
	}
	if rec.SafetyMarkings != Placeholder {
		t.Errorf("SafetyMarkings = %q, want placeholder", rec.SafetyMarkings)
	}
}

func TestBuildShelfLifeDefault(t *testing.T) {
	e := testEntry()
	e.ShelfLifeMonths = 0

	rec, err := Build(e, testInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rec.ShelfLifeMonths != 24 {
		t.Errorf("ShelfLifeMonths = %d, want default 24", rec.ShelfLifeMonths)
	}

	wantExpiry := time.Date(2027, time.November, 12, 0, 0, 0, 0, time.UTC)
	if !rec.Expiry.Equal(wantExpiry) {
		t.Errorf("Expiry = %v, want %v", rec.Expiry, wantExpiry)
	}
}

func TestBuildRequalOverride(t *testing.T) {
	override := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	in := testInput()
	in.RequalOverride = &override

	rec, err := Build(testEntry(), in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !rec.Requalification.Equal(override) {
		t.Errorf("Requalification = %v, want override %v", rec.Requalification, override)
	}
	if len(rec.Warnings) != 0 {
		t.Errorf("override with a test report must not warn, got %v", rec.Warnings)
	}
}

func TestBuildOverrideWithoutReportWarns(t *testing.T) {
	override := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	in := testInput()
	in.RequalOverride = &override
	in.TestReport = ""

	rec, err := Build(testEntry(), in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rec.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", rec.Warnings)
	}
	if rec.Warnings[0].Code != errors.WarnOverrideWithoutReport {
		t.Errorf("warning code = %v, want OVERRIDE_WITHOUT_TEST_REPORT", rec.Warnings[0].Code)
	}
	// The override still applies; the finding is advisory.
	if !rec.Requalification.Equal(override) {
		t.Errorf("Requalification = %v, want override %v", rec.Requalification, override)
	}
}

func TestBuildRejectsBadLots(t *testing.T) {
	tests := []struct {
		name string
		lot  string
	}{
		{name: "empty", lot: ""},
		{name: "too long", lot: "FM251115ABC"},
		{name: "embedded space", lot: "FM 25111"},
		{name: "punctuation", lot: "FM-251115"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testInput()
			in.LotID = tt.lot
			_, err := Build(testEntry(), in)
			if err == nil {
				t.Fatalf("Build with lot %q succeeded, want error", tt.lot)
			}
			if !errors.Is(err, errors.ErrCodeInvalidLot) {
				t.Errorf("error code = %v, want INVALID_LOT", errors.GetCode(err))
			}
		})
	}
}

func TestBuildRejectsBadNSN(t *testing.T) {
	e := testEntry()
	e.NSN = "9150-66-035"

	if _, err := Build(e, testInput()); !errors.Is(err, errors.ErrCodeInvalidIdentifier) {
		t.Errorf("error = %v, want INVALID_IDENTIFIER", err)
	}
}

func TestBuildRejectsZeroDate(t *testing.T) {
	in := testInput()
	in.ManufactureDate = time.Time{}

	if _, err := Build(testEntry(), in); !errors.Is(err, errors.ErrCodeInvalidDate) {
		t.Errorf("error = %v, want INVALID_DATE", err)
	}
}

func TestBuildRejectsNegativeShelfLife(t *testing.T) {
	e := testEntry()
	e.ShelfLifeMonths = -6

	if _, err := Build(e, testInput()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
