package label

import (
	"testing"
)

func TestMatrixGroups(t *testing.T) {
	rec, err := Build(testEntry(), testInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	groups := rec.MatrixGroups()
	if len(groups) != 3 {
		t.Fatalf("groups = %v, want 3 without a serial", groups)
	}
	if groups[0].ID != "7001" || groups[0].Value != "9150660357879" {
		t.Errorf("group 0 = %+v, want 7001/9150660357879", groups[0])
	}
	if groups[1].ID != "10" || groups[1].Value != "FM251115A" {
		t.Errorf("group 1 = %+v, want 10/FM251115A", groups[1])
	}
	if groups[2].ID != "17" || groups[2].Value != "271112" {
		t.Errorf("group 2 = %+v, want 17/271112", groups[2])
	}
}

func TestMatrixGroupsWithSerial(t *testing.T) {
	in := testInput()
	in.Serial = "SN0042"

	rec, err := Build(testEntry(), in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	groups := rec.MatrixGroups()
	if len(groups) != 4 {
		t.Fatalf("groups = %v, want 4 with a serial", groups)
	}
	if groups[3].ID != "21" || groups[3].Value != "SN0042" {
		t.Errorf("serial group = %+v, want 21/SN0042", groups[3])
	}
}
