package types

import "testing"

func TestContactCopyIsDeep(t *testing.T) {
	orig := Contact{
		VID:                1,
		EmailAddress:       "contact1@example.com",
		Properties:         map[string]any{"firstname": "Ada"},
		RelatedContactVIDs: []int64{2, 3},
	}
	cp := orig.Copy()
	cp.Properties["firstname"] = "Grace"
	cp.RelatedContactVIDs[0] = 9

	if orig.Properties["firstname"] != "Ada" {
		t.Errorf("Copy shares Properties with the original")
	}
	if orig.RelatedContactVIDs[0] != 2 {
		t.Errorf("Copy shares RelatedContactVIDs with the original")
	}
}

func TestContactVIDs(t *testing.T) {
	got := ContactVIDs([]Contact{{VID: 3}, {VID: 1}, {VID: 2}})
	want := []int64{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("ContactVIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ContactVIDs()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
