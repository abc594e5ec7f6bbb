package determinism

import (
	"testing"
)

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]int{"FL": 1, "CA": 2, "default": 3})
	want := []string{"CA", "FL", "default"}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// TestComputeHashIsStable proves identical content hashes identically
func TestComputeHashIsStable(t *testing.T) {
	a := ComputeHash([]byte("rates"))
	b := ComputeHash([]byte("rates"))
	c := ComputeHash([]byte("rates2"))

	if a != b {
		t.Error("same content produced different hashes")
	}
	if a == c {
		t.Error("different content produced the same hash")
	}
	if len(a.Short()) != 12 {
		t.Errorf("expected 12 char short hash, got %q", a.Short())
	}
	if a.IsZero() {
		t.Error("computed hash reported as zero")
	}
}
