package analyzer

import "testing"

func TestTally_SortedKeepsFirstSeenOnTies(t *testing.T) {
	tl := NewTally()
	tl.Add("b", 10)
	tl.Add("a", 10)
	tl.Add("c", 30)
	tl.Add("b", 0)

	got := tl.Sorted()
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, k := range want {
		if got[i].Key != k {
			t.Errorf("Sorted()[%d] = %q, want %q", i, got[i].Key, k)
		}
	}
	if tl.Total() != 50 {
		t.Errorf("Total() = %v, want 50", tl.Total())
	}
}

func TestTally_Top(t *testing.T) {
	tl := NewTally()
	for i, k := range []string{"a", "b", "c"} {
		tl.Add(k, float64(i))
	}
	if got := tl.Top(2); len(got) != 2 || got[0].Key != "c" {
		t.Errorf("Top(2) = %+v", got)
	}
	if got := tl.Top(10); len(got) != 3 {
		t.Errorf("Top(10) len = %d, want 3", len(got))
	}
	if tl.Get("missing") != 0 {
		t.Error("Get on missing key should be 0")
	}
}
