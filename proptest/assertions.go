package proptest

import (
	"paperpulse/internal/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func ids(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func assertBooksEqual(t *rapid.T, expected, actual []catalog.Book) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("books mismatch (-want +got):\n%s", diff)
	}
}

func assertSameIDs(t *rapid.T, expected, actual []catalog.Book) {
	t.Helper()
	if diff := cmp.Diff(ids(expected), ids(actual), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("id sequence mismatch (-want +got):\n%s", diff)
	}
}

func assertSameMembers(t *rapid.T, expected, actual []catalog.Book) {
	t.Helper()
	sortIDs := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(ids(expected), ids(actual), sortIDs, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("membership mismatch (-want +got):\n%s", diff)
	}
}

// assertSubsequence checks that sub appears in all, in the same relative
// order.
func assertSubsequence(t *rapid.T, sub, all []catalog.Book) {
	t.Helper()
	j := 0
	for _, b := range sub {
		for j < len(all) && all[j].ID != b.ID {
			j++
		}
		if j == len(all) {
			t.Fatalf("%q is out of order or not in the catalog", b.ID)
		}
		j++
	}
}

func assertNoDuplicates(t *rapid.T, books []catalog.Book) {
	t.Helper()
	seen := make(map[string]bool)
	for _, b := range books {
		if seen[b.ID] {
			t.Fatalf("duplicate book %q in result", b.ID)
		}
		seen[b.ID] = true
	}
}
