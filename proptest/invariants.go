package proptest

import (
	"paperpulse/internal/catalog"

	"pgregory.net/rapid"
)

const (
	InvIDsUnique             = "INV-1"
	InvBooksValid            = "INV-2"
	InvCountEqualsBooksLen   = "INV-3"
	InvGenresSortedDistinct  = "INV-4"
	InvBoundsCoverPrices     = "INV-5"
	InvResultMatchesModel    = "INV-10"
	InvResultIsSubset        = "INV-11"
	InvResultSorted          = "INV-12"
	InvTiesKeepCatalogOrder  = "INV-13"
	InvRelevanceKeepsOrder   = "INV-14"
	InvRunIdempotent         = "INV-15"
	InvRunPure               = "INV-16"
	InvToggleInvolution      = "INV-20"
	InvResetFacetsKeepsText  = "INV-21"
	InvResetAllIsDefault     = "INV-22"
	InvIsFilteredConsistent  = "INV-23"
	InvStateModelConsistent  = "INV-24"
	InvTransitionsImmutable  = "INV-25"
	InvLinkRoundTrip         = "INV-26"
	InvFacetsAndAcross       = "INV-30"
	InvFacetsOrWithin        = "INV-31"
	InvWriteLoadRoundTrip    = "INV-50"
	InvInvalidRecordRejected = "INV-51"
)

func verifyCatalogInvariants(t *rapid.T, cat *catalog.Catalog) {
	books := cat.Books()
	if cat.Count() != len(books) {
		t.Fatalf("[%s] violated: Count()=%d but len(Books())=%d", InvCountEqualsBooksLen, cat.Count(), len(books))
	}

	seen := make(map[string]bool)
	for _, b := range books {
		if seen[b.ID] {
			t.Fatalf("[%s] violated: duplicate id %q", InvIDsUnique, b.ID)
		}
		seen[b.ID] = true

		if err := b.Validate(); err != nil {
			t.Fatalf("[%s] violated: book %q: %v", InvBooksValid, b.ID, err)
		}
	}

	genres := cat.Genres()
	for i := 1; i < len(genres); i++ {
		if genres[i-1] >= genres[i] {
			t.Fatalf("[%s] violated: %q before %q", InvGenresSortedDistinct, genres[i-1], genres[i])
		}
	}

	if len(books) == 0 {
		return
	}
	bounds, err := cat.PriceBounds()
	if err != nil {
		t.Fatalf("[%s] violated: PriceBounds on %d books: %v", InvBoundsCoverPrices, len(books), err)
	}
	var minHit, maxHit bool
	for _, b := range books {
		if !bounds.Contains(b.Price) {
			t.Fatalf("[%s] violated: price %s outside %s", InvBoundsCoverPrices, b.Price, bounds)
		}
		minHit = minHit || b.Price.Equal(bounds.Min)
		maxHit = maxHit || b.Price.Equal(bounds.Max)
	}
	if !minHit || !maxHit {
		t.Fatalf("[%s] violated: bounds %s not attained", InvBoundsCoverPrices, bounds)
	}
}
