package fleet

import "testing"

func testDoc() Document {
	return Document{Items: []Entry{
		{Name: "Reliat", Series: "reliat", Category: Frigate},
		{Name: "reliat anti-aircraft type", Series: "reliat", Category: Frigate},
		{Name: "reliat", Series: "reliat", Category: Frigate}, // dup collapses
		{Name: "kirov", Series: "kirov", Category: Cruiser},
		{Name: "mist hunter", Series: "mist hunter", Category: Corvette},
	}}
}

func TestNewIndexMasterOrder(t *testing.T) {
	ix, err := NewIndex(testDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order := ix.MasterOrder()
	want := []string{"reliat", "reliat anti-aircraft type", "kirov", "mist hunter"}
	if len(order) != len(want) {
		t.Fatalf("expected %d items, got %d: %v", len(want), len(order), order)
	}
	for i, n := range want {
		if order[i] != n {
			t.Fatalf("order[%d] = %q, want %q", i, order[i], n)
		}
	}
}

func TestLookupNormalizesNames(t *testing.T) {
	ix, err := NewIndex(testDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, ok := ix.Lookup("  RELIAT Anti-Aircraft   Type ")
	if !ok {
		t.Fatalf("expected lookup to hit under normalization")
	}
	if e.Series != "reliat" || e.Category != Frigate {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if ix.SeriesFor("unknown ship") != "" {
		t.Fatalf("unknown items have no series")
	}
	if ix.CategoryFor("kirov") != Cruiser {
		t.Fatalf("expected kirov to be a cruiser")
	}
}

func TestNewIndexRejectsConflictingSeries(t *testing.T) {
	_, err := NewIndex(Document{Items: []Entry{
		{Name: "a", Series: "s", Category: Frigate},
		{Name: "b", Series: "s", Category: Cruiser},
	}})
	if err == nil {
		t.Fatalf("expected error for series mapped to two categories")
	}
}

func TestNewIndexRejectsUnknownCategory(t *testing.T) {
	_, err := NewIndex(Document{Items: []Entry{
		{Name: "a", Series: "s", Category: "gunboat"},
	}})
	if err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestCategoryOfSeries(t *testing.T) {
	ix, err := NewIndex(testDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := ix.CategoryOfSeries("reliat")
	if !ok || c != Frigate {
		t.Fatalf("expected reliat series to resolve to frigate, got %q %v", c, ok)
	}
	if _, ok := ix.CategoryOfSeries("ghost"); ok {
		t.Fatalf("unknown series should not resolve")
	}
}

func TestDefaultIndex(t *testing.T) {
	ix := DefaultIndex()
	if len(ix.MasterOrder()) == 0 {
		t.Fatalf("embedded catalog should not be empty")
	}
	if ix.CategoryFor("spear of uranus") != Battlecruiser {
		t.Fatalf("expected spear of uranus to be a battlecruiser")
	}
	if !ix.CategoryFor("spear of uranus bow railgun array").IsModule() {
		t.Fatalf("expected railgun array to be a module")
	}
	// Variants share their series so totals can count them once.
	if ix.SeriesFor("vitas a021") != ix.SeriesFor("vitas b010") {
		t.Fatalf("vitas variants should share a series")
	}
}
