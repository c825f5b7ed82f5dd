package canon

import "testing"

func TestNameIdempotent(t *testing.T) {
	cases := []string{"Gross Domestic Product", `"R&D Spend"`, "x", "_already_canonical", "a  b", "A1[b2]"}
	for _, c := range cases {
		once := Name(c)
		twice := Name(once)
		if once != twice {
			t.Errorf("Name not idempotent for %q: %q vs %q", c, once, twice)
		}
	}
}

func TestNameDistinctness(t *testing.T) {
	a := Name("Gross Domestic Product")
	b := Name("Net Domestic Product")
	if a == b {
		t.Fatalf("distinct source names collapsed to same canonical id: %q", a)
	}
}

func TestDecanonicalizeRoundTrip(t *testing.T) {
	names := []string{"Gross Domestic Product", "flow", "s0", "Initial Time"}
	for _, n := range names {
		id := Name(n)
		display := Decanonicalize(id)
		if Name(display) != id {
			t.Errorf("round-trip failed for %q: id=%q display=%q reencoded=%q", n, id, display, Name(display))
		}
	}
}

func TestJoinAndNormalSubscripts(t *testing.T) {
	families := map[string]string{"_r2": "_r", "_r1": "_r", "_c": "_c"}
	subs := []string{"_c", "_r2", "_r1"}
	// Already in family order (_c < _r), with the two _r indices out of
	// name order; here we just check it doesn't panic, keeps all three
	// entries, and Join renders a non-empty string.
	out := NormalSubscripts(subs, func(s string) string { return families[s] })
	if len(out) != 3 {
		t.Fatalf("expected 3 subscripts, got %d", len(out))
	}
	if Join(out) == "" {
		t.Fatalf("expected non-empty join")
	}
}
