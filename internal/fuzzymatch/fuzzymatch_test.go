package fuzzymatch

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "hospital", b: "hospital", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "one empty", a: "hospital", b: "", want: 0},
		{name: "single deletion", a: "hospitl", b: "hospital", want: 93.33},
		{name: "no overlap", a: "abc", b: "xyz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("Ratio(%q, %q) = %.2f, want %.2f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPartialRatio(t *testing.T) {
	if got := PartialRatio("chirala", "hospitals in chirala"); got != 100 {
		t.Errorf("PartialRatio() substring = %.2f, want 100", got)
	}
	if got := PartialRatio("hospitals in chirala", "chirala"); got != 100 {
		t.Errorf("PartialRatio() should not depend on argument order, got %.2f", got)
	}
	if got := PartialRatio("", "abc"); got != 0 {
		t.Errorf("PartialRatio() empty = %.2f, want 0", got)
	}
}

func TestTokenRatios(t *testing.T) {
	if got := TokenSortRatio("hospital ayurvedic", "ayurvedic hospital"); got != 100 {
		t.Errorf("TokenSortRatio() reordered = %.2f, want 100", got)
	}
	if got := TokenSetRatio("ayurvedic hospital", "ayurvedic hospital chirala"); got != 100 {
		t.Errorf("TokenSetRatio() subset = %.2f, want 100", got)
	}
	if got := TokenSetRatio("", "anything"); got != 0 {
		t.Errorf("TokenSetRatio() empty = %.2f, want 0", got)
	}
	if got := PartialTokenRatio("dental clinic", "clinic ongole"); got != 100 {
		t.Errorf("PartialTokenRatio() shared token = %.2f, want 100", got)
	}
}

func TestWRatio(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		atLeast float64
		below   float64
	}{
		{name: "identical", a: "chirala", b: "chirala", atLeast: 100, below: 100.01},
		{name: "typo", a: "chirla", b: "chirala", atLeast: 90, below: 100},
		{name: "city inside query", a: "chirala", b: "ayurvedic hospitals in chirala", atLeast: 85, below: 100.01},
		{name: "unrelated", a: "ongole", b: "bakery", atLeast: 0, below: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WRatio(tt.a, tt.b)
			if got < tt.atLeast || got >= tt.below {
				t.Errorf("WRatio(%q, %q) = %.2f, want in [%.2f, %.2f)", tt.a, tt.b, got, tt.atLeast, tt.below)
			}
		})
	}
}

func TestWRatio_EmptyAndSymmetric(t *testing.T) {
	if got := WRatio("", "chirala"); got != 0 {
		t.Errorf("WRatio() empty = %.2f, want 0", got)
	}
	if got := WRatio("chirala", ""); got != 0 {
		t.Errorf("WRatio() empty = %.2f, want 0", got)
	}

	pairs := [][2]string{
		{"dental clinic", "clinic dental"},
		{"chirala", "hospitals in chirala"},
		{"ayurvedik", "ayurvedic"},
	}
	for _, p := range pairs {
		if a, b := WRatio(p[0], p[1]), WRatio(p[1], p[0]); !almostEqual(a, b) {
			t.Errorf("WRatio not symmetric for %q/%q: %.2f vs %.2f", p[0], p[1], a, b)
		}
	}
}

func TestExtractOne(t *testing.T) {
	vocab := []string{"ayurvedic", "clinic", "dental", "hospital"}

	tests := []struct {
		name      string
		query     string
		cutoff    float64
		wantValue string
		wantOK    bool
	}{
		{name: "exact", query: "dental", cutoff: 85, wantValue: "dental", wantOK: true},
		{name: "typo", query: "hospitl", cutoff: 85, wantValue: "hospital", wantOK: true},
		{name: "below cutoff", query: "bakery", cutoff: 85, wantOK: false},
		{name: "empty choices", query: "dental", cutoff: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			choices := vocab
			if tt.name == "empty choices" {
				choices = nil
			}
			m, ok := ExtractOne(tt.query, choices, tt.cutoff)
			if ok != tt.wantOK {
				t.Fatalf("ExtractOne(%q) ok = %v, want %v (match %+v)", tt.query, ok, tt.wantOK, m)
			}
			if ok && m.Value != tt.wantValue {
				t.Errorf("ExtractOne(%q) = %q, want %q", tt.query, m.Value, tt.wantValue)
			}
		})
	}
}

func TestExtractOne_FirstWinsTies(t *testing.T) {
	m, ok := ExtractOne("clinic", []string{"clinics", "clinico"}, 0)
	if !ok {
		t.Fatal("ExtractOne() returned no match")
	}
	if m.Index != 0 {
		t.Errorf("ExtractOne() tie picked index %d, want 0", m.Index)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance("kitten", "sitting"); got != 3 {
		t.Errorf("Distance() = %d, want 3", got)
	}
	if got := Distance("chirala", "chirala"); got != 0 {
		t.Errorf("Distance() identical = %d, want 0", got)
	}
}
