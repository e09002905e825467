package interpret

import "testing"

func TestCityExtractor_Detect(t *testing.T) {
	e := NewCityExtractor(defaultTestIndex(t), 0)

	tests := []struct {
		name         string
		query        string
		wantCity     string
		wantResidual string
	}{
		{
			name:         "city with connective",
			query:        "ayurvedic hospitals in chirala",
			wantCity:     "chirala",
			wantResidual: "ayurvedic hospitals",
		},
		{
			name:         "city first",
			query:        "Chirala pizza",
			wantCity:     "chirala",
			wantResidual: "pizza",
		},
		{
			name:         "multi-word city",
			query:        "schools in new york",
			wantCity:     "new york",
			wantResidual: "schools",
		},
		{
			name:         "city in the middle",
			query:        "pizza in guntur tonight",
			wantCity:     "guntur",
			wantResidual: "pizza tonight",
		},
		{
			name:         "typo in city",
			query:        "ayurvedic hospitals in chiralaa",
			wantCity:     "chirala",
			wantResidual: "ayurvedic hospitals",
		},
		{
			name:         "long query with trailing punctuation",
			query:        "what are the best rated ayurvedic hospitals available near chirala?",
			wantCity:     "chirala",
			wantResidual: "what are the best rated ayurvedic hospitals available near",
		},
		{
			name:         "city glued by comma",
			query:        "pizza,guntur",
			wantCity:     "guntur",
			wantResidual: "pizza",
		},
		{
			name:         "short query with question mark",
			query:        "hospitals in chirala?",
			wantCity:     "chirala",
			wantResidual: "hospitals",
		},
		{
			name:         "extra whitespace",
			query:        "  pizza   in  Guntur ",
			wantCity:     "guntur",
			wantResidual: "pizza",
		},
		{
			name:         "no city",
			query:        "What is Ayurveda",
			wantCity:     "",
			wantResidual: "what is ayurveda",
		},
		{
			name:         "empty query",
			query:        "   ",
			wantCity:     "",
			wantResidual: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, residual := e.Detect(tt.query)
			if city != tt.wantCity {
				t.Errorf("Detect(%q) city = %q, want %q", tt.query, city, tt.wantCity)
			}
			if residual != tt.wantResidual {
				t.Errorf("Detect(%q) residual = %q, want %q", tt.query, residual, tt.wantResidual)
			}
		})
	}
}

func TestCityExtractor_ExactOccurrenceAlwaysWins(t *testing.T) {
	idx := defaultTestIndex(t)
	e := NewCityExtractor(idx, 0)

	for _, city := range idx.Cities() {
		query := "best ayurvedic hospital with many reviews and parking in " + city
		got, residual := e.Detect(query)
		if got != city {
			t.Errorf("Detect(%q) city = %q, want %q", query, got, city)
		}
		if residual != "best ayurvedic hospital with many reviews and parking" {
			t.Errorf("Detect(%q) residual = %q", query, residual)
		}
	}
}

func TestCityExtractor_NoCities(t *testing.T) {
	idx := newTestIndex(t, []string{"school"}, nil, nil)
	city, residual := NewCityExtractor(idx, 0).Detect("schools in chirala")
	if city != "" || residual != "schools in chirala" {
		t.Errorf("Detect() = (%q, %q), want no city", city, residual)
	}
}

func TestIndexWord(t *testing.T) {
	tests := []struct {
		s, word string
		want    int
	}{
		{s: "pizza in guntur", word: "guntur", want: 9},
		{s: "pizza,guntur", word: "guntur", want: 6},
		{s: "chiralaa hospitals", word: "chirala", want: -1},
		{s: "chiralaa near chirala", word: "chirala", want: 14},
		{s: "new york", word: "new york", want: 0},
		{s: "", word: "guntur", want: -1},
		{s: "guntur", word: "", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.s+"/"+tt.word, func(t *testing.T) {
			if got := indexWord(tt.s, tt.word); got != tt.want {
				t.Errorf("indexWord(%q, %q) = %d, want %d", tt.s, tt.word, got, tt.want)
			}
		})
	}
}
