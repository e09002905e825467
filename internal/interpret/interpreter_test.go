package interpret

import (
	"context"
	"strings"
	"testing"
)

func TestInterpreter_Interpret(t *testing.T) {
	idx := defaultTestIndex(t)
	in := newTestInterpreter(t, idx, &keywordEmbedder{})

	tests := []struct {
		name         string
		query        string
		wantCity     string
		wantCategory string
		wantQuery    string
	}{
		{
			name:         "business query with city",
			query:        "ayurvedic hospitals in chirala",
			wantCity:     "chirala",
			wantCategory: "ayurvedic hospital",
			wantQuery:    "ayurvedic hospital",
		},
		{
			name:         "definition query",
			query:        "what is ayurveda",
			wantCity:     "",
			wantCategory: "ayurvedic hospital",
			wantQuery:    "what is ayurveda",
		},
		{
			name:         "typo in category and city",
			query:        "piza restaurnt near Guntur",
			wantCity:     "guntur",
			wantCategory: "pizza restaurant",
			wantQuery:    "pizza restaurant near",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := in.Interpret(context.Background(), tt.query)
			if got.City != tt.wantCity {
				t.Errorf("City = %q, want %q", got.City, tt.wantCity)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.CorrectedQuery != tt.wantQuery {
				t.Errorf("CorrectedQuery = %q, want %q", got.CorrectedQuery, tt.wantQuery)
			}
			if got.City != "" && strings.Contains(got.CorrectedQuery, got.City) {
				t.Errorf("CorrectedQuery %q still contains city %q", got.CorrectedQuery, got.City)
			}
		})
	}
}

func TestInterpreter_AyurvedicExampleScores(t *testing.T) {
	in := newTestInterpreter(t, defaultTestIndex(t), &keywordEmbedder{})

	got := in.Interpret(context.Background(), "ayurvedic hospitals in chirala")
	if got.CategoryScore <= got.SubcategoryScore {
		t.Errorf("category score %v should exceed subcategory score %v", got.CategoryScore, got.SubcategoryScore)
	}
	for _, s := range []float64{got.CategoryScore, got.SubcategoryScore, got.CombinedScore} {
		if s < 0 || s > 1 {
			t.Errorf("score %v out of [0,1]", s)
		}
	}
}

func TestInterpreter_EmbedderDown(t *testing.T) {
	in := newTestInterpreter(t, defaultTestIndex(t), &keywordEmbedder{err: errUnavailable})

	got := in.Interpret(context.Background(), "pizza in guntur")
	if got.City != "guntur" {
		t.Errorf("City = %q, want guntur", got.City)
	}
	if got.Category != "" || got.CombinedScore != 0 {
		t.Errorf("Interpret() = %+v, want no category", got)
	}
}
