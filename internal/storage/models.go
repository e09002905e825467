package storage

import "time"

// Listing is one business row. Listings are identified by (Name, Address).
type Listing struct {
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone_number"`
	Website        string    `json:"website"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Area           string    `json:"area"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory"`
	ReviewsAverage float64   `json:"reviews_average"`
	ReviewsCount   int       `json:"reviews_count"`
	CreatedAt      time.Time `json:"created_at"`
	// Score is the computed relevance, set by ranked queries only.
	Score float64 `json:"score"`
}

// RankedQuery selects listings whose Column equals Value (case-insensitive),
// optionally restricted to City, ranked by relevance.
type RankedQuery struct {
	Column string
	Value  string
	City   string
	Limit  int
}
