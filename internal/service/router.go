package service

// Action is the terminal decision of the intent router.
type Action int

const (
	// Explain answers with generated text.
	Explain Action = iota
	// Lookup answers with ranked listings.
	Lookup
)

func (a Action) String() string {
	if a == Lookup {
		return "lookup"
	}
	return "explain"
}

// Route picks Lookup only when the query has business intent and names a city.
func Route(businessIntent bool, city string) Action {
	if businessIntent && city != "" {
		return Lookup
	}
	return Explain
}
