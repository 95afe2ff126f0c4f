package domain

// WishlistEntry is a saved product. Entries are unique by ID.
type WishlistEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}
