package domain

import "fmt"

// CartProduct is the catalog data copied into a cart line when it is added.
type CartProduct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Variant selects a product option. The zero value means no variant.
type Variant struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

// LineKey identifies a cart line: the same product in two variants is two lines.
type LineKey struct {
	ProductID string
	Color     string
	Size      string
}

func (k LineKey) String() string {
	return fmt.Sprintf("%s-%s-%s", k.ProductID, k.Color, k.Size)
}

type CartLine struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Key derives the composite identity of the line.
func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Color: l.Color, Size: l.Size}
}

// Subtotal is price * quantity for this line.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}
