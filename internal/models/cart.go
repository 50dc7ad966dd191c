package models

// CartLine is one product's entry in the cart. Title, price and image are
// snapshots captured when the line is created, so totals stay independent
// of later catalog changes. Quantity is always >= 1; a line driven to zero
// is removed, never stored.
type CartLine struct {
	ProductID     string  `json:"id"`
	TitleSnapshot string  `json:"title"`
	PriceSnapshot float64 `json:"price"`
	Quantity      int     `json:"qty"`
	ImageSnapshot string  `json:"image,omitempty"`
}

// CartTotals holds the derived money amounts for the current cart.
// Subtotal is unrounded; tax and grand are rounded half-up to two decimal
// places, each exactly once per computation.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Grand    float64 `json:"grand"`
}

// OrderItem is one line of an order snapshot.
type OrderItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"qty"`
	LineTotal float64 `json:"lineTotal"`
}

// OrderSnapshot is a read-only summary of the cart at checkout time,
// computed on demand and never persisted.
type OrderSnapshot struct {
	Items     []OrderItem `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	Tax       float64     `json:"tax"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"itemCount"`
}

// CustomerInfo carries the checkout form fields. Address2 and Notes are the
// only optional ones.
type CustomerInfo struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Address1 string `json:"address1" binding:"required"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	Zip      string `json:"zip" binding:"required"`
	Notes    string `json:"notes,omitempty"`
}
