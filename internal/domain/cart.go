package domain

// LineItem is one priced row of a cart snapshot. UnitPrice already
// reflects the quantity tier, so LineTotal == Quantity * UnitPrice.
type LineItem struct {
	Title     string  `bson:"title" json:"title"`
	Slug      string  `bson:"slug" json:"slug"`
	UnitPrice float64 `bson:"price" json:"price"`
	Quantity  int64   `bson:"qty" json:"qty"`
	LineTotal float64 `bson:"total" json:"total"`
}

// CartSnapshot is a derived, never-persisted view of a session's cart.
// A nil *CartSnapshot is the "cart is empty" marker and is distinct from
// a snapshot whose GrandTotal happens to be zero.
type CartSnapshot struct {
	Items      []LineItem `json:"products"`
	GrandTotal float64    `json:"total_price"`
}
