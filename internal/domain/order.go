package domain

import "time"

const (
	OrderStatusUnpaid = "unpaid"
	OrderStatusPaid   = "paid"
)

// Order is immutable once created; it owns a copy of the snapshot lines,
// not a reference back to the session's cart.
type Order struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	Items      []LineItem `bson:"items_line" json:"items_line"`
	Status     string     `bson:"status" json:"status"`
	CreatedAt  time.Time  `bson:"created_date" json:"created_date"`
	Recipient  Recipient  `bson:"recipient_data" json:"recipient_data"`
	TotalPrice float64    `bson:"total_price" json:"total_price"`
}

type Recipient struct {
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	City      string `bson:"city" json:"city"`
	ZipCode   string `bson:"zip_code" json:"zip_code"`
}
