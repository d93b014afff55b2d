package models

// OrderStatusPending is the status every new order starts with.
const OrderStatusPending = "pending"

// Dish is a single line item inside an order or payment.
type Dish struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID     int64  `bson:"_id" json:"id"`
	Name   string `bson:"name" json:"name"` // customer first and last name
	Table  int    `bson:"table" json:"table"`
	Dishes []Dish `bson:"dishes" json:"dishes"`
	Status string `bson:"status" json:"status"`

	// Total is derived from the dishes when listing orders to pay. Never persisted.
	Total float64 `bson:"-" json:"total,omitempty"`
}

func (o *Order) SetID(id int64) { o.ID = id }

// ComputeTotal sums price*quantity over the order's dishes.
func (o *Order) ComputeTotal() float64 {
	var total float64
	for _, d := range o.Dishes {
		total += d.Price * float64(d.Quantity)
	}
	return total
}
