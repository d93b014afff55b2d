package models

type Payment struct {
	ID          int64   `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Table       int     `bson:"table" json:"table"`
	OrderID     int64   `bson:"order_id" json:"order_id"`
	Total       float64 `bson:"total" json:"total"`
	RFC         string  `bson:"rfc" json:"rfc"` // 13 alphanumeric characters
	PaymentType string  `bson:"payment_type" json:"payment_type"`
	Dishes      []Dish  `bson:"dishes" json:"dishes"`
	Active      bool    `bson:"active" json:"active"` // false once soft-deleted
}

func (p *Payment) SetID(id int64) { p.ID = id }
