package models

type MenuItem struct {
	ID          int64  `bson:"_id" json:"id"`
	Meal        string `bson:"meal" json:"meal"`
	Description string `bson:"description" json:"description"`
	Price       int64  `bson:"price" json:"price"`
	Image       string `bson:"image" json:"image"` // base64 image string
}

func (m *MenuItem) SetID(id int64) { m.ID = id }
