package models

type InventoryItem struct {
	ID        int64  `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Unit      string `bson:"unit" json:"unit"`
	Existence int64  `bson:"existence" json:"existence"` // units in stock
	Image     string `bson:"image" json:"image"`
}

func (i *InventoryItem) SetID(id int64) { i.ID = id }
