package models

type Reservation struct {
	ID           int64  `bson:"_id" json:"id"`
	Date         string `bson:"date" json:"date"` // "02 Jan 2006 15:04"
	People       int    `bson:"people" json:"people"`
	TReservation string `bson:"t_reservation" json:"t_reservation"`
	Name         string `bson:"name" json:"name"`
	LastName     string `bson:"last_name" json:"last_name"`
	Phone        string `bson:"phone" json:"phone"` // 10 digits
	Email        string `bson:"email" json:"email"`
	Special      string `bson:"special,omitempty" json:"special,omitempty"` // optional, max 255 chars
}

func (r *Reservation) SetID(id int64) { r.ID = id }
