package models

type StaffMember struct {
	ID       int64   `bson:"_id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Title    string  `bson:"title" json:"title"`
	Email    string  `bson:"email" json:"email"`
	Salary   float64 `bson:"salary" json:"salary"`
	Birthday string  `bson:"birthday" json:"birthday"`
	Status   bool    `bson:"status" json:"status"`
	Avatar   string  `bson:"avatar" json:"avatar"` // "data:image/..." base64 string
}

func (s *StaffMember) SetID(id int64) { s.ID = id }
