package models

import "time"

// User types accepted at registration.
const (
	UserTypeAdmin   = "admin"
	UserTypeService = "service"
	UserTypeKitchen = "kitchen"
)

type User struct {
	ID        int64     `bson:"_id" json:"id"`
	Username  string    `bson:"username" json:"username"` // stored lowercase
	Password  string    `bson:"password" json:"-"`        // bcrypt hash, hidden from JSON responses
	Name      string    `bson:"name" json:"name"`
	UserType  string    `bson:"userType" json:"userType"` // "admin", "service", "kitchen"
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (u *User) SetID(id int64) { u.ID = id }

// Sanitize clears the password hash before the user leaves the service layer.
func (u *User) Sanitize() *User {
	u.Password = ""
	return u
}
