package models

// User represents an account holder. Records reference it by id only.
type User struct {
	Base     `bson:",inline"`
	Email    string `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	Username string `gorm:"not null" bson:"username" json:"username"`
	Password string `gorm:"not null" bson:"password" json:"-"`
}
