package models

// Income is money received from a source on a given day.
type Income struct {
	Base         `bson:",inline"`
	UserID       string         `gorm:"type:varchar(64);not null;index" bson:"user_id" json:"userId"`
	Amount       int64          `gorm:"not null" bson:"amount" json:"amount"`
	Source       string         `gorm:"not null" bson:"source" json:"source"`
	Category     IncomeCategory `gorm:"type:varchar(32);not null" bson:"category" json:"category"`
	DateReceived string         `gorm:"type:varchar(10);not null" bson:"date_received" json:"dateReceived"`
	Notes        string         `bson:"notes" json:"notes"`
}

// Owner returns the id of the user the income belongs to.
func (i *Income) Owner() string { return i.UserID }
