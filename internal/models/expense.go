package models

// Expense is money spent on a given day.
type Expense struct {
	Base          `bson:",inline"`
	UserID        string          `gorm:"type:varchar(64);not null;index" bson:"user_id" json:"userId"`
	Amount        int64           `gorm:"not null" bson:"amount" json:"amount"`
	Category      ExpenseCategory `gorm:"type:varchar(32);not null" bson:"category" json:"category"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(32);not null" bson:"payment_method" json:"paymentMethod"`
	DateSpent     string          `gorm:"type:varchar(10);not null" bson:"date_spent" json:"dateSpent"`
	Notes         string          `bson:"notes" json:"notes"`
}

// Owner returns the id of the user the expense belongs to.
func (e *Expense) Owner() string { return e.UserID }
