package models

// Budget is a spending limit for one category over a date range.
type Budget struct {
	Base      `bson:",inline"`
	UserID    string         `gorm:"type:varchar(64);not null;index" bson:"user_id" json:"userId"`
	Amount    int64          `gorm:"not null" bson:"amount" json:"amount"`
	Category  BudgetCategory `gorm:"type:varchar(32);not null" bson:"category" json:"category"`
	StartDate string         `gorm:"type:varchar(10);not null" bson:"start_date" json:"startDate"`
	EndDate   string         `gorm:"type:varchar(10);not null" bson:"end_date" json:"endDate"`
	Notes     string         `bson:"notes" json:"notes"`
}

// Owner returns the id of the user the budget belongs to.
func (b *Budget) Owner() string { return b.UserID }
