package models

import (
	"time"
)

// Contribution is a confirmed chai payment together with the contributor's
// message. Rows are only ever inserted; there is no update or delete path.
type Contribution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Amount    int64     `gorm:"not null" json:"amount"` // as submitted by the client, major units
	PaymentID string    `gorm:"index;not null" json:"payment_id"`
	OrderID   string    `gorm:"index;not null" json:"order_id"`
	CreatedAt time.Time `gorm:"index;not null" json:"created_at"`
}

// TableName keeps the table name used by the message wall
func (Contribution) TableName() string {
	return "chai_messages"
}
