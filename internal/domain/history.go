package domain

import "time"

// HistoryEntry Model
// Append-only trade record: positive Stocks for a buy, negative for a
// sell; Price is the total transaction amount, not the unit price.
type HistoryEntry struct {
	ID        uint      `gorm:"primaryKey"`     // Primary key
	UserID    uint      `gorm:"index"`          // Owning user
	Symbol    string    `gorm:"not null"`       // Stock symbol
	Stocks    int       `gorm:"not null"`       // Signed share count
	Price     float64   `gorm:"not null"`       // Total transaction amount
	CreatedAt time.Time `gorm:"autoCreateTime"` // Timestamp of the trade
}

// TableName keeps the table name aligned with the schema ("history", not
// gorm's pluralized default)
func (HistoryEntry) TableName() string {
	return "history"
}
