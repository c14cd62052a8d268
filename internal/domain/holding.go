package domain

// Holding Model
// At most one row exists per (user_id, symbol); the row is removed when
// the share count reaches zero.
type Holding struct {
	ID     uint   `gorm:"primaryKey"`                        // Primary key
	UserID uint   `gorm:"uniqueIndex:idx_user_symbol"`       // Owning user
	Symbol string `gorm:"uniqueIndex:idx_user_symbol;index"` // Stock symbol, stored upper-case
	Stocks int    `gorm:"not null"`                          // Current share count
}
