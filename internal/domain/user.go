package domain

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey"`      // Primary key
	Username string  `gorm:"unique;not null"` // Unique username
	Hash     string  `gorm:"not null"`        // Hashed password, never the plaintext
	Cash     float64 `gorm:"not null"`        // Cash balance, set to the starting balance at registration
}
