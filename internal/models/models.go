package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type Book struct {
	ISBN      string `gorm:"primaryKey"     json:"isbn"`
	Title     string `gorm:"not null"       json:"title"`
	Author    string `gorm:"not null"       json:"author"`
	Year      int    `json:"year"`
	Publisher string `json:"publisher"`
	ImageURL  string `json:"image_url"`
}

type InventoryItem struct {
	ISBN     string  `gorm:"primaryKey"              json:"isbn"`
	Quantity int     `gorm:"not null;check:quantity>=0" json:"quantity"`
	Price    float64 `gorm:"not null"                json:"price"`
}

// CartItem carries no quantity column: one row queues one unit of the book.
type CartItem struct {
	ID     uint   `gorm:"primaryKey"     json:"id"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
	ISBN   string `gorm:"not null"       json:"isbn"`
}

type Order struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Address   string    `gorm:"not null"       json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderItem is append-only: one row per purchased unit, never updated.
type OrderItem struct {
	ID      uint   `gorm:"primaryKey"     json:"id"`
	OrderID uint   `gorm:"index;not null" json:"order_id"`
	ISBN    string `gorm:"not null"       json:"isbn"`
}

type Rating struct {
	ID     uint   `gorm:"primaryKey"     json:"id"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
	ISBN   string `gorm:"not null"       json:"isbn"`
	Rating int    `gorm:"not null"       json:"rating"`
}
