package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"not null" json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// Title is the organization name on business accounts. Unique when set;
	// a NULL title never collides with another NULL.
	Title        *string   `gorm:"uniqueIndex" json:"title,omitempty"`
	Address      string    `json:"address"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders       []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
