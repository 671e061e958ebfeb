package models

import "time"

// UserToken is one opaque bearer token issued to a user. Tokens are only ever added.
type UserToken struct {
	ID        uint64    `gorm:"primarykey" json:"-"`
	UserID    uint64    `gorm:"not null;index" json:"-"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
