package models

import "time"

// Token is an API key issued to a user for "Authorization: Token <key>" requests.
type Token struct {
	Key       string    `gorm:"primarykey;type:varchar(40)" json:"token"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
