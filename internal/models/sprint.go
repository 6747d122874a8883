package models

import "time"

type Sprint struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	End         Date      `gorm:"column:end_date;not null;index" json:"end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:SprintID;constraint:OnDelete:CASCADE" json:"-"`
}
