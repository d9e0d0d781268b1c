package entity

import "time"

type Post struct {
	ID      uint    `gorm:"primaryKey"`
	Title   string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Content string  `gorm:"type:text;not null"`
	Image   *string `gorm:"type:varchar(1024)"`
	UserID  uint    `gorm:"not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
