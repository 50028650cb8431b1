package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Email     string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      *string `gorm:"type:varchar(100)"`
	Role      string  `gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
