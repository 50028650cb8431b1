package models

import "time"

type UserAlias struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;index"`
	Address   string `gorm:"type:varchar(255);uniqueIndex;not null"`
	IsPrimary bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	User      User `gorm:"foreignKey:UserID"`
}
