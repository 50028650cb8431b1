package models

import (
	"time"

	"gorm.io/gorm"
)

type Email struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	MessageID   string `gorm:"type:varchar(255);not null;index"`
	Sender      string `gorm:"type:varchar(255);not null"`
	Recipient   string `gorm:"type:varchar(255);not null;index"`
	Subject     string `gorm:"type:text;not null"`
	RawEmail    string `gorm:"type:text"`
	HeadersJSON string `gorm:"column:headers_json;type:text"`
	Folder      string `gorm:"type:varchar(20);not null;default:'inbox';index"`
	IsRead      bool   `gorm:"not null;default:false"`
	IsStarred   bool   `gorm:"not null;default:false"`
	UserID      *int64 `gorm:"index"`
	ReceivedAt  time.Time
	SyncedAt    *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
