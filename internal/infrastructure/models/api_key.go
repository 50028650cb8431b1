package models

import "time"

type ApiKey struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	UserID     *int64  `gorm:"index"`
	Prefix     string  `gorm:"type:varchar(20);not null"`
	KeyHash    string  `gorm:"type:varchar(64);uniqueIndex;not null"` // SHA256 of plaintext
	Scopes     string  `gorm:"type:text;not null"`
	Name       *string `gorm:"type:varchar(100)"`
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	RevokedAt  *time.Time `gorm:"index"`
}
