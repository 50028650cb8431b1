package models

import "time"

type SentEmail struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	MessageID *string `gorm:"type:varchar(255)"`
	Sender    string  `gorm:"type:varchar(255);not null"`
	Recipient string  `gorm:"type:varchar(255);not null"`
	Subject   string  `gorm:"type:text;not null"`
	HTML      *string `gorm:"column:html;type:text"`
	Text      *string `gorm:"column:text;type:text"`
	Status    string  `gorm:"type:varchar(10);not null"`
	Error     *string `gorm:"type:text"`
	SentAt    time.Time
}
