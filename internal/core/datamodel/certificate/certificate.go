package certificate

import "time"

type Certificate struct {
	ID           int64     `gorm:"primaryKey"`
	Serial       string    `gorm:"column:serial;uniqueIndex;not null;size:36"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	BadgeID      int64     `gorm:"column:badge_id;not null"`
	TemplateType string    `gorm:"column:template_type;not null;size:32"`
	Meta         string    `gorm:"column:meta"`
	IssuedAt     time.Time `gorm:"column:issued_at;not null"`
}

func (Certificate) TableName() string { return "certificates" }
