package profile

import "time"

type LearningProfile struct {
	ID                            int64     `gorm:"primaryKey"`
	UserID                        int64     `gorm:"column:user_id;not null;uniqueIndex"`
	TechStack                     *string   `gorm:"column:tech_stack"`
	TotalLearningHoursCurrentYear int       `gorm:"column:total_learning_hours_current_year;not null;default:0"`
	UpdatedAt                     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LearningProfile) TableName() string { return "learning_profiles" }

type TrainingHistoryEntry struct {
	ID             int64     `gorm:"primaryKey"`
	UserID         int64     `gorm:"column:user_id;not null;index"`
	TrainingID     int64     `gorm:"column:training_id;not null"`
	Status         string    `gorm:"column:status;not null;size:16"`
	CompletionDate time.Time `gorm:"column:completion_date;type:date"`
	HoursCredited  int       `gorm:"column:hours_credited;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TrainingHistoryEntry) TableName() string { return "training_history" }

type Certification struct {
	ID               int64      `gorm:"primaryKey"`
	UserID           int64      `gorm:"column:user_id;not null;index"`
	Name             string     `gorm:"column:name;not null;size:200"`
	Issuer           *string    `gorm:"column:issuer;size:200"`
	IssueDate        *time.Time `gorm:"column:issue_date;type:date"`
	ExpiryDate       *time.Time `gorm:"column:expiry_date;type:date"`
	LinkedTrainingID *int64     `gorm:"column:linked_training_id"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Certification) TableName() string { return "certifications" }
