package training

import "time"

type Training struct {
	ID            int64     `gorm:"primaryKey"`
	Title         string    `gorm:"column:title;not null;size:200"`
	Description   *string   `gorm:"column:description"`
	DepartmentID  *int64    `gorm:"column:department_id;index"`
	DurationHours int       `gorm:"column:duration_hours;not null;default:1"`
	Mode          string    `gorm:"column:mode;not null;size:16;default:ONLINE"`
	IsMandatory   bool      `gorm:"column:is_mandatory;not null;default:false"`
	CreatedByID   int64     `gorm:"column:created_by_id;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Training) TableName() string { return "trainings" }

type TrainingAssignment struct {
	ID                 int64     `gorm:"primaryKey"`
	TrainingID         int64     `gorm:"column:training_id;not null;index"`
	TargetType         string    `gorm:"column:target_type;not null;size:16"`
	TargetDepartmentID *int64    `gorm:"column:target_department_id"`
	TargetUserID       *int64    `gorm:"column:target_user_id"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TrainingAssignment) TableName() string { return "training_assignments" }

type TrainingApproval struct {
	ID            int64      `gorm:"primaryKey"`
	TrainingID    int64      `gorm:"column:training_id;not null;uniqueIndex"`
	RequestedByID int64      `gorm:"column:requested_by_id;not null"`
	ApprovedByID  *int64     `gorm:"column:approved_by_id"`
	Status        string     `gorm:"column:status;not null;size:16;default:PENDING"`
	Comments      *string    `gorm:"column:comments"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	DecidedAt     *time.Time `gorm:"column:decided_at"`
}

func (TrainingApproval) TableName() string { return "training_approvals" }
