package enrollment

import "time"

type Enrollment struct {
	ID         int64     `gorm:"primaryKey"`
	TrainingID int64     `gorm:"column:training_id;not null;uniqueIndex:uq_enrollment_user_training"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex:uq_enrollment_user_training;index"`
	Status     string    `gorm:"column:status;not null;size:16;default:ENROLLED"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Enrollment) TableName() string { return "enrollments" }

type AttendanceRecord struct {
	ID           int64     `gorm:"primaryKey"`
	EnrollmentID int64     `gorm:"column:enrollment_id;not null;index"`
	SessionDate  time.Time `gorm:"column:session_date;type:date;not null"`
	Attended     bool      `gorm:"column:attended;not null"`
	RecordedByID int64     `gorm:"column:recorded_by_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AttendanceRecord) TableName() string { return "attendance_records" }
