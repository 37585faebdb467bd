package enrollment

import (
	"time"

	"github.com/frahmantamala/ld-portal/internal/core/common/validation"
	enrollmentDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/enrollment"
)

type Status string

const (
	StatusEnrolled  Status = "ENROLLED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

type Enrollment struct {
	ID         int64     `json:"id"`
	TrainingID int64     `json:"training_id"`
	UserID     int64     `json:"user_id"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AttendanceRecord struct {
	ID           int64     `json:"id"`
	EnrollmentID int64     `json:"enrollment_id"`
	SessionDate  string    `json:"session_date"`
	Attended     bool      `json:"attended"`
	RecordedByID int64     `json:"recorded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromDataModel(e *enrollmentDatamodel.Enrollment) *Enrollment {
	return &Enrollment{
		ID:         e.ID,
		TrainingID: e.TrainingID,
		UserID:     e.UserID,
		Status:     Status(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func AttendanceFromDataModel(a *enrollmentDatamodel.AttendanceRecord) *AttendanceRecord {
	return &AttendanceRecord{
		ID:           a.ID,
		EnrollmentID: a.EnrollmentID,
		SessionDate:  a.SessionDate.Format(validation.DateLayout),
		Attended:     a.Attended,
		RecordedByID: a.RecordedByID,
		CreatedAt:    a.CreatedAt,
	}
}
