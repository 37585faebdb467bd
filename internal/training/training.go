package training

import (
	"time"

	trainingDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/training"
)

type Mode string

const (
	ModeOnline  Mode = "ONLINE"
	ModeOffline Mode = "OFFLINE"
	ModeHybrid  Mode = "HYBRID"
)

type TargetType string

const (
	TargetAll        TargetType = "ALL"
	TargetDepartment TargetType = "DEPARTMENT"
	TargetUser       TargetType = "USER"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// MandatoryStatus is a user's progress on one mandatory training.
type MandatoryStatus string

const (
	MandatoryNotEnrolled MandatoryStatus = "NOT_ENROLLED"
	MandatoryInProgress  MandatoryStatus = "IN_PROGRESS"
	MandatoryCompleted   MandatoryStatus = "COMPLETED"
)

type Training struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	DepartmentID  *int64    `json:"department_id"`
	DurationHours int       `json:"duration_hours"`
	Mode          Mode      `json:"mode"`
	IsMandatory   bool      `json:"is_mandatory"`
	CreatedByID   int64     `json:"created_by_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type Assignment struct {
	ID                 int64      `json:"id"`
	TrainingID         int64      `json:"training_id"`
	TargetType         TargetType `json:"target_type"`
	TargetDepartmentID *int64     `json:"target_department_id"`
	TargetUserID       *int64     `json:"target_user_id"`
	CreatedAt          time.Time  `json:"created_at"`
}

type Approval struct {
	ID            int64          `json:"id"`
	TrainingID    int64          `json:"training_id"`
	RequestedByID int64          `json:"requested_by_id"`
	ApprovedByID  *int64         `json:"approved_by_id"`
	Status        ApprovalStatus `json:"status"`
	Comments      *string        `json:"comments"`
	CreatedAt     time.Time      `json:"created_at"`
	DecidedAt     *time.Time     `json:"decided_at"`
}

func (a *Approval) IsPending() bool {
	return a.Status == ApprovalPending
}

type MandatoryTrainingStatus struct {
	TrainingID int64           `json:"training_id"`
	Title      string          `json:"title"`
	Status     MandatoryStatus `json:"status"`
}

func ToDataModel(t *Training) *trainingDatamodel.Training {
	return &trainingDatamodel.Training{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		DepartmentID:  t.DepartmentID,
		DurationHours: t.DurationHours,
		Mode:          string(t.Mode),
		IsMandatory:   t.IsMandatory,
		CreatedByID:   t.CreatedByID,
		CreatedAt:     t.CreatedAt,
	}
}

func FromDataModel(t *trainingDatamodel.Training) *Training {
	return &Training{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		DepartmentID:  t.DepartmentID,
		DurationHours: t.DurationHours,
		Mode:          Mode(t.Mode),
		IsMandatory:   t.IsMandatory,
		CreatedByID:   t.CreatedByID,
		CreatedAt:     t.CreatedAt,
	}
}

func AssignmentFromDataModel(a *trainingDatamodel.TrainingAssignment) *Assignment {
	return &Assignment{
		ID:                 a.ID,
		TrainingID:         a.TrainingID,
		TargetType:         TargetType(a.TargetType),
		TargetDepartmentID: a.TargetDepartmentID,
		TargetUserID:       a.TargetUserID,
		CreatedAt:          a.CreatedAt,
	}
}

func ApprovalFromDataModel(a *trainingDatamodel.TrainingApproval) *Approval {
	return &Approval{
		ID:            a.ID,
		TrainingID:    a.TrainingID,
		RequestedByID: a.RequestedByID,
		ApprovedByID:  a.ApprovedByID,
		Status:        ApprovalStatus(a.Status),
		Comments:      a.Comments,
		CreatedAt:     a.CreatedAt,
		DecidedAt:     a.DecidedAt,
	}
}
