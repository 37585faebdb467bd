package training

import "github.com/frahmantamala/ld-portal/internal"

type CreateTrainingDTO struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Description   *string `json:"description" validate:"omitempty,max=5000"`
	DepartmentID  *int64  `json:"department_id" validate:"omitempty,gt=0"`
	DurationHours int     `json:"duration_hours" validate:"omitempty,min=1,max=1000"`
	Mode          string  `json:"mode" validate:"omitempty,oneof=ONLINE OFFLINE HYBRID"`
	IsMandatory   bool    `json:"is_mandatory"`
}

type CreateAssignmentDTO struct {
	TrainingID         int64  `json:"training_id" validate:"required,gt=0"`
	TargetType         string `json:"target_type" validate:"required,oneof=ALL DEPARTMENT USER"`
	TargetDepartmentID *int64 `json:"target_department_id" validate:"omitempty,gt=0"`
	TargetUserID       *int64 `json:"target_user_id" validate:"omitempty,gt=0"`
}

// ValidateTarget enforces that exactly the field named by target_type is set.
func (d CreateAssignmentDTO) ValidateTarget() *internal.AppError {
	switch TargetType(d.TargetType) {
	case TargetAll:
		if d.TargetDepartmentID != nil || d.TargetUserID != nil {
			return internal.NewValidationError("ALL assignments must not specify department or user", internal.ErrCodeInvalidTarget)
		}
	case TargetDepartment:
		if d.TargetDepartmentID == nil {
			return internal.NewValidationError("DEPARTMENT assignments require target_department_id", internal.ErrCodeInvalidTarget)
		}
		if d.TargetUserID != nil {
			return internal.NewValidationError("DEPARTMENT assignments must not specify target_user_id", internal.ErrCodeInvalidTarget)
		}
	case TargetUser:
		if d.TargetUserID == nil {
			return internal.NewValidationError("USER assignments require target_user_id", internal.ErrCodeInvalidTarget)
		}
		if d.TargetDepartmentID != nil {
			return internal.NewValidationError("USER assignments must not specify target_department_id", internal.ErrCodeInvalidTarget)
		}
	default:
		return internal.NewValidationError("unknown target_type", internal.ErrCodeInvalidTarget)
	}
	return nil
}

type ApprovalDecisionDTO struct {
	Status   string  `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Comments *string `json:"comments" validate:"omitempty,max=2000"`
}
