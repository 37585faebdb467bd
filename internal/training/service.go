package training

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/core/common/validation"
	trainingDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/training"
)

// RepositoryAPI getters return nil, nil when the row does not exist.
type RepositoryAPI interface {
	// Create stores the training and, when approval is non-nil, its approval
	// request in the same transaction.
	Create(ctx context.Context, t *trainingDatamodel.Training, approval *trainingDatamodel.TrainingApproval) error
	GetByID(ctx context.Context, id int64) (*trainingDatamodel.Training, error)
	List(ctx context.Context) ([]*trainingDatamodel.Training, error)
	ListMandatory(ctx context.Context) ([]*trainingDatamodel.Training, error)

	CreateAssignment(ctx context.Context, a *trainingDatamodel.TrainingAssignment) error
	ListAssignments(ctx context.Context) ([]*trainingDatamodel.TrainingAssignment, error)

	ListApprovals(ctx context.Context, status string) ([]*trainingDatamodel.TrainingApproval, error)
	GetApprovalByID(ctx context.Context, id int64) (*trainingDatamodel.TrainingApproval, error)
	UpdateApproval(ctx context.Context, a *trainingDatamodel.TrainingApproval) error
}

// EnrollmentStatusReader reports the caller's enrollment status per training id.
type EnrollmentStatusReader interface {
	StatusesByUser(ctx context.Context, userID int64) (map[int64]string, error)
}

type Service struct {
	repo        RepositoryAPI
	enrollments EnrollmentStatusReader
	logger      *slog.Logger
	now         func() time.Time
}

func NewService(repo RepositoryAPI, enrollments EnrollmentStatusReader, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		enrollments: enrollments,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateTraining stores a catalog entry. Mandatory trainings get a PENDING
// approval requested by the creator.
func (s *Service) CreateTraining(ctx context.Context, dto CreateTrainingDTO, createdBy int64) (*Training, error) {
	dto.Title = strings.TrimSpace(dto.Title)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	if dto.DurationHours == 0 {
		dto.DurationHours = 1
	}
	mode := ModeOnline
	if dto.Mode != "" {
		mode = Mode(dto.Mode)
	}

	row := ToDataModel(&Training{
		Title:         dto.Title,
		Description:   dto.Description,
		DepartmentID:  dto.DepartmentID,
		DurationHours: dto.DurationHours,
		Mode:          mode,
		IsMandatory:   dto.IsMandatory,
		CreatedByID:   createdBy,
	})

	var approval *trainingDatamodel.TrainingApproval
	if dto.IsMandatory {
		approval = &trainingDatamodel.TrainingApproval{
			RequestedByID: createdBy,
			Status:        string(ApprovalPending),
		}
	}

	if err := s.repo.Create(ctx, row, approval); err != nil {
		return nil, fmt.Errorf("create training: %w", err)
	}

	s.logger.InfoContext(ctx, "training created",
		"training_id", row.ID,
		"mandatory", row.IsMandatory,
		"created_by", createdBy)
	return FromDataModel(row), nil
}

func (s *Service) GetTraining(ctx context.Context, id int64) (*Training, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get training: %w", err)
	}
	if row == nil {
		return nil, internal.ErrTrainingNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) ListTrainings(ctx context.Context) ([]*Training, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	trainings := make([]*Training, 0, len(rows))
	for _, row := range rows {
		trainings = append(trainings, FromDataModel(row))
	}
	return trainings, nil
}

func (s *Service) CreateAssignment(ctx context.Context, dto CreateAssignmentDTO) (*Assignment, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if err := dto.ValidateTarget(); err != nil {
		return nil, err
	}

	if _, err := s.GetTraining(ctx, dto.TrainingID); err != nil {
		return nil, err
	}

	row := &trainingDatamodel.TrainingAssignment{
		TrainingID:         dto.TrainingID,
		TargetType:         dto.TargetType,
		TargetDepartmentID: dto.TargetDepartmentID,
		TargetUserID:       dto.TargetUserID,
	}
	if err := s.repo.CreateAssignment(ctx, row); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return AssignmentFromDataModel(row), nil
}

func (s *Service) ListAssignments(ctx context.Context) ([]*Assignment, error) {
	rows, err := s.repo.ListAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	assignments := make([]*Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, AssignmentFromDataModel(row))
	}
	return assignments, nil
}

// MandatoryStatusFor lists every mandatory training with the user's progress on it.
func (s *Service) MandatoryStatusFor(ctx context.Context, userID int64) ([]MandatoryTrainingStatus, error) {
	mandatory, err := s.repo.ListMandatory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mandatory trainings: %w", err)
	}

	statuses, err := s.enrollments.StatusesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load enrollment statuses: %w", err)
	}

	result := make([]MandatoryTrainingStatus, 0, len(mandatory))
	for _, t := range mandatory {
		status := MandatoryNotEnrolled
		switch statuses[t.ID] {
		case "":
		case "COMPLETED":
			status = MandatoryCompleted
		default:
			status = MandatoryInProgress
		}
		result = append(result, MandatoryTrainingStatus{TrainingID: t.ID, Title: t.Title, Status: status})
	}
	return result, nil
}

func (s *Service) ListApprovals(ctx context.Context, status string) ([]*Approval, error) {
	if status != "" {
		switch ApprovalStatus(status) {
		case ApprovalPending, ApprovalApproved, ApprovalRejected:
		default:
			return nil, internal.NewValidationFieldError("status", "status must be one of [PENDING APPROVED REJECTED]", internal.ErrCodeValidationFailed)
		}
	}

	rows, err := s.repo.ListApprovals(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	approvals := make([]*Approval, 0, len(rows))
	for _, row := range rows {
		approvals = append(approvals, ApprovalFromDataModel(row))
	}
	return approvals, nil
}

// DecideApproval moves a PENDING approval to APPROVED or REJECTED.
func (s *Service) DecideApproval(ctx context.Context, approvalID, decidedBy int64, dto ApprovalDecisionDTO) (*Approval, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	row, err := s.repo.GetApprovalByID(ctx, approvalID)
	if err != nil {
		return nil, fmt.Errorf("get approval: %w", err)
	}
	if row == nil {
		return nil, internal.ErrApprovalNotFound
	}
	if !ApprovalFromDataModel(row).IsPending() {
		return nil, internal.ErrApprovalAlreadyDecided
	}

	now := s.now()
	row.Status = dto.Status
	row.Comments = dto.Comments
	row.ApprovedByID = &decidedBy
	row.DecidedAt = &now

	if err := s.repo.UpdateApproval(ctx, row); err != nil {
		return nil, fmt.Errorf("update approval: %w", err)
	}

	s.logger.InfoContext(ctx, "training approval decided",
		"approval_id", row.ID,
		"training_id", row.TrainingID,
		"status", row.Status,
		"decided_by", decidedBy)
	return ApprovalFromDataModel(row), nil
}
