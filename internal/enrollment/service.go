package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/core/common/validation"
	enrollmentDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/enrollment"
	trainingDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/training"
	"github.com/frahmantamala/ld-portal/internal/core/events"
	"github.com/frahmantamala/ld-portal/internal/gamification"
	"gorm.io/gorm"
)

// Repository getters return nil, nil when the row does not exist.
type Repository interface {
	Create(ctx context.Context, e *enrollmentDatamodel.Enrollment) error
	GetByID(ctx context.Context, id int64) (*enrollmentDatamodel.Enrollment, error)
	GetForUser(ctx context.Context, id, userID int64) (*enrollmentDatamodel.Enrollment, error)
	ExistsForUser(ctx context.Context, trainingID, userID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*enrollmentDatamodel.Enrollment, error)
	Update(ctx context.Context, e *enrollmentDatamodel.Enrollment) error
	CreateAttendance(ctx context.Context, a *enrollmentDatamodel.AttendanceRecord) error
}

type TrainingGetter interface {
	GetByID(ctx context.Context, id int64) (*trainingDatamodel.Training, error)
}

type HoursRecorder interface {
	RecordCompletion(ctx context.Context, userID, trainingID int64, hours int, on time.Time) (int, error)
}

type BadgeAwarder interface {
	AwardEligible(ctx context.Context, userID int64, totalHours int) ([]*gamification.Badge, error)
}

// CompletionScope holds collaborators bound to a single database transaction.
type CompletionScope struct {
	Enrollments Repository
	Trainings   TrainingGetter
	Profiles    HoursRecorder
	Badges      BadgeAwarder
}

// Transactor runs fn inside one transaction; fn's error rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(scope CompletionScope) error) error
}

type Service struct {
	repo      Repository
	trainings TrainingGetter
	tx        Transactor
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, trainings TrainingGetter, tx Transactor, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		trainings: trainings,
		tx:        tx,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) CreateEnrollment(ctx context.Context, userID int64, dto CreateEnrollmentDTO) (*Enrollment, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	t, err := s.trainings.GetByID(ctx, dto.TrainingID)
	if err != nil {
		return nil, fmt.Errorf("get training: %w", err)
	}
	if t == nil {
		return nil, internal.ErrTrainingNotFound
	}

	exists, err := s.repo.ExistsForUser(ctx, dto.TrainingID, userID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if exists {
		return nil, internal.ErrAlreadyEnrolled
	}

	row := &enrollmentDatamodel.Enrollment{
		TrainingID: dto.TrainingID,
		UserID:     userID,
		Status:     string(StatusEnrolled),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	s.logger.InfoContext(ctx, "enrolled", "enrollment_id", row.ID, "training_id", row.TrainingID, "user_id", userID)
	return FromDataModel(row), nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]*Enrollment, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	enrollments := make([]*Enrollment, 0, len(rows))
	for _, row := range rows {
		enrollments = append(enrollments, FromDataModel(row))
	}
	return enrollments, nil
}

// CompleteEnrollment marks the caller's enrollment completed, credits the
// training's hours to the learning profile and awards any badge the new total
// reaches. All writes share one transaction; events go out after commit.
// Completing an already completed enrollment credits the hours again.
func (s *Service) CompleteEnrollment(ctx context.Context, enrollmentID, userID int64) (*Enrollment, error) {
	var (
		completed  *enrollmentDatamodel.Enrollment
		hours      int
		totalHours int
		awarded    []*gamification.Badge
	)

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	err := s.tx.WithinTransaction(ctx, func(scope CompletionScope) error {
		e, err := scope.Enrollments.GetForUser(ctx, enrollmentID, userID)
		if err != nil {
			return fmt.Errorf("get enrollment: %w", err)
		}
		if e == nil {
			return internal.ErrEnrollmentNotFound
		}

		t, err := scope.Trainings.GetByID(ctx, e.TrainingID)
		if err != nil {
			return fmt.Errorf("get training: %w", err)
		}
		if t == nil {
			return internal.ErrTrainingNotFound
		}

		e.Status = string(StatusCompleted)
		if err := scope.Enrollments.Update(ctx, e); err != nil {
			return fmt.Errorf("update enrollment: %w", err)
		}

		totalHours, err = scope.Profiles.RecordCompletion(ctx, userID, t.ID, t.DurationHours, today)
		if err != nil {
			return err
		}

		awarded, err = scope.Badges.AwardEligible(ctx, userID, totalHours)
		if err != nil {
			return err
		}

		completed = e
		hours = t.DurationHours
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "enrollment completed",
		"enrollment_id", completed.ID,
		"user_id", userID,
		"hours_credited", hours,
		"total_hours", totalHours,
		"badges_awarded", len(awarded))

	s.publish(ctx, events.NewEnrollmentCompletedEvent(completed.ID, userID, completed.TrainingID, hours, totalHours))
	for _, b := range awarded {
		s.publish(ctx, events.NewBadgeAwardedEvent(userID, b.ID, b.Name))
	}

	return FromDataModel(completed), nil
}

func (s *Service) RecordAttendance(ctx context.Context, recordedBy int64, dto RecordAttendanceDTO) (*AttendanceRecord, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	sessionDate, appErr := validation.ParseDate("session_date", &dto.SessionDate)
	if appErr != nil {
		return nil, appErr
	}

	e, err := s.repo.GetByID(ctx, dto.EnrollmentID)
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	if e == nil {
		return nil, internal.ErrEnrollmentNotFound
	}

	attended := true
	if dto.Attended != nil {
		attended = *dto.Attended
	}

	row := &enrollmentDatamodel.AttendanceRecord{
		EnrollmentID: e.ID,
		SessionDate:  *sessionDate,
		Attended:     attended,
		RecordedByID: recordedBy,
	}
	if err := s.repo.CreateAttendance(ctx, row); err != nil {
		return nil, fmt.Errorf("record attendance: %w", err)
	}
	return AttendanceFromDataModel(row), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
	}
}
