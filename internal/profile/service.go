package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/core/common/validation"
	profileDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/profile"
)

type Repository interface {
	// GetByUserID returns nil, nil when the user has no profile yet.
	GetByUserID(ctx context.Context, userID int64) (*profileDatamodel.LearningProfile, error)
	Save(ctx context.Context, p *profileDatamodel.LearningProfile) error

	AppendHistory(ctx context.Context, entry *profileDatamodel.TrainingHistoryEntry) error
	ListHistory(ctx context.Context, userID int64) ([]*profileDatamodel.TrainingHistoryEntry, error)

	CreateCertification(ctx context.Context, c *profileDatamodel.Certification) error
	ListCertifications(ctx context.Context, userID int64) ([]*profileDatamodel.Certification, error)
}

type UserChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo   Repository
	users  UserChecker
	logger *slog.Logger
}

// NewService wires the profile service. users may be nil when the service only
// records completions.
func NewService(repo Repository, users UserChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// GetOrInit returns the stored profile or a zero-valued, unsaved one.
func (s *Service) GetOrInit(ctx context.Context, userID int64) (*profileDatamodel.LearningProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get learning profile: %w", err)
	}
	if p == nil {
		p = &profileDatamodel.LearningProfile{UserID: userID}
	}
	return p, nil
}

// RecordCompletion appends a history entry and credits hours to the running
// total. It returns the new total.
func (s *Service) RecordCompletion(ctx context.Context, userID, trainingID int64, hours int, on time.Time) (int, error) {
	entry := &profileDatamodel.TrainingHistoryEntry{
		UserID:         userID,
		TrainingID:     trainingID,
		Status:         HistoryStatusCompleted,
		CompletionDate: on,
		HoursCredited:  hours,
	}
	if err := s.repo.AppendHistory(ctx, entry); err != nil {
		return 0, fmt.Errorf("append training history: %w", err)
	}

	p, err := s.GetOrInit(ctx, userID)
	if err != nil {
		return 0, err
	}
	p.TotalLearningHoursCurrentYear += hours
	if err := s.repo.Save(ctx, p); err != nil {
		return 0, fmt.Errorf("save learning profile: %w", err)
	}

	s.logger.InfoContext(ctx, "learning hours credited",
		"user_id", userID,
		"training_id", trainingID,
		"hours", hours,
		"total_hours", p.TotalLearningHoursCurrentYear)
	return p.TotalLearningHoursCurrentYear, nil
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.GetOrInit(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, p)
}

// GetProfileForUser reads another user's profile. Access checks happen in the handler.
func (s *Service) GetProfileForUser(ctx context.Context, userID int64) (*Profile, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return s.GetProfile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, dto UpdateProfileDTO) (*Profile, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	p, err := s.GetOrInit(ctx, userID)
	if err != nil {
		return nil, err
	}
	if dto.TechStack != nil {
		techStack := strings.TrimSpace(*dto.TechStack)
		p.TechStack = &techStack
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save learning profile: %w", err)
	}
	return s.assemble(ctx, p)
}

func (s *Service) AddCertification(ctx context.Context, userID int64, dto CreateCertificationDTO) (*Certification, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	issued, appErr := validation.ParseDate("issue_date", dto.IssueDate)
	if appErr != nil {
		return nil, appErr
	}
	expires, appErr := validation.ParseDate("expiry_date", dto.ExpiryDate)
	if appErr != nil {
		return nil, appErr
	}
	if issued != nil && expires != nil && expires.Before(*issued) {
		return nil, internal.NewValidationFieldError("expiry_date", "expiry_date must not be before issue_date", internal.ErrCodeInvalidDate)
	}

	row := &profileDatamodel.Certification{
		UserID:           userID,
		Name:             dto.Name,
		Issuer:           dto.Issuer,
		IssueDate:        issued,
		ExpiryDate:       expires,
		LinkedTrainingID: dto.LinkedTrainingID,
	}
	if err := s.repo.CreateCertification(ctx, row); err != nil {
		return nil, fmt.Errorf("create certification: %w", err)
	}
	return CertificationFromDataModel(row), nil
}

func (s *Service) assemble(ctx context.Context, p *profileDatamodel.LearningProfile) (*Profile, error) {
	certs, err := s.repo.ListCertifications(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	history, err := s.repo.ListHistory(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list training history: %w", err)
	}

	out := &Profile{
		UserID:                        p.UserID,
		TechStack:                     p.TechStack,
		TotalLearningHoursCurrentYear: p.TotalLearningHoursCurrentYear,
		Certifications:                make([]*Certification, 0, len(certs)),
		TrainingHistory:               make([]*HistoryEntry, 0, len(history)),
	}
	for _, c := range certs {
		out.Certifications = append(out.Certifications, CertificationFromDataModel(c))
	}
	for _, h := range history {
		out.TrainingHistory = append(out.TrainingHistory, HistoryFromDataModel(h))
	}
	return out, nil
}
