package certificate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	certificateDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/certificate"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *certificateDatamodel.Certificate) error
	ListByUser(ctx context.Context, userID int64) ([]*certificateDatamodel.Certificate, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Issue mints a certificate for a freshly awarded badge.
func (s *Service) Issue(ctx context.Context, userID, badgeID int64, templateType string) (*Certificate, error) {
	row := &certificateDatamodel.Certificate{
		Serial:       uuid.NewString(),
		UserID:       userID,
		BadgeID:      badgeID,
		TemplateType: templateType,
		Meta:         MetaFor(templateType),
		IssuedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("issue certificate: %w", err)
	}

	s.logger.InfoContext(ctx, "certificate issued",
		"user_id", userID,
		"badge_id", badgeID,
		"template_type", templateType,
		"serial", row.Serial)
	return FromDataModel(row), nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]*Certificate, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	certs := make([]*Certificate, 0, len(rows))
	for _, row := range rows {
		certs = append(certs, FromDataModel(row))
	}
	return certs, nil
}
