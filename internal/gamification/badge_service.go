package gamification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/ld-portal/internal/certificate"
	gamificationDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/gamification"
)

type BadgeRepository interface {
	ListBadges(ctx context.Context) ([]*gamificationDatamodel.Badge, error)
	CreateBadge(ctx context.Context, b *gamificationDatamodel.Badge) error
	AwardedBadgeIDs(ctx context.Context, userID int64) (map[int64]bool, error)
	CreateUserBadge(ctx context.Context, ub *gamificationDatamodel.UserBadge) error
	ListUserBadges(ctx context.Context, userID int64) ([]*gamificationDatamodel.UserBadge, error)
}

// CertificateIssuer mints the certificate that accompanies a new badge.
type CertificateIssuer interface {
	Issue(ctx context.Context, userID, badgeID int64, templateType string) (*certificate.Certificate, error)
}

type BadgeService struct {
	repo   BadgeRepository
	issuer CertificateIssuer
	logger *slog.Logger
	now    func() time.Time
}

func NewBadgeService(repo BadgeRepository, issuer CertificateIssuer, logger *slog.Logger) *BadgeService {
	return &BadgeService{
		repo:   repo,
		issuer: issuer,
		logger: logger,
		now:    time.Now,
	}
}

// EnsureSeeded inserts any catalog badge that is missing.
func (s *BadgeService) EnsureSeeded(ctx context.Context) ([]*gamificationDatamodel.Badge, error) {
	badges, err := s.repo.ListBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}

	existing := make(map[string]bool, len(badges))
	for _, b := range badges {
		existing[b.Name] = true
	}

	seeded := false
	for _, def := range BadgeDefinitions {
		if existing[def.Name] {
			continue
		}
		if err := s.repo.CreateBadge(ctx, &gamificationDatamodel.Badge{Name: def.Name, ThresholdHours: def.ThresholdHours}); err != nil {
			return nil, fmt.Errorf("seed badge %s: %w", def.Name, err)
		}
		seeded = true
	}
	if !seeded {
		return badges, nil
	}

	badges, err = s.repo.ListBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	return badges, nil
}

// AwardEligible grants every badge whose threshold is reached by totalHours and
// that the user does not hold yet, minting a certificate per new badge. Badges
// are never revoked. It returns only the newly awarded badges.
func (s *BadgeService) AwardEligible(ctx context.Context, userID int64, totalHours int) ([]*Badge, error) {
	badges, err := s.EnsureSeeded(ctx)
	if err != nil {
		return nil, err
	}

	held, err := s.repo.AwardedBadgeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user badges: %w", err)
	}

	var awarded []*Badge
	for _, b := range badges {
		if totalHours < b.ThresholdHours || held[b.ID] {
			continue
		}

		if err := s.repo.CreateUserBadge(ctx, &gamificationDatamodel.UserBadge{
			UserID:    userID,
			BadgeID:   b.ID,
			AwardedAt: s.now().UTC(),
		}); err != nil {
			return nil, fmt.Errorf("award badge %s: %w", b.Name, err)
		}
		if _, err := s.issuer.Issue(ctx, userID, b.ID, b.Name); err != nil {
			return nil, fmt.Errorf("issue certificate for %s: %w", b.Name, err)
		}

		held[b.ID] = true
		awarded = append(awarded, BadgeFromDataModel(b))
		s.logger.InfoContext(ctx, "badge awarded",
			"user_id", userID,
			"badge", b.Name,
			"total_hours", totalHours)
	}
	return awarded, nil
}

func (s *BadgeService) ListUserBadges(ctx context.Context, userID int64) ([]*UserBadge, error) {
	badges, err := s.repo.ListBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	byID := make(map[int64]*gamificationDatamodel.Badge, len(badges))
	for _, b := range badges {
		byID[b.ID] = b
	}

	rows, err := s.repo.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user badges: %w", err)
	}

	result := make([]*UserBadge, 0, len(rows))
	for _, row := range rows {
		ub := &UserBadge{ID: row.ID, UserID: row.UserID, AwardedAt: row.AwardedAt}
		if b, ok := byID[row.BadgeID]; ok {
			ub.Badge = *BadgeFromDataModel(b)
		} else {
			ub.Badge = Badge{ID: row.BadgeID}
		}
		result = append(result, ub)
	}
	return result, nil
}
