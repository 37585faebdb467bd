package postgres

import (
	"context"

	gamificationDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/gamification"
	"gorm.io/gorm"
)

type BadgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// ListBadges returns the catalog in insertion order.
func (r *BadgeRepository) ListBadges(ctx context.Context) ([]*gamificationDatamodel.Badge, error) {
	var rows []*gamificationDatamodel.Badge
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	return rows, err
}

func (r *BadgeRepository) CreateBadge(ctx context.Context, b *gamificationDatamodel.Badge) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BadgeRepository) AwardedBadgeIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&gamificationDatamodel.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error; err != nil {
		return nil, err
	}

	held := make(map[int64]bool, len(ids))
	for _, id := range ids {
		held[id] = true
	}
	return held, nil
}

func (r *BadgeRepository) CreateUserBadge(ctx context.Context, ub *gamificationDatamodel.UserBadge) error {
	return r.db.WithContext(ctx).Create(ub).Error
}

func (r *BadgeRepository) ListUserBadges(ctx context.Context, userID int64) ([]*gamificationDatamodel.UserBadge, error) {
	var rows []*gamificationDatamodel.UserBadge
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error
	return rows, err
}
