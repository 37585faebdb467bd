package postgres

import (
	"context"
	"errors"

	profileDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/profile"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*profileDatamodel.LearningProfile, error) {
	var p profileDatamodel.LearningProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Save inserts unsaved profiles and updates the rest.
func (r *ProfileRepository) Save(ctx context.Context, p *profileDatamodel.LearningProfile) error {
	if p.ID == 0 {
		return r.db.WithContext(ctx).Create(p).Error
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProfileRepository) AppendHistory(ctx context.Context, entry *profileDatamodel.TrainingHistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ProfileRepository) ListHistory(ctx context.Context, userID int64) ([]*profileDatamodel.TrainingHistoryEntry, error) {
	var rows []*profileDatamodel.TrainingHistoryEntry
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error
	return rows, err
}

func (r *ProfileRepository) CreateCertification(ctx context.Context, c *profileDatamodel.Certification) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ProfileRepository) ListCertifications(ctx context.Context, userID int64) ([]*profileDatamodel.Certification, error) {
	var rows []*profileDatamodel.Certification
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error
	return rows, err
}
