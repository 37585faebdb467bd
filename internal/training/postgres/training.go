package postgres

import (
	"context"
	"errors"

	trainingDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/training"
	"gorm.io/gorm"
)

type TrainingRepository struct {
	db *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

func (r *TrainingRepository) Create(ctx context.Context, t *trainingDatamodel.Training, approval *trainingDatamodel.TrainingApproval) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		if approval == nil {
			return nil
		}
		approval.TrainingID = t.ID
		return tx.Create(approval).Error
	})
}

func (r *TrainingRepository) GetByID(ctx context.Context, id int64) (*trainingDatamodel.Training, error) {
	var t trainingDatamodel.Training
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TrainingRepository) List(ctx context.Context) ([]*trainingDatamodel.Training, error) {
	var rows []*trainingDatamodel.Training
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	return rows, err
}

func (r *TrainingRepository) ListMandatory(ctx context.Context) ([]*trainingDatamodel.Training, error) {
	var rows []*trainingDatamodel.Training
	err := r.db.WithContext(ctx).Where("is_mandatory = ?", true).Order("id").Find(&rows).Error
	return rows, err
}

func (r *TrainingRepository) CreateAssignment(ctx context.Context, a *trainingDatamodel.TrainingAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *TrainingRepository) ListAssignments(ctx context.Context) ([]*trainingDatamodel.TrainingAssignment, error) {
	var rows []*trainingDatamodel.TrainingAssignment
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	return rows, err
}

func (r *TrainingRepository) ListApprovals(ctx context.Context, status string) ([]*trainingDatamodel.TrainingApproval, error) {
	var rows []*trainingDatamodel.TrainingApproval
	q := r.db.WithContext(ctx).Order("id")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *TrainingRepository) GetApprovalByID(ctx context.Context, id int64) (*trainingDatamodel.TrainingApproval, error) {
	var a trainingDatamodel.TrainingApproval
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *TrainingRepository) UpdateApproval(ctx context.Context, a *trainingDatamodel.TrainingApproval) error {
	return r.db.WithContext(ctx).Save(a).Error
}
