package postgres

import (
	"context"
	"errors"

	enrollmentDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/enrollment"
	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *enrollmentDatamodel.Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*enrollmentDatamodel.Enrollment, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *EnrollmentRepository) GetForUser(ctx context.Context, id, userID int64) (*enrollmentDatamodel.Enrollment, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID))
}

func (r *EnrollmentRepository) ExistsForUser(ctx context.Context, trainingID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&enrollmentDatamodel.Enrollment{}).
		Where("training_id = ? AND user_id = ?", trainingID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64) ([]*enrollmentDatamodel.Enrollment, error) {
	var rows []*enrollmentDatamodel.Enrollment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error
	return rows, err
}

func (r *EnrollmentRepository) Update(ctx context.Context, e *enrollmentDatamodel.Enrollment) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EnrollmentRepository) CreateAttendance(ctx context.Context, a *enrollmentDatamodel.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// StatusesByUser maps training id to the user's enrollment status.
func (r *EnrollmentRepository) StatusesByUser(ctx context.Context, userID int64) (map[int64]string, error) {
	var rows []*enrollmentDatamodel.Enrollment
	if err := r.db.WithContext(ctx).
		Select("training_id", "status").
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	statuses := make(map[int64]string, len(rows))
	for _, row := range rows {
		statuses[row.TrainingID] = row.Status
	}
	return statuses, nil
}

func (r *EnrollmentRepository) first(q *gorm.DB) (*enrollmentDatamodel.Enrollment, error) {
	var e enrollmentDatamodel.Enrollment
	if err := q.First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
