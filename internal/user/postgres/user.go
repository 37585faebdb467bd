package postgres

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func first[T any](q *gorm.DB) (*T, error) {
	var row T
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	return first[userDatamodel.User](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	return first[userDatamodel.User](r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email))
}

func (r *UserRepository) List(ctx context.Context) ([]*userDatamodel.User, error) {
	var rows []*userDatamodel.User
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	return rows, err
}

func (r *UserRepository) CreateDepartment(ctx context.Context, d *userDatamodel.Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *UserRepository) GetDepartmentByID(ctx context.Context, id int64) (*userDatamodel.Department, error) {
	return first[userDatamodel.Department](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *UserRepository) GetDepartmentByName(ctx context.Context, name string) (*userDatamodel.Department, error) {
	return first[userDatamodel.Department](r.db.WithContext(ctx).Where("name = ?", name))
}

func (r *UserRepository) ListDepartments(ctx context.Context) ([]*userDatamodel.Department, error) {
	var rows []*userDatamodel.Department
	err := r.db.WithContext(ctx).Order("name").Find(&rows).Error
	return rows, err
}

func (r *UserRepository) CreateManagerLink(ctx context.Context, link *userDatamodel.ManagerRelationship) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *UserRepository) LinkExists(ctx context.Context, managerID, reporteeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.ManagerRelationship{}).
		Where("manager_id = ? AND reportee_id = ?", managerID, reporteeID).
		Count(&count).Error
	return count > 0, err
}
