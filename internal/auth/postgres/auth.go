package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/frahmantamala/ld-portal/internal/auth"
	userDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	var row userDatamodel.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &auth.Credentials{
		User: auth.User{
			ID:           row.ID,
			Email:        row.Email,
			FullName:     row.FullName,
			Role:         coreuser.Role(row.Role),
			DepartmentID: row.DepartmentID,
		},
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
	}, nil
}
