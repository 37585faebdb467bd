package postgres

import (
	"context"

	certificateDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/certificate"
	"gorm.io/gorm"
)

type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(ctx context.Context, c *certificateDatamodel.Certificate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID int64) ([]*certificateDatamodel.Certificate, error) {
	var rows []*certificateDatamodel.Certificate
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error
	return rows, err
}
