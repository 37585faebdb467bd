package postgres

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/ld-portal/internal/certificate"
	certificatePostgres "github.com/frahmantamala/ld-portal/internal/certificate/postgres"
	"github.com/frahmantamala/ld-portal/internal/enrollment"
	"github.com/frahmantamala/ld-portal/internal/gamification"
	gamificationPostgres "github.com/frahmantamala/ld-portal/internal/gamification/postgres"
	"github.com/frahmantamala/ld-portal/internal/profile"
	profilePostgres "github.com/frahmantamala/ld-portal/internal/profile/postgres"
	trainingPostgres "github.com/frahmantamala/ld-portal/internal/training/postgres"
	"gorm.io/gorm"
)

// CompletionTransactor binds the completion workflow's repositories and
// services to one gorm transaction.
type CompletionTransactor struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCompletionTransactor(db *gorm.DB, logger *slog.Logger) *CompletionTransactor {
	return &CompletionTransactor{db: db, logger: logger}
}

func (t *CompletionTransactor) WithinTransaction(ctx context.Context, fn func(scope enrollment.CompletionScope) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		certificates := certificate.NewService(certificatePostgres.NewCertificateRepository(tx), t.logger)

		return fn(enrollment.CompletionScope{
			Enrollments: NewEnrollmentRepository(tx),
			Trainings:   trainingPostgres.NewTrainingRepository(tx),
			Profiles:    profile.NewService(profilePostgres.NewProfileRepository(tx), nil, t.logger),
			Badges:      gamification.NewBadgeService(gamificationPostgres.NewBadgeRepository(tx), certificates, t.logger),
		})
	})
}
