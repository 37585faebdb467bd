// Package datamodel lists every persisted row type. Migrations under
// db/migrations are the source of truth in production; Models feeds gorm's
// AutoMigrate for sqlite backed tests.
package datamodel

import (
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/certificate"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/enrollment"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/gamification"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/profile"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/training"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/user"
)

func Models() []interface{} {
	return []interface{}{
		&user.Department{},
		&user.User{},
		&user.ManagerRelationship{},
		&training.Training{},
		&training.TrainingAssignment{},
		&training.TrainingApproval{},
		&enrollment.Enrollment{},
		&enrollment.AttendanceRecord{},
		&profile.LearningProfile{},
		&profile.TrainingHistoryEntry{},
		&profile.Certification{},
		&gamification.Badge{},
		&gamification.UserBadge{},
		&gamification.Quiz{},
		&gamification.Question{},
		&gamification.Option{},
		&gamification.QuizSubmission{},
		&certificate.Certificate{},
	}
}
