package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrollmentCompletedEventType = "enrollment.completed"
	BadgeAwardedEventType        = "badge.awarded"
)

type EnrollmentCompletedEvent struct {
	BaseEvent
	EnrollmentID  int64 `json:"enrollment_id"`
	UserID        int64 `json:"user_id"`
	TrainingID    int64 `json:"training_id"`
	HoursCredited int   `json:"hours_credited"`
	TotalHours    int   `json:"total_hours"`
}

func NewEnrollmentCompletedEvent(enrollmentID, userID, trainingID int64, hoursCredited, totalHours int) *EnrollmentCompletedEvent {
	return &EnrollmentCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EnrollmentCompletedEventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"enrollment_id":  enrollmentID,
				"user_id":        userID,
				"training_id":    trainingID,
				"hours_credited": hoursCredited,
				"total_hours":    totalHours,
			},
		},
		EnrollmentID:  enrollmentID,
		UserID:        userID,
		TrainingID:    trainingID,
		HoursCredited: hoursCredited,
		TotalHours:    totalHours,
	}
}

type BadgeAwardedEvent struct {
	BaseEvent
	UserID    int64  `json:"user_id"`
	BadgeID   int64  `json:"badge_id"`
	BadgeName string `json:"badge_name"`
}

func NewBadgeAwardedEvent(userID, badgeID int64, badgeName string) *BadgeAwardedEvent {
	return &BadgeAwardedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      BadgeAwardedEventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":    userID,
				"badge_id":   badgeID,
				"badge_name": badgeName,
			},
		},
		UserID:    userID,
		BadgeID:   badgeID,
		BadgeName: badgeName,
	}
}
