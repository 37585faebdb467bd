package gamification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/ld-portal/internal/core/events"
	"github.com/frahmantamala/ld-portal/pkg/monitoring"
)

// EventHandler keeps the audit log and the learning counters in step with
// completions and awards.
type EventHandler struct {
	logger *slog.Logger
}

func NewEventHandler(logger *slog.Logger) *EventHandler {
	return &EventHandler{logger: logger}
}

func (h *EventHandler) HandleEnrollmentCompleted(ctx context.Context, event events.Event) error {
	completed, ok := event.(*events.EnrollmentCompletedEvent)
	if !ok {
		return fmt.Errorf("expected EnrollmentCompletedEvent, got %T", event)
	}

	monitoring.EnrollmentsCompleted.Inc()
	monitoring.LearningHoursCredited.Add(float64(completed.HoursCredited))

	h.logger.InfoContext(ctx, "enrollment completed",
		"event_id", completed.EventID(),
		"enrollment_id", completed.EnrollmentID,
		"user_id", completed.UserID,
		"training_id", completed.TrainingID,
		"hours_credited", completed.HoursCredited,
		"total_hours", completed.TotalHours)
	return nil
}

func (h *EventHandler) HandleBadgeAwarded(ctx context.Context, event events.Event) error {
	awarded, ok := event.(*events.BadgeAwardedEvent)
	if !ok {
		return fmt.Errorf("expected BadgeAwardedEvent, got %T", event)
	}

	monitoring.BadgesAwarded.WithLabelValues(awarded.BadgeName).Inc()

	h.logger.InfoContext(ctx, "badge awarded",
		"event_id", awarded.EventID(),
		"user_id", awarded.UserID,
		"badge_id", awarded.BadgeID,
		"badge", awarded.BadgeName)
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EnrollmentCompletedEventType, h.HandleEnrollmentCompleted)
	eventBus.Subscribe(events.BadgeAwardedEventType, h.HandleBadgeAwarded)

	h.logger.Info("gamification event handlers registered",
		"handlers", []string{events.EnrollmentCompletedEventType, events.BadgeAwardedEventType})
}
