package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/ld-portal/internal/core/events"
	"github.com/frahmantamala/ld-portal/internal/gamification"
	"github.com/frahmantamala/ld-portal/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish learning events through the in-process bus to check handler wiring`,
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [event-type]",
	Short:     "Publish a test event",
	Long:      `Publish an enrollment.completed or badge.awarded event to the registered handlers`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{events.EnrollmentCompletedEventType, events.BadgeAwardedEventType},
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(cmd.Context(), args[0])
	},
}

var (
	eventUserID int64
	eventHours  int
	eventBadge  string
)

func buildTestEvent(eventType string) (events.Event, error) {
	switch eventType {
	case events.EnrollmentCompletedEventType:
		return events.NewEnrollmentCompletedEvent(0, eventUserID, 0, eventHours, eventHours), nil
	case events.BadgeAwardedEventType:
		return events.NewBadgeAwardedEvent(eventUserID, 0, eventBadge), nil
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
}

func publishTestEvent(ctx context.Context, eventType string) error {
	lg := logger.LoggerWrapper()

	event, err := buildTestEvent(eventType)
	if err != nil {
		return err
	}

	bus := events.NewEventBus(lg)
	gamification.NewEventHandler(lg).RegisterEventHandlers(bus)

	lg.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())

	if err := bus.PublishSync(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	lg.Info("test event handled", "payload", event.Payload())
	return nil
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventUserID, "user", 1, "User id carried by the event")
	publishEventCmd.Flags().IntVar(&eventHours, "hours", 1, "Hours credited for enrollment.completed")
	publishEventCmd.Flags().StringVar(&eventBadge, "badge", gamification.BadgeSilver, "Badge name for badge.awarded")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
