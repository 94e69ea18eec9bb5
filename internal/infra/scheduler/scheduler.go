package scheduler

import (
	"context"
	"time"

	"opportunity_followup_reminders/internal/app" // For ReminderService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// sweepTimeout bounds one sweep run. The sweep itself is sequential and is
// expected to finish well within the trigger interval.
const sweepTimeout = 5 * time.Minute

type ReminderScheduler struct {
	cronEngine      *cron.Cron
	reminderService app.ReminderService // Using the interface
	logger          *logrus.Logger
	cronSpecSweep   string
}

func NewReminderScheduler(
	reminderService app.ReminderService,
	logger *logrus.Logger,
	cronSpecSweep string, // e.g., "*/15 * * * *" (every 15 minutes)
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:      cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		reminderService: reminderService,
		logger:          logger,
		cronSpecSweep:   cronSpecSweep,
	}
}

func (s *ReminderScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpecSweep, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		result, err := s.reminderService.RunReminders(ctx)
		if err != nil {
			s.logger.Errorf("Opportunity follow-up reminder sweep failed: %v", err)
			return
		}
		if result.TotalSent() > 0 {
			s.logger.WithFields(logrus.Fields{
				"day1":            result.Day1,
				"day3":            result.Day3,
				"day7_escalation": result.Day7Escalation,
			}).Info("Opportunity follow-up reminders sent")
		}
		if len(result.Errors) > 0 {
			s.logger.WithField("errors", result.Errors).Warn("Opportunity reminder errors")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.Infof("Opportunity follow-up reminder sweep scheduled (%s)", s.cronSpecSweep)
	return nil
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops new runs, waits for a running sweep.
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
