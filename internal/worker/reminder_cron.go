package worker

// reminder_cron.go
// Minute ticker that drains due reminders into the email queue. A reminder
// is marked sent as soon as its job is queued, so delivery is at-most-once.

import (
	"context"
	"fmt"
	"time"

	"billtrack/internal/repository"

	"github.com/rs/zerolog/log"
)

const reminderTickInterval = time.Minute

// StartReminderCron runs the reminder scan loop until ctx is cancelled.
func StartReminderCron(ctx context.Context, repo repository.ReminderRepository, dispatcher *Dispatcher) {
	go func() {
		ticker := time.NewTicker(reminderTickInterval)
		defer ticker.Stop()
		log.Info().Msg("reminder cron started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder cron shutting down")
				return
			case <-ticker.C:
				dispatchDueReminders(ctx, repo, dispatcher)
			}
		}
	}()
}

func dispatchDueReminders(ctx context.Context, repo repository.ReminderRepository, dispatcher *Dispatcher) {
	due, err := repo.ListDue(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("reminder cron: failed to list due reminders")
		return
	}

	for _, rm := range due {
		body := fmt.Sprintf("<p><b>%s</b></p>", rm.Title)
		if rm.Notes != "" {
			body += fmt.Sprintf("<p>%s</p>", rm.Notes)
		}
		err := dispatcher.EnqueueEmail(ctx, EmailJobPayload{
			To:      rm.RecipientEmail,
			Subject: "Reminder: " + rm.Title,
			HTML:    body,
		})
		if err != nil {
			log.Error().Err(err).Str("reminder_id", rm.ID.String()).Msg("reminder cron: enqueue failed")
			continue // left unsent, retried next tick
		}
		if err := repo.MarkSent(ctx, rm.ID); err != nil {
			log.Error().Err(err).Str("reminder_id", rm.ID.String()).Msg("reminder cron: mark sent failed")
		}
	}

	if len(due) > 0 {
		log.Info().Int("count", len(due)).Msg("reminder cron: reminders dispatched")
	}
}
