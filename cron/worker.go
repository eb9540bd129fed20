package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bookable/config"
	"bookable/models"
	"bookable/services/notification"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderScheduler enqueues appointment reminders on the asynq queue.
type ReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewReminderScheduler constructs a scheduler delivering reminders lead
// before the appointment start.
func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		client: asynq.NewClient(redisOpts()),
		lead:   time.Duration(config.AppConfig.ReminderLeadMin) * time.Minute,
	}
}

// ScheduleReminder enqueues one reminder task for the appointment. Fires at
// start minus the configured lead; appointments starting sooner than that
// get no reminder.
func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	fireAt := appt.Start.Add(-s.lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(models.ReminderPayload{
		AppointmentID: appt.ID,
		CustomerID:    appt.CustomerID,
		BusinessID:    appt.BusinessID,
		Title:         appt.Title,
		StartsAt:      appt.Start.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	_, err = s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt), asynq.MaxRetry(3))
	return err
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		start, err := time.Parse(time.RFC3339, p.StartsAt)
		if err != nil {
			log.Printf("[ReminderHandler] invalid start time in payload: %v", err)
			return err
		}

		appt := models.Appointment{
			ID:         p.AppointmentID,
			BusinessID: p.BusinessID,
			CustomerID: p.CustomerID,
			Title:      p.Title,
			Start:      start,
			Status:     models.StatusConfirmed,
		}
		if err := notifSvc.AppointmentReminder(ctx, appt); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for %s: %v", p.AppointmentID, err)
			return err
		}
		return nil
	}
}
