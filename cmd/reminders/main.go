package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kepler/internal/config"
	"kepler/internal/database"
	"kepler/internal/logger"
	"kepler/internal/notify"
	"kepler/internal/services"
)

// The reminder dispatcher polls the due-reminder read on an interval and
// forwards matches to Telegram. It is the external scheduler the engine
// expects; delivery guarantees stay out of scope.
func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	location, err := time.LoadLocation(appConfig.Timezone)
	if err != nil {
		log.Warnf("invalid timezone %q, using local time: %v", appConfig.Timezone, err)
		location = time.Local
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	reminderService := services.NewReminderService(dbManager.DB())
	notifier := notify.NewTelegramNotifier(appConfig.TelegramBotToken)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Reminder dispatcher running every %s (%s)", appConfig.ReminderInterval, appConfig.Timezone)

	ticker := time.NewTicker(appConfig.ReminderInterval)
	defer ticker.Stop()

	for {
		if err := dispatch(ctx, reminderService, notifier, location, appConfig.StoreTimeout); err != nil {
			log.Errorf("dispatch failed: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Info("Shutting down reminder dispatcher")
			return nil
		case <-ticker.C:
		}
	}
}

// dispatch sends every due reminder and marks it sent. A delivery failure
// leaves the reminder unmarked so the next poll retries it.
func dispatch(
	ctx context.Context,
	reminders services.ReminderServicer,
	notifier notify.Notifier,
	location *time.Location,
	timeout time.Duration,
) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	now := time.Now().In(location)
	due, err := reminders.GetDue(ctx, now)
	if err != nil {
		return err
	}

	log := logger.Get()
	for _, reminder := range due {
		if err := notifier.Send(ctx, reminder.ChatID, reminder.Message); err != nil {
			log.Errorw("failed to send reminder",
				"reminder_id", reminder.ID,
				"chat_id", reminder.ChatID,
				"error", err,
			)
			continue
		}
		if err := reminders.MarkSent(ctx, reminder.ID, now.Format("2006-01-02")); err != nil {
			log.Errorw("failed to mark reminder sent",
				"reminder_id", reminder.ID,
				"error", err,
			)
			continue
		}
		log.Infow("reminder sent", "reminder_id", reminder.ID, "chat_id", reminder.ChatID)
	}
	return nil
}
