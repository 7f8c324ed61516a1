package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"OnShift/config"
	"OnShift/internal/cache"
	"OnShift/internal/model"
	"OnShift/pkg/logger"
	"OnShift/pkg/metrics"
	"OnShift/pkg/sms"
)

var (
	notificationService *NotificationService
	notificationOnce    sync.Once
)

func Notification() *NotificationService {
	notificationOnce.Do(func() {
		notificationService = &NotificationService{}
	})
	return notificationService
}

type NotificationService struct{}

// SendMissedClockOutReminder texts a worker whose session has been
// open past the configured limit. At most one reminder per worker per
// day.
func (s *NotificationService) SendMissedClockOutReminder(ctx context.Context, msg model.MissedClockOutMessage) error {
	if msg.Phone == "" {
		logger.Logger.Info("Skipping reminder for worker without phone",
			zap.Int64("worker_id", msg.WorkerID),
		)
		return nil
	}

	date := time.Now().UTC().Format("2006-01-02")
	sent, err := cache.IsReminderSent(ctx, date, msg.WorkerID)
	if err != nil {
		logger.Logger.Warn("Failed to check reminder sent status",
			zap.Int64("worker_id", msg.WorkerID),
			zap.Error(err),
		)
	} else if sent {
		return nil
	}

	templateParam, err := json.Marshal(map[string]string{
		"open_since": msg.OpenSinceUTC,
	})
	if err != nil {
		return fmt.Errorf("failed to build template param: %w", err)
	}

	cfg := config.Cfg
	_, err = sms.GetClient().SendSingle(ctx, msg.Phone, cfg.SMSSignName, cfg.SMSTemplateCode, string(templateParam))
	if err != nil {
		return fmt.Errorf("failed to send reminder SMS: %w", err)
	}
	metrics.RecordReminderSent(ctx, cfg.SMSProvider)

	if err := cache.MarkReminderSent(ctx, date, msg.WorkerID); err != nil {
		logger.Logger.Warn("Failed to mark reminder sent",
			zap.Int64("worker_id", msg.WorkerID),
			zap.Error(err),
		)
	}
	return nil
}
