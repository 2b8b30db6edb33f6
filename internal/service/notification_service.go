package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/depomarket/retail-service/internal/config"
	"github.com/depomarket/retail-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRecordCreated, n.handleRecordCreated)
	n.dispatcher.Subscribe(events.EventRecordStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventRecordNoteAdded, n.handleNoteAdded)
	n.dispatcher.Subscribe(events.EventRecordDeleted, n.handleRecordDeleted)
	n.dispatcher.Subscribe(events.EventRecordsPurged, n.handleRecordsPurged)
}

func (n *NotificationService) handleRecordCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("RecordCreated", zap.String("record_id", event.RecordID), zap.String("kind", string(event.Kind)), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("RecordStatusChanged", zap.String("record_id", event.RecordID), zap.String("kind", string(event.Kind)), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleNoteAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("RecordNoteAdded", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRecordDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("RecordDeleted", zap.String("record_id", event.RecordID), zap.String("kind", string(event.Kind)))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRecordsPurged(ctx context.Context, event events.Event) error {
	n.logger.Info("RecordsPurged", zap.String("kind", string(event.Kind)), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("record_id", event.RecordID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("record_id", event.RecordID),
		zap.String("event_type", string(event.Type)))
}
