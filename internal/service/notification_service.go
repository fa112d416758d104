package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/events"
)

// NotificationService pushes allocation events toward gate displays and
// webhooks. Both targets are stubs; the events stay inside the process.
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
	n.dispatcher.Subscribe(events.EventSpaceOccupied, n.handleSpaceOccupied)
	n.dispatcher.Subscribe(events.EventSpaceVacated, n.handleSpaceVacated)
	n.dispatcher.Subscribe(events.EventSpaceReserved, n.handleSpaceReserved)
	n.dispatcher.Subscribe(events.EventPaymentProcessed, n.handlePaymentProcessed)
}

func (n *NotificationService) handleSpaceOccupied(ctx context.Context, event events.Event) error {
	n.logger.Info("SpaceOccupied", zap.Int("space_id", event.SpaceID), zap.Any("payload", event.Payload))
	n.sendGateDisplayStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSpaceVacated(ctx context.Context, event events.Event) error {
	n.logger.Info("SpaceVacated", zap.Int("space_id", event.SpaceID), zap.Any("payload", event.Payload))
	n.sendGateDisplayStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSpaceReserved(ctx context.Context, event events.Event) error {
	n.logger.Info("SpaceReserved", zap.Int("space_id", event.SpaceID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePaymentProcessed(ctx context.Context, event events.Event) error {
	n.logger.Info("PaymentProcessed", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) sendGateDisplayStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.GateDisplayURL) == "" {
		return
	}
	n.logger.Debug("sendGateDisplayStub",
		zap.String("url", n.cfg.GateDisplayURL),
		zap.Int("space_id", event.SpaceID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
