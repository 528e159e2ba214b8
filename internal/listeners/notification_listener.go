package listeners

import (
	"context"

	"gearguard/internal/services"
	"gearguard/pkg/eventbus"

	"go.uber.org/zap"
)

// NotificationListener рассылает письма по событиям доменной шины.
type NotificationListener struct {
	notifications services.NotificationServiceInterface
	logger        *zap.Logger
}

func NewNotificationListener(notifications services.NotificationServiceInterface, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{notifications: notifications, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(services.EventRequestStageChanged, l.onStageChanged)
	bus.Subscribe(services.EventEquipmentScrapped, l.onEquipmentScrapped)
}

func (l *NotificationListener) onStageChanged(ctx context.Context, event eventbus.Event) error {
	payload, ok := event.(services.RequestStageChangedEvent)
	if !ok {
		l.logger.Warn("Неожиданный тип события", zap.String("event", event.Name()))
		return nil
	}

	if payload.TechnicianEmail == nil || *payload.TechnicianEmail == "" {
		l.logger.Debug("Смена этапа без техника, письмо не отправляется",
			zap.Uint64("requestID", payload.RequestID))
		return nil
	}

	return l.notifications.SendStageChanged(ctx,
		*payload.TechnicianEmail, payload.RequestName, payload.OldStage, payload.NewStage)
}

func (l *NotificationListener) onEquipmentScrapped(ctx context.Context, event eventbus.Event) error {
	payload, ok := event.(services.EquipmentScrappedEvent)
	if !ok {
		l.logger.Warn("Неожиданный тип события", zap.String("event", event.Name()))
		return nil
	}

	// Списание фиксируем в журнале, рассылки по нему пока нет.
	l.logger.Info("Оборудование списано",
		zap.Uint64("equipmentID", payload.EquipmentID),
		zap.String("название", payload.EquipmentName),
		zap.Uint64("requestID", payload.RequestID))
	return nil
}
