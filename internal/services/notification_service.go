package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gearguard/internal/repositories"
	"gearguard/pkg/mailer"

	"go.uber.org/zap"
)

// NotificationServiceInterface - все исходящие уведомления сервиса.
type NotificationServiceInterface interface {
	SendWarrantyAlert(ctx context.Context, to string, equipmentName string, serial *string, warrantyDate time.Time, daysLeft int, critical bool) error
	SendOverdueReminder(ctx context.Context, to string, fio string, items []repositories.OverdueRow) error
	SendStageChanged(ctx context.Context, to string, requestName, oldStage, newStage string) error
}

type mailNotificationService struct {
	mailer mailer.Mailer
	logger *zap.Logger
}

func NewMailNotificationService(m mailer.Mailer, logger *zap.Logger) NotificationServiceInterface {
	return &mailNotificationService{mailer: m, logger: logger}
}

func (s *mailNotificationService) SendWarrantyAlert(ctx context.Context, to string, equipmentName string, serial *string, warrantyDate time.Time, daysLeft int, critical bool) error {
	subject := fmt.Sprintf("Гарантия на «%s» истекает через %d дн.", equipmentName, daysLeft)
	if critical {
		subject = "СРОЧНО: " + subject
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Оборудование: %s\n", equipmentName)
	if serial != nil && *serial != "" {
		fmt.Fprintf(&b, "Серийный номер: %s\n", *serial)
	}
	fmt.Fprintf(&b, "Дата окончания гарантии: %s\n", warrantyDate.Format("02.01.2006"))
	fmt.Fprintf(&b, "Осталось дней: %d\n", daysLeft)
	b.WriteString("\nПроверьте условия гарантии и при необходимости запланируйте обслуживание заранее.\n")

	err := s.mailer.Send(ctx, mailer.Message{
		To:      []mailer.EmailAddress{{Email: to}},
		Subject: subject,
		Text:    b.String(),
	})
	if err != nil {
		s.logger.Error("Не удалось отправить уведомление о гарантии",
			zap.String("кому", to), zap.String("оборудование", equipmentName), zap.Error(err))
		return err
	}
	s.logger.Info("Отправлено уведомление о гарантии",
		zap.String("кому", to), zap.String("оборудование", equipmentName), zap.Int("дней", daysLeft))
	return nil
}

func (s *mailNotificationService) SendOverdueReminder(ctx context.Context, to string, fio string, items []repositories.OverdueRow) error {
	if len(items) == 0 {
		return nil
	}
	subject := fmt.Sprintf("Просроченные заявки на обслуживание: %d", len(items))

	var b strings.Builder
	fmt.Fprintf(&b, "%s, за вами числятся просроченные заявки:\n\n", fio)
	for _, item := range items {
		fmt.Fprintf(&b, "- №%d «%s» (%s), план: %s\n",
			item.RequestID, item.RequestName, item.EquipmentName,
			item.ScheduleDate.Format("02.01.2006"))
	}
	b.WriteString("\nПожалуйста, обновите статус заявок или перенесите плановую дату.\n")

	err := s.mailer.Send(ctx, mailer.Message{
		To:      []mailer.EmailAddress{{Email: to, Name: fio}},
		Subject: subject,
		Text:    b.String(),
	})
	if err != nil {
		s.logger.Error("Не удалось отправить напоминание о просроченных заявках",
			zap.String("кому", to), zap.Int("заявок", len(items)), zap.Error(err))
		return err
	}
	s.logger.Info("Отправлено напоминание о просроченных заявках",
		zap.String("кому", to), zap.Int("заявок", len(items)))
	return nil
}

func (s *mailNotificationService) SendStageChanged(ctx context.Context, to string, requestName, oldStage, newStage string) error {
	subject := fmt.Sprintf("Заявка «%s»: %s -> %s", requestName, oldStage, newStage)
	body := fmt.Sprintf("Заявка «%s» переведена с этапа «%s» на этап «%s».\n", requestName, oldStage, newStage)

	err := s.mailer.Send(ctx, mailer.Message{
		To:      []mailer.EmailAddress{{Email: to}},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		s.logger.Error("Не удалось отправить уведомление о смене этапа",
			zap.String("кому", to), zap.String("заявка", requestName), zap.Error(err))
		return err
	}
	return nil
}
