package kafka

import (
	"Skylark/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// NotificationHandler 消费通知事件并落库
type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (s *NotificationHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer setup")
	return nil
}

func (s *NotificationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer cleanup")
	return nil
}

func (s *NotificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-notification consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-notification process batch error", "err", err)
		return err
	}
	return nil
}

func (s *NotificationHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event service.NotificationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 格式坏掉的消息重试也无济于事，记日志后丢弃
		log.ErrorContext(ctx, "unmarshal notification event failed", "err", err)
		return nil
	}

	if err := s.notificationService.SaveNotification(ctx, &event); err != nil {
		if errors.Is(err, service.ErrParamInvalid) {
			log.WarnContext(ctx, "drop invalid notification event", "offset", msg.Offset)
			return nil
		}
		return errors.Wrap(err, "save notification")
	}

	log.InfoContext(ctx, "notification persisted",
		"receiver_id", event.ReceiverID, "actor_id", event.ActorID, "type", event.Type)
	return nil
}
