package service

import (
	"Skylark/internal/pkg/consts"
	"Skylark/internal/pkg/mongo"
	"context"
	"errors"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	SaveNotification(ctx context.Context, event *NotificationEvent) error
	GetNotificationList(ctx context.Context, userID uint64, page int) ([]*mongo.NotificationModel, error)
	MarkAsRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
}

type NotificationServiceImpl struct {
	notificationRepo mongo.NotificationRepo
}

func NewNotificationService(notificationRepo mongo.NotificationRepo) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

// SaveNotification 把关注事件落库，消费端调用
func (s *NotificationServiceImpl) SaveNotification(ctx context.Context, event *NotificationEvent) error {
	if event == nil || event.ReceiverID == 0 {
		return ErrParamInvalid
	}
	return s.notificationRepo.CreateNotification(ctx, &mongo.NotificationModel{
		ReceiverID: event.ReceiverID,
		ActorID:    event.ActorID,
		Type:       event.Type,
		IsRead:     false,
		CreatedAt:  time.Now(),
	})
}

func (s *NotificationServiceImpl) GetNotificationList(ctx context.Context, userID uint64, page int) ([]*mongo.NotificationModel, error) {
	if page < 1 {
		page = 1
	}
	limit := int64(consts.EngagementPageSize)
	offset := limit * int64(page-1)
	return s.notificationRepo.GetNotificationList(ctx, userID, limit, offset)
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, userID uint64, msgID string) error {
	err := s.notificationRepo.MarkAsRead(ctx, userID, msgID)
	if errors.Is(err, mongodriver.ErrNoDocuments) || errors.Is(err, mongodriver.ErrInvalidIndexValue) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.notificationRepo.GetUnreadCount(ctx, userID)
}
