package handler

import (
	"Skylark/internal/api/dto"
	"Skylark/internal/pkg/response"
	"Skylark/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (s *NotificationHandler) GetNotificationList(c *gin.Context) {
	userID := c.GetUint64("user_id")

	list, err := s.notificationSvc.GetNotificationList(c.Request.Context(), userID, pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]*dto.NotificationDTO, 0, len(list))
	for _, m := range list {
		createdAt := m.CreatedAt
		out = append(out, &dto.NotificationDTO{
			ID:        m.ID.Hex(),
			ActorID:   m.ActorID,
			Type:      m.Type,
			IsRead:    m.IsRead,
			CreatedAt: &createdAt,
		})
	}
	response.Success(c, out)
}

func (s *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetUint64("user_id")
	msgID := c.Query("msg_id")
	if msgID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.notificationSvc.MarkAsRead(c.Request.Context(), userID, msgID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if err := s.notificationSvc.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetUint64("user_id")
	count, err := s.notificationSvc.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}
