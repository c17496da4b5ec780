package handler

import (
	"Skylark/internal/pkg/response"
	"Skylark/internal/service"

	"github.com/gin-gonic/gin"
)

type TimelineHandler struct {
	timelineSvc service.TimelineService
}

func NewTimelineHandler(timelineSvc service.TimelineService) *TimelineHandler {
	return &TimelineHandler{timelineSvc: timelineSvc}
}

func (s *TimelineHandler) GetHomeTimeline(c *gin.Context) {
	userID := c.GetUint64("user_id")

	posts, err := s.timelineSvc.GetHomeTimeline(c.Request.Context(), userID, pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toPostDTOs(posts))
}
