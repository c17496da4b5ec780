package handler

import (
	"Skylark/internal/api/dto"
	"Skylark/internal/pkg/response"
	"Skylark/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementSvc service.EngagementService
}

func NewEngagementHandler(engagementSvc service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementSvc: engagementSvc}
}

type engagementMutation func(ctx context.Context, userID, postID uint64) (*service.ActionResult, error)

func (s *EngagementHandler) mutate(c *gin.Context, op engagementMutation) {
	userID := c.GetUint64("user_id")
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := op(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ActionDTO{OK: result.OK, Modified: result.Modified})
}

func (s *EngagementHandler) Like(c *gin.Context) {
	s.mutate(c, s.engagementSvc.Like)
}

func (s *EngagementHandler) Unlike(c *gin.Context) {
	s.mutate(c, s.engagementSvc.Unlike)
}

func (s *EngagementHandler) GetLikers(c *gin.Context) {
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	users, err := s.engagementSvc.GetLikers(c.Request.Context(), postID, pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTOs(users))
}

func (s *EngagementHandler) GetReposters(c *gin.Context) {
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	users, err := s.engagementSvc.GetReposters(c.Request.Context(), postID, pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTOs(users))
}

func (s *EngagementHandler) GetReplies(c *gin.Context) {
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	posts, err := s.engagementSvc.GetReplies(c.Request.Context(), postID, pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toPostDTOs(posts))
}

func (s *EngagementHandler) GetLikeCount(c *gin.Context) {
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := s.engagementSvc.GetLikeCount(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}
