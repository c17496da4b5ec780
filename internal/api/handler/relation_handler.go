package handler

import (
	"Skylark/internal/api/dto"
	"Skylark/internal/model"
	"Skylark/internal/pkg/response"
	"Skylark/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

type RelationHandler struct {
	relationSvc service.RelationService
}

func NewRelationHandler(relationSvc service.RelationService) *RelationHandler {
	return &RelationHandler{relationSvc: relationSvc}
}

type relationMutation func(ctx context.Context, actorID, targetID uint64) (*service.ActionResult, error)

func (s *RelationHandler) mutate(c *gin.Context, op relationMutation) {
	actorID := c.GetUint64("user_id")
	targetID, err := uint64Param(c, "target_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := op(c.Request.Context(), actorID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ActionDTO{OK: result.OK, Modified: result.Modified})
}

func (s *RelationHandler) Follow(c *gin.Context) {
	s.mutate(c, s.relationSvc.Follow)
}

func (s *RelationHandler) Unfollow(c *gin.Context) {
	s.mutate(c, s.relationSvc.Unfollow)
}

func (s *RelationHandler) IsFollowing(c *gin.Context) {
	actorID := c.GetUint64("user_id")
	targetID, err := uint64Param(c, "target_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	following, err := s.relationSvc.IsFollowing(c.Request.Context(), actorID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]bool{"following": following})
}

type relationPage func(ctx context.Context, userID uint64, page int) ([]*model.User, error)

func (s *RelationHandler) listPage(c *gin.Context, fetch relationPage) {
	userID, err := uint64Param(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	users, err := fetch(c.Request.Context(), userID, pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTOs(users))
}

func (s *RelationHandler) GetFollowers(c *gin.Context) {
	s.listPage(c, s.relationSvc.GetFollowers)
}

func (s *RelationHandler) GetFriends(c *gin.Context) {
	s.listPage(c, s.relationSvc.GetFriends)
}

func (s *RelationHandler) GetFollowerCount(c *gin.Context) {
	userID, err := uint64Param(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := s.relationSvc.GetFollowerCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}

func (s *RelationHandler) GetFriendCount(c *gin.Context) {
	userID, err := uint64Param(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := s.relationSvc.GetFriendCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}
