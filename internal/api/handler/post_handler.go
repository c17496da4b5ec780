package handler

import (
	"Skylark/internal/api/dto"
	"Skylark/internal/pkg/response"
	"Skylark/internal/pkg/util"
	"Skylark/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toPostDTO(post))
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.GetPostById(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toPostDTO(post))
}

func (s *PostHandler) GetPostByPublicID(c *gin.Context) {
	publicID, err := uint64Param(c, "public_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.GetPostByPublicID(c.Request.Context(), publicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toPostDTO(post))
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.postSvc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) Repost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, repost, err := s.postSvc.RepostPost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := map[string]interface{}{
		"ok":       result.OK,
		"modified": result.Modified,
	}
	if repost != nil {
		data["post"] = toPostDTO(repost)
	}
	response.Success(c, data)
}

func (s *PostHandler) Unrepost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.postSvc.UnrepostPost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ActionDTO{OK: result.OK, Modified: result.Modified})
}

func (s *PostHandler) Reply(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := uint64Param(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreatePostDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	reply, err := s.postSvc.ReplyToPost(c.Request.Context(), userID, postID, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toPostDTO(reply))
}

func (s *PostHandler) GetUserPosts(c *gin.Context) {
	userID, err := uint64Param(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	posts, err := s.postSvc.GetPostsByAuthor(c.Request.Context(), userID, pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toPostDTOs(posts))
}

func (s *PostHandler) GetStatusCount(c *gin.Context) {
	userID, err := uint64Param(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := s.postSvc.GetStatusCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}
