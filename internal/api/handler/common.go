package handler

import (
	"Skylark/internal/api/dto"
	"Skylark/internal/model"
	"Skylark/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// pageParam 读取 ?p= 页码参数，缺省或非法时按第一页处理
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("p", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func uint64Param(c *gin.Context, name string) (uint64, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, service.ErrParamInvalid
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}

func toUserDTO(user *model.User) *dto.UserDTO {
	out := &dto.UserDTO{}
	_ = copier.Copy(out, user)
	return out
}

func toUserDTOs(users []*model.User) []*dto.UserDTO {
	list := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		list = append(list, toUserDTO(u))
	}
	return list
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	out := &dto.PostDTO{}
	_ = copier.Copy(out, post)
	return out
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		list = append(list, toPostDTO(p))
	}
	return list
}
