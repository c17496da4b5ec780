package handler

import (
	"Skylark/internal/api/dto"
	"Skylark/internal/model"
	"Skylark/internal/pkg/response"
	"Skylark/internal/pkg/util"
	"Skylark/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBindJSON(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.Register(c.Request.Context(), registerDTO.ScreenName, registerDTO.Name, registerDTO.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user))
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	if err := c.ShouldBindJSON(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	token, user, err := s.userSvc.Login(c.Request.Context(), loginDTO.ScreenName, loginDTO.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.LoginResultDTO{
		Token: token,
		User:  *toUserDTO(user),
	})
}

func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetMe(c *gin.Context) {
	userID := c.GetUint64("user_id")
	user, err := s.userSvc.GetUserById(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user))
}

func (s *UserHandler) GetUserByScreenName(c *gin.Context) {
	screenName := c.Param("screen_name")
	if screenName == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	user, err := s.userSvc.GetUserByScreenName(c.Request.Context(), screenName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user))
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var profileDTO dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&profileDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&profileDTO); err != nil {
		response.Error(c, err)
		return
	}

	err := s.userSvc.UpdateProfile(c.Request.Context(), &model.User{
		ID:       userID,
		Name:     profileDTO.Name,
		Location: profileDTO.Location,
		Bio:      profileDTO.Bio,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
