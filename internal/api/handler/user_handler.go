package handler

import (
	"Community/internal/api/dto"
	"Community/internal/pkg/consts"
	"Community/internal/pkg/response"
	"Community/internal/pkg/session"
	"Community/internal/pkg/util"
	"Community/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc      service.UserService
	sessionSvc   service.SessionService
	cookie       session.CookieOptions
	maxImageSize int64
}

func NewUserHandler(userSvc service.UserService, sessionSvc service.SessionService, cookie session.CookieOptions, maxImageSize int64) *UserHandler {
	return &UserHandler{
		userSvc:      userSvc,
		sessionSvc:   sessionSvc,
		cookie:       cookie,
		maxImageSize: maxImageSize,
	}
}

// Register 注册，multipart 表单，profileImage 可选
func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	profileImage, err := formFile(c, "profileImage", s.maxImageSize)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID, err := s.userSvc.Register(c.Request.Context(), &req, profileImage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.RegisterResultDTO{UserID: userID})
}

func (s *UserHandler) Login(c *gin.Context) {
	var req dto.LoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	token, result, err := s.sessionSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	session.SetCookie(c, s.cookie, token)
	response.Success(c, result)
}

// Logout 无论会话是否存在都清除 Cookie
func (s *UserHandler) Logout(c *gin.Context) {
	token, _ := session.ExtractToken(c.Request, s.cookie.Name)

	session.ClearCookie(c, s.cookie)
	if err := s.sessionSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint64(consts.CtxUserID)

	profile, err := s.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}
