package service

import (
	"errors"
	"net/http"
)

var (
	ErrParamInvalid   = errors.New("参数错误")
	ErrInvalidSession = errors.New("会话无效或已过期")
	ErrBadPassword    = errors.New("密码错误")
	ErrUserNotFound   = errors.New("用户不存在")
	ErrUserExist      = errors.New("邮箱或昵称已被使用")
	ErrPostNotFound   = errors.New("帖子不存在")
	ErrForbidden      = errors.New("权限不足")
	ErrEmptyImage     = errors.New("图片为空")
	ErrBadContentType = errors.New("不支持的图片类型")
	ErrTooLarge       = errors.New("图片过大")
	ErrTooManyImages  = errors.New("图片数量超过限制")
	ErrBadFilter      = errors.New("不支持的筛选条件")
	ErrServerError    = errors.New("系统异常，请稍后重试")
)

// ErrorInfo HTTP 状态码与稳定的业务错误码
type ErrorInfo struct {
	Status int
	Code   string
}

var ErrorMap = map[error]ErrorInfo{
	ErrParamInvalid:   {http.StatusBadRequest, "BAD_REQUEST"},
	ErrInvalidSession: {http.StatusUnauthorized, "INVALID_SESSION"},
	ErrBadPassword:    {http.StatusUnauthorized, "BAD_PASSWORD"},
	ErrUserNotFound:   {http.StatusNotFound, "NOT_FOUND_USER"},
	ErrUserExist:      {http.StatusConflict, "DUPLICATE_USER"},
	ErrPostNotFound:   {http.StatusNotFound, "NOT_FOUND_POST"},
	ErrForbidden:      {http.StatusForbidden, "FORBIDDEN"},
	ErrEmptyImage:     {http.StatusBadRequest, "EMPTY_IMAGE"},
	ErrBadContentType: {http.StatusBadRequest, "IMAGE_BAD_CONTENT_TYPE"},
	ErrTooLarge:       {http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE"},
	ErrTooManyImages:  {http.StatusBadRequest, "IMAGE_TOO_MANY"},
	ErrBadFilter:      {http.StatusBadRequest, "BAD_REQUEST_FILTER"},
	ErrServerError:    {http.StatusInternalServerError, "SERVER_ERROR"},
}

// LookupError 支持被 %w 包装过的业务错误
func LookupError(err error) (error, ErrorInfo, bool) {
	if info, ok := ErrorMap[err]; ok {
		return err, info, true
	}
	for known, info := range ErrorMap {
		if errors.Is(err, known) {
			return known, info, true
		}
	}
	return nil, ErrorInfo{}, false
}
