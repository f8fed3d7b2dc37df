package response

import (
	"Community/internal/api/dto"
	"Community/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	CodeOk            = "OK"
	CodeBadRequest    = "BAD_REQUEST"
	CodeUnauthorized  = "INVALID_SESSION"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "SERVER_ERROR"
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Success: true,
		Code:    CodeOk,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Code:    CodeOk,
		Message: "created",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, code string, message string) {
	c.JSON(status, dto.Response{
		Success: false,
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, CodeBadRequest, "参数错误")
		return
	}

	if isJSONError(err) {
		Fail(c, http.StatusBadRequest, CodeBadRequest, "Json错误")
		return
	}

	known, info, ok := service.LookupError(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, http.StatusInternalServerError, CodeInternalError, service.ErrServerError.Error())
		return
	}
	if info.Status >= http.StatusInternalServerError {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
	}
	Fail(c, info.Status, info.Code, known.Error())
}

// isJSONError gin 默认使用标准库解码请求体，两种实现的错误类型都需要识别
func isJSONError(err error) bool {
	var stdTypeErr *stdjson.UnmarshalTypeError
	var stdSyntaxErr *stdjson.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	return errors.As(err, &stdTypeErr) || errors.As(err, &stdSyntaxErr) ||
		errors.As(err, &typeErr) || errors.As(err, &syntaxErr) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
