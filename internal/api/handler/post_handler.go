package handler

import (
	"Community/internal/api/dto"
	"Community/internal/pkg/consts"
	"Community/internal/pkg/response"
	"Community/internal/pkg/util"
	"Community/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc      service.PostService
	feedSvc      service.FeedService
	maxImageSize int64
}

func NewPostHandler(postSvc service.PostService, feedSvc service.FeedService, maxImageSize int64) *PostHandler {
	return &PostHandler{
		postSvc:      postSvc,
		feedSvc:      feedSvc,
		maxImageSize: maxImageSize,
	}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	var query dto.FeedQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, err := s.feedSvc.ListFeed(c.Request.Context(), query.Cursor, query.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) ListPopularPosts(c *gin.Context) {
	var query dto.PopularQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, err := s.feedSvc.ListPopular(c.Request.Context(), query.Period, query.Cursor, query.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) SearchByNickname(c *gin.Context) {
	var query dto.NicknameQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, err := s.feedSvc.ListByNickname(c.Request.Context(), query.Nickname, query.Cursor, query.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) ListTop10(c *gin.Context) {
	page, err := s.feedSvc.ListTop10(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) ListGallery(c *gin.Context) {
	var query dto.FeedQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, err := s.feedSvc.ListWithImage(c.Request.Context(), query.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	detail, err := s.postSvc.GetPostDetail(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64(consts.CtxUserID)

	var req dto.PostFieldsDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	images, err := formFiles(c, "images", s.maxImageSize)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	postID, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.PostIDDTO{PostID: postID})
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64(consts.CtxUserID)
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	images, err := formFiles(c, "images", s.maxImageSize)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.UpdatePost(c.Request.Context(), userID, postID, &req, images); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64(consts.CtxUserID)
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *PostHandler) AdminDeletePost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := s.postSvc.AdminDeletePost(c.Request.Context(), postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func parsePostID(c *gin.Context) (uint64, bool) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return postID, true
}
