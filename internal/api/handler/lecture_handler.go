package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/seoyeong-y/navi-ai/internal/service"
	"github.com/seoyeong-y/navi-ai/pkg/response"
)

// LectureHandler 강의 카탈로그 HTTP 처리기
type LectureHandler struct {
	lectureSvc service.LectureService
}

// NewLectureHandler LectureHandler 생성
func NewLectureHandler(lectureSvc service.LectureService) *LectureHandler {
	return &LectureHandler{lectureSvc: lectureSvc}
}

// List 전체 강의 목록 조회
// GET /api/v1/lectures
func (h *LectureHandler) List(c *gin.Context) {
	lectures, err := h.lectureSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, lectures)
}

// ListNames 전체 강의명 목록 조회
// GET /api/v1/lectures/names
func (h *LectureHandler) ListNames(c *gin.Context) {
	names, err := h.lectureSvc.ListNames(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, names)
}

// GetByName 강의명으로 단건 조회
// GET /api/v1/lectures/:name
func (h *LectureHandler) GetByName(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "name 이 비어 있습니다")
		return
	}

	lecture, err := h.lectureSvc.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrLectureNotFound) {
			response.NotFound(c, 22001, "강의가 존재하지 않습니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, lecture)
}
