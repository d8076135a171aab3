package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/seoyeong-y/navi-ai/internal/service"
	"github.com/seoyeong-y/navi-ai/pkg/response"
)

// ProfessorHandler 교수 모듈 HTTP 처리기
type ProfessorHandler struct {
	professorSvc service.ProfessorService
}

// NewProfessorHandler ProfessorHandler 생성
func NewProfessorHandler(professorSvc service.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{professorSvc: professorSvc}
}

// GetByName 교수명으로 단건 조회
// GET /api/v1/professors/:name
func (h *ProfessorHandler) GetByName(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "name 이 비어 있습니다")
		return
	}

	professor, err := h.professorSvc.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrProfessorNotFound) {
			response.NotFound(c, 23001, "교수가 존재하지 않습니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, professor)
}

// ListLectures 교수 개설 강의 목록 조회
// GET /api/v1/professors/:name/lectures
func (h *ProfessorHandler) ListLectures(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "name 이 비어 있습니다")
		return
	}

	lectures, err := h.professorSvc.ListLectures(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrProfessorNotFound) {
			response.NotFound(c, 23001, "교수가 존재하지 않습니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, lectures)
}
