package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seoyeong-y/navi-ai/internal/dto"
	"github.com/seoyeong-y/navi-ai/internal/service"
	"github.com/seoyeong-y/navi-ai/pkg/response"
)

// CurriculumHandler 커리큘럼 모듈 HTTP 처리기
type CurriculumHandler struct {
	curriculumSvc service.CurriculumService
}

// NewCurriculumHandler CurriculumHandler 생성
func NewCurriculumHandler(curriculumSvc service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculumSvc: curriculumSvc}
}

// ListNames 사용자 커리큘럼 이름 목록 조회
// GET /api/v1/curriculums?user_id=1
func (h *CurriculumHandler) ListNames(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, 10001, "user_id 가 올바르지 않습니다")
		return
	}

	names, err := h.curriculumSvc.ListNames(c.Request.Context(), uint(userID))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, names)
}

// GetByID 커리큘럼 상세 조회
// GET /api/v1/curriculums/:id
func (h *CurriculumHandler) GetByID(c *gin.Context) {
	curriculumID, ok := parseIDParam(c)
	if !ok {
		return
	}

	curriculum, err := h.curriculumSvc.GetByID(c.Request.Context(), curriculumID)
	if err != nil {
		if errors.Is(err, service.ErrCurriculumNotFound) {
			response.NotFound(c, 21001, "커리큘럼이 존재하지 않습니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, curriculum)
}

// ListLectures 커리큘럼에 담긴 강의 목록 조회
// GET /api/v1/curriculums/:id/lectures
func (h *CurriculumHandler) ListLectures(c *gin.Context) {
	curriculumID, ok := parseIDParam(c)
	if !ok {
		return
	}

	lectures, err := h.curriculumSvc.ListLectures(c.Request.Context(), curriculumID)
	if err != nil {
		if errors.Is(err, service.ErrCurriculumNotFound) {
			response.NotFound(c, 21001, "커리큘럼이 존재하지 않습니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, lectures)
}

// Create 커리큘럼 생성 (이름 생략 시 기본 이름 자동 부여)
// POST /api/v1/curriculums
func (h *CurriculumHandler) Create(c *gin.Context) {
	var req dto.CreateCurriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 본문이 올바르지 않습니다")
		return
	}

	curriculum, err := h.curriculumSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCurriculumNameTaken) {
			response.Error(c, http.StatusConflict, 21002, "같은 이름의 커리큘럼이 이미 존재합니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, curriculum)
}

// SaveLectures 커리큘럼에 강의 일괄 저장
// POST /api/v1/curriculums/:id/lectures
func (h *CurriculumHandler) SaveLectures(c *gin.Context) {
	curriculumID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.SaveLecturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 본문이 올바르지 않습니다")
		return
	}

	result, err := h.curriculumSvc.SaveLectures(c.Request.Context(), curriculumID, &req)
	if err != nil {
		if errors.Is(err, service.ErrCurriculumNotFound) {
			response.NotFound(c, 21001, "커리큘럼이 존재하지 않습니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 이름으로 커리큘럼 삭제 (담긴 강의 포함)
// DELETE /api/v1/curriculums?user_id=1&name=커리큘럼%201
func (h *CurriculumHandler) Delete(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, 10001, "user_id 가 올바르지 않습니다")
		return
	}
	name := c.Query("name")
	if name == "" {
		response.BadRequest(c, 10001, "name 이 비어 있습니다")
		return
	}

	deleted, err := h.curriculumSvc.Delete(c.Request.Context(), uint(userID), name)
	if err != nil {
		response.InternalError(c)
		return
	}
	if !deleted {
		response.NotFound(c, 21001, "커리큘럼이 존재하지 않습니다")
		return
	}
	response.OK(c, nil)
}

// Credits 이수 내역 학점 집계
// POST /api/v1/curriculums/credits
func (h *CurriculumHandler) Credits(c *gin.Context) {
	var record dto.CompletedRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequest(c, 10001, "요청 본문이 올바르지 않습니다")
		return
	}
	response.OK(c, h.curriculumSvc.Credits(record))
}
