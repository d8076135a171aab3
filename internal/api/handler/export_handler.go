package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/seoyeong-y/navi-ai/internal/service"
	"github.com/seoyeong-y/navi-ai/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 내보내기 모듈 HTTP 처리기
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler ExportHandler 생성
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCurriculum 커리큘럼을 Excel 로 내보내기
// GET /api/v1/export/curriculums/:id
func (h *ExportHandler) ExportCurriculum(c *gin.Context) {
	curriculumID, ok := parseIDParam(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCurriculum(c.Request.Context(), curriculumID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 다운로드 응답 헤더 설정
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoCurriculum):
		response.NotFound(c, 24001, "커리큘럼이 존재하지 않습니다")
	case errors.Is(err, service.ErrExportNoLectures):
		response.BadRequest(c, 24002, "커리큘럼에 담긴 강의가 없습니다")
	default:
		response.InternalError(c)
	}
}
