package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seoyeong-y/navi-ai/internal/dto"
	"github.com/seoyeong-y/navi-ai/internal/service"
	"github.com/seoyeong-y/navi-ai/pkg/response"
)

// ChatHandler 채팅 모듈 HTTP 처리기
type ChatHandler struct {
	chatSvc service.ChatService
}

// NewChatHandler ChatHandler 생성
func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// StartSession 채팅 세션 시작
// POST /api/v1/chat/sessions
func (h *ChatHandler) StartSession(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 본문이 올바르지 않습니다")
		return
	}

	resp, err := h.chatSvc.StartSession(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, resp)
}

// EndSession 채팅 세션 종료
// POST /api/v1/chat/sessions/:id/end
func (h *ChatHandler) EndSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.chatSvc.EndSession(c.Request.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, 20001, "채팅 세션이 존재하지 않습니다")
		case errors.Is(err, service.ErrSessionAlreadyEnded):
			response.BadRequest(c, 20002, "이미 종료된 세션입니다")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// GetSession 채팅 세션 조회
// GET /api/v1/chat/sessions/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	session, err := h.chatSvc.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, 20001, "채팅 세션이 존재하지 않습니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, session)
}

// ListLogs 세션 로그 목록 조회
// GET /api/v1/chat/sessions/:id/logs
func (h *ChatHandler) ListLogs(c *gin.Context) {
	sessionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	logs, err := h.chatSvc.ListLogs(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, 20001, "채팅 세션이 존재하지 않습니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, logs)
}

// HandleTurn 대화 턴 처리
// POST /api/v1/chat/sessions/:id/messages
func (h *ChatHandler) HandleTurn(c *gin.Context) {
	sessionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ChatTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 본문이 올바르지 않습니다")
		return
	}

	resp, err := h.chatSvc.HandleTurn(c.Request.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, 20001, "채팅 세션이 존재하지 않습니다")
		case errors.Is(err, service.ErrSessionAlreadyEnded):
			response.BadRequest(c, 20002, "이미 종료된 세션입니다")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, resp)
}

// parseIDParam :id 경로 매개변수 파싱. 실패 시 400 응답 후 false
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "id 가 올바르지 않습니다")
		return 0, false
	}
	return uint(id), true
}
