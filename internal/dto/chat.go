package dto

import "time"

// StartSessionRequest 채팅 세션 시작 요청
type StartSessionRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	SessionType string `json:"session_type" binding:"required"`
}

// StartSessionResponse 채팅 세션 시작 응답
type StartSessionResponse struct {
	SessionID uint `json:"session_id"`
}

// CompletedCourse 이수 과목 (코드, 강의명, 학점, 부가정보)
type CompletedCourse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
	Extra   string `json:"extra"`
}

// CompletedRecord 학기 → 이수구분 태그 → 이수 과목 목록의 중첩 레코드
type CompletedRecord map[string]map[string][]CompletedCourse

// ChatTurnRequest 대화 턴 요청
// 추천 목록 수정 단계에서는 클라이언트가 현재 추천/이전 삭제 목록을 함께 보낸다
type ChatTurnRequest struct {
	UserID             uint            `json:"user_id" binding:"required"`
	Message            string          `json:"message" binding:"required"`
	Grade              int             `json:"grade"`
	Completed          CompletedRecord `json:"completed,omitempty"`
	CurrentRecommended []string        `json:"current_recommended,omitempty"`
	PreviouslyRemoved  []string        `json:"previously_removed,omitempty"`
}

// ChatTurnResponse 대화 턴 응답
type ChatTurnResponse struct {
	Reply          string                 `json:"reply"`
	Stage          string                 `json:"stage"` // chat | recommend | modify | done
	Interests      []string               `json:"interests,omitempty"`
	Conditions     []string               `json:"conditions,omitempty"`
	Recommended    []string               `json:"recommended,omitempty"`
	Added          []string               `json:"added,omitempty"`
	Removed        []string               `json:"removed,omitempty"`
	CreditSummary  *CreditSummaryResponse `json:"credit_summary,omitempty"`
	CurriculumName string                 `json:"curriculum_name,omitempty"`
	SkippedCodes   []string               `json:"skipped_codes,omitempty"`
}

// ChatLogResponse 채팅 로그 응답
type ChatLogResponse struct {
	ID        uint      `json:"id"`
	ChatType  string    `json:"chat_type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionResponse 채팅 세션 응답
type SessionResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	SessionType string     `json:"session_type"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}
