package model

import "time"

// 채팅 로그 발화 주체
const (
	ChatTypeUser = "user"
	ChatTypeBot  = "bot"
)

// ChatSession 채팅 세션 테이블 — chat_sessions
type ChatSession struct {
	ID          uint       `gorm:"primaryKey"                    json:"id"`
	UserID      uint       `gorm:"not null;index"                json:"user_id"`
	SessionType string     `gorm:"type:varchar(50);not null"     json:"session_type"`
	StartedAt   time.Time  `gorm:"not null"                      json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

// TableName 테이블명 지정
func (ChatSession) TableName() string { return "chat_sessions" }

// ChatLog 채팅 로그 테이블 — chat_logs (append-only)
type ChatLog struct {
	ID        uint      `gorm:"primaryKey"                json:"id"`
	SessionID uint      `gorm:"not null;index"            json:"session_id"`
	ChatType  string    `gorm:"type:varchar(10);not null" json:"chat_type"` // user | bot
	Message   string    `gorm:"type:text;not null"        json:"message"`
	Timestamp time.Time `gorm:"not null"                  json:"timestamp"`
}

// TableName 테이블명 지정
func (ChatLog) TableName() string { return "chat_logs" }
