package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/model"
)

// ChatRepository 채팅 세션/로그 데이터 접근 인터페이스
type ChatRepository interface {
	CreateSession(ctx context.Context, userID uint, sessionType string) (uint, error)
	// EndSession ended_at 설정. 이미 종료된 세션이면 false 를 반환한다
	EndSession(ctx context.Context, sessionID uint) (bool, error)
	GetSessionByID(ctx context.Context, sessionID uint) (*model.ChatSession, error)
	SaveLog(ctx context.Context, sessionID uint, chatType, message string) error
	ListLogsBySession(ctx context.Context, sessionID uint) ([]model.ChatLog, error)
}

type chatRepo struct {
	db *gorm.DB
}

// NewChatRepo ChatRepository 인스턴스 생성
func NewChatRepo(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) CreateSession(ctx context.Context, userID uint, sessionType string) (uint, error) {
	session := &model.ChatSession{
		UserID:      userID,
		SessionType: sessionType,
		StartedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return 0, err
	}
	return session.ID, nil
}

func (r *chatRepo) EndSession(ctx context.Context, sessionID uint) (bool, error) {
	// 종료된 세션은 불변: ended_at 이 NULL 인 행만 갱신한다
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("id = ? AND ended_at IS NULL", sessionID).
		Update("ended_at", now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *chatRepo) GetSessionByID(ctx context.Context, sessionID uint) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.db.WithContext(ctx).First(&session, sessionID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatRepo) SaveLog(ctx context.Context, sessionID uint, chatType, message string) error {
	log := &model.ChatLog{
		SessionID: sessionID,
		ChatType:  chatType,
		Message:   message,
		Timestamp: time.Now(),
	}
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *chatRepo) ListLogsBySession(ctx context.Context, sessionID uint) ([]model.ChatLog, error) {
	var logs []model.ChatLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC, id ASC").
		Find(&logs).Error
	return logs, err
}
