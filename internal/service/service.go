package service

import (
	"go.uber.org/zap"

	"github.com/seoyeong-y/navi-ai/config"
	"github.com/seoyeong-y/navi-ai/internal/repository"
	"github.com/seoyeong-y/navi-ai/pkg/llm"
	"github.com/seoyeong-y/navi-ai/pkg/redis"
)

// Service 서비스 계층 집합체. Handler 에 주입된다
type Service struct {
	Chat       ChatService
	Curriculum CurriculumService
	Intent     IntentService
	Lecture    LectureService
	Professor  ProfessorService
	Export     ExportService
}

// NewService Service 집합체 생성
//
// rdb 는 nil 을 허용한다 (Redis 미기동 시 캐시/속도 제한 없이 동작)
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	completer llm.Completer,
	logger *zap.Logger,
) *Service {
	curriculum := NewCurriculumService(repo, logger)
	intent := NewIntentService(&cfg.OpenAI, completer, logger)

	return &Service{
		Chat:       NewChatService(repo, intent, curriculum, logger),
		Curriculum: curriculum,
		Intent:     intent,
		Lecture:    NewLectureService(repo, rdb, logger),
		Professor:  NewProfessorService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
