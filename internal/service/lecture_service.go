package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/dto"
	"github.com/seoyeong-y/navi-ai/internal/model"
	"github.com/seoyeong-y/navi-ai/internal/repository"
	"github.com/seoyeong-y/navi-ai/pkg/redis"
)

var ErrLectureNotFound = errors.New("강의가 존재하지 않습니다")

// 캐시 키는 pkg/redis 가 "lecture:cache:" 접두사를 붙인다
const (
	lectureListCacheKey = "recent_lectures"
	lectureListCacheTTL = 10 * time.Minute
)

// LectureService 강의 카탈로그 조회
type LectureService interface {
	List(ctx context.Context) ([]dto.LectureResponse, error)
	ListNames(ctx context.Context) ([]string, error)
	GetByName(ctx context.Context, name string) (*dto.LectureResponse, error)
}

type lectureService struct {
	repo   *repository.Repository
	rdb    *redis.Client // nil 허용 (캐시 없이 동작)
	logger *zap.Logger
}

// NewLectureService LectureService 인스턴스 생성
func NewLectureService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) LectureService {
	return &lectureService{repo: repo, rdb: rdb, logger: logger}
}

// List 전체 강의 목록 조회. 카탈로그는 변동이 적어 Redis 에 캐싱한다.
func (s *lectureService) List(ctx context.Context) ([]dto.LectureResponse, error) {
	if s.rdb != nil {
		if cached, ok, err := s.rdb.GetCache(ctx, lectureListCacheKey); err == nil && ok {
			var result []dto.LectureResponse
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
			// 캐시가 손상되면 무시하고 DB 조회로 내려간다
		}
	}

	lectures, err := s.repo.Lecture.List(ctx)
	if err != nil {
		s.logger.Error("강의 목록 조회 실패", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LectureResponse, 0, len(lectures))
	for _, lec := range lectures {
		result = append(result, toLectureResponse(&lec))
	}

	if s.rdb != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.rdb.SetCache(ctx, lectureListCacheKey, string(data), lectureListCacheTTL); err != nil {
				s.logger.Warn("강의 목록 캐시 저장 실패", zap.Error(err))
			}
		}
	}
	return result, nil
}

func (s *lectureService) ListNames(ctx context.Context) ([]string, error) {
	return s.repo.Lecture.ListNames(ctx)
}

func (s *lectureService) GetByName(ctx context.Context, name string) (*dto.LectureResponse, error) {
	lecture, err := s.repo.Lecture.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLectureNotFound
		}
		return nil, err
	}
	resp := toLectureResponse(lecture)
	return &resp, nil
}

func toLectureResponse(lec *model.RecentLecture) dto.LectureResponse {
	return dto.LectureResponse{
		Name:        lec.Name,
		Credits:     lec.Credits,
		Type:        lec.Type,
		Grade:       lec.Grade,
		Semester:    lec.Semester,
		Code:        lec.Code,
		Major:       lec.Major,
		TeamProject: lec.TeamProject,
	}
}
