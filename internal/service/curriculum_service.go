package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/dto"
	"github.com/seoyeong-y/navi-ai/internal/model"
	"github.com/seoyeong-y/navi-ai/internal/repository"
)

// ── 커리큘럼 모듈 비즈니스 오류 ──

var (
	ErrCurriculumNotFound  = errors.New("커리큘럼이 존재하지 않습니다")
	ErrCurriculumNameTaken = errors.New("이미 사용 중인 커리큘럼 이름입니다")
)

// 이수구분 태그 집합 (국문/영문 두 표기)
var (
	majorTypes         = map[string]bool{"전선": true, "전필": true, "ME": true, "MR": true}
	generalTypes       = map[string]bool{"교선": true, "교필": true, "GE": true, "GR": true}
	majorRequiredTypes = map[string]bool{"전필": true, "MR": true}
)

// fieldPracticeMarker 강의명에 포함되면 현장실습 이수로 센다
const fieldPracticeMarker = "현장실습"

// defaultNamePrefix 기본 커리큘럼 이름 접두사
const defaultNamePrefix = "커리큘럼"

// CreditSummary 학점 집계 결과
type CreditSummary struct {
	TotalCredits         int
	MajorCredits         int
	GeneralCredits       int
	FieldPracticeCredits int
	MajorRequiredCredits int
	CompletedCodes       map[string]struct{}
}

// CalculateCredits 이수 내역에서 학점 합계를 계산하는 순수 함수
//
// 규칙:
//   - 전공 = 전선/전필/ME/MR, 교양 = 교선/교필/GE/GR, 그 외 태그는 총학점에만 반영
//   - 전필/MR 은 전공필수 이수 학점에 추가 집계
//   - 강의명에 "현장실습" 이 포함되면 학점과 무관하게 횟수 1 증가
func CalculateCredits(record dto.CompletedRecord) CreditSummary {
	summary := CreditSummary{
		CompletedCodes: make(map[string]struct{}),
	}

	for _, byType := range record {
		for lectureType, courses := range byType {
			for _, course := range courses {
				summary.TotalCredits += course.Credits
				summary.CompletedCodes[course.Code] = struct{}{}

				if majorTypes[lectureType] {
					summary.MajorCredits += course.Credits
				} else if generalTypes[lectureType] {
					summary.GeneralCredits += course.Credits
				}
				if majorRequiredTypes[lectureType] {
					summary.MajorRequiredCredits += course.Credits
				}
				if strings.Contains(course.Name, fieldPracticeMarker) {
					summary.FieldPracticeCredits++
				}
			}
		}
	}

	return summary
}

// NextCurriculumName 기존 이름 집합에서 빈 번호 중 가장 작은 기본 이름 반환
// 결정적이며 부수 효과가 없다. 저장 시점 유니크 제약이 최종 판정한다
func NextCurriculumName(existing []string) string {
	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s %d", defaultNamePrefix, i)
		if !existingSet[candidate] {
			return candidate
		}
	}
}

// CurriculumService 커리큘럼 비즈니스 인터페이스
type CurriculumService interface {
	ListNames(ctx context.Context, userID uint) ([]string, error)
	GetByID(ctx context.Context, curriculumID uint) (*dto.CurriculumResponse, error)
	ListLectures(ctx context.Context, curriculumID uint) ([]dto.CurriLectureResponse, error)
	Create(ctx context.Context, req *dto.CreateCurriculumRequest) (*dto.CurriculumResponse, error)
	SaveLectures(ctx context.Context, curriculumID uint, req *dto.SaveLecturesRequest) (*dto.SaveLecturesResponse, error)
	Delete(ctx context.Context, userID uint, name string) (bool, error)
	Credits(record dto.CompletedRecord) *dto.CreditSummaryResponse
}

type curriculumService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCurriculumService CurriculumService 인스턴스 생성
func NewCurriculumService(repo *repository.Repository, logger *zap.Logger) CurriculumService {
	return &curriculumService{repo: repo, logger: logger}
}

func (s *curriculumService) ListNames(ctx context.Context, userID uint) ([]string, error) {
	return s.repo.Curriculum.ListNamesByUser(ctx, userID)
}

func (s *curriculumService) GetByID(ctx context.Context, curriculumID uint) (*dto.CurriculumResponse, error) {
	curriculum, err := s.repo.Curriculum.GetByID(ctx, curriculumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCurriculumNotFound
		}
		s.logger.Error("커리큘럼 조회 실패", zap.Uint("id", curriculumID), zap.Error(err))
		return nil, err
	}
	return toCurriculumResponse(curriculum), nil
}

func (s *curriculumService) ListLectures(ctx context.Context, curriculumID uint) ([]dto.CurriLectureResponse, error) {
	if _, err := s.repo.Curriculum.GetByID(ctx, curriculumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCurriculumNotFound
		}
		return nil, err
	}

	lectures, err := s.repo.Curriculum.ListLectures(ctx, curriculumID)
	if err != nil {
		s.logger.Error("커리큘럼 강의 조회 실패", zap.Uint("id", curriculumID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CurriLectureResponse, 0, len(lectures))
	for _, lec := range lectures {
		result = append(result, dto.CurriLectureResponse{
			ID:       lec.ID,
			Name:     lec.Name,
			Credits:  lec.Credits,
			Semester: lec.Semester,
			Type:     lec.Type,
			Grade:    lec.Grade,
		})
	}
	return result, nil
}

// createNameRetries 기본 이름 충돌 시 재생성 한도
const createNameRetries = 5

func (s *curriculumService) Create(ctx context.Context, req *dto.CreateCurriculumRequest) (*dto.CurriculumResponse, error) {
	// 이름 미지정 시 기본 이름 생성. 유니크 제약 충돌이면 재생성 후 재시도한다
	generated := req.Name == ""

	for attempt := 0; ; attempt++ {
		name := req.Name
		if generated {
			existing, err := s.repo.Curriculum.ListNamesByUser(ctx, req.UserID)
			if err != nil {
				s.logger.Error("커리큘럼 이름 목록 조회 실패", zap.Uint("user_id", req.UserID), zap.Error(err))
				return nil, err
			}
			name = NextCurriculumName(existing)
		}

		curriculum := &model.Curriculum{
			UserID:       req.UserID,
			Name:         name,
			CreatedAt:    time.Now(),
			TotalCredits: req.TotalCredits,
			Description:  req.Description,
		}

		err := s.repo.Curriculum.Create(ctx, curriculum)
		if err == nil {
			return toCurriculumResponse(curriculum), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Error("커리큘럼 저장 실패", zap.Uint("user_id", req.UserID), zap.Error(err))
			return nil, err
		}
		if !generated {
			return nil, ErrCurriculumNameTaken
		}
		if attempt+1 >= createNameRetries {
			s.logger.Error("커리큘럼 기본 이름 재시도 한도 초과", zap.Uint("user_id", req.UserID))
			return nil, ErrCurriculumNameTaken
		}
	}
}

func (s *curriculumService) SaveLectures(ctx context.Context, curriculumID uint, req *dto.SaveLecturesRequest) (*dto.SaveLecturesResponse, error) {
	if _, err := s.repo.Curriculum.GetByID(ctx, curriculumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCurriculumNotFound
		}
		return nil, err
	}

	inputs := make([]repository.CurriLectureInput, 0, len(req.Lectures))
	for _, lec := range req.Lectures {
		inputs = append(inputs, repository.CurriLectureInput{
			Name:     lec.Name,
			Credits:  lec.Credits,
			Type:     lec.Type,
			Grade:    lec.Grade,
			Semester: lec.Semester,
			Code:     lec.Code,
		})
	}

	result, err := s.repo.Curriculum.SaveLectures(ctx, curriculumID, inputs)
	if err != nil {
		s.logger.Error("커리큘럼 강의 저장 실패", zap.Uint("id", curriculumID), zap.Error(err))
		return nil, err
	}

	if len(result.SkippedCodes) > 0 {
		s.logger.Warn("카탈로그에 없는 강의 코드 제외",
			zap.Uint("curriculum_id", curriculumID),
			zap.Strings("skipped_codes", result.SkippedCodes),
		)
	}

	return &dto.SaveLecturesResponse{
		Inserted:     result.Inserted,
		SkippedCodes: result.SkippedCodes,
	}, nil
}

func (s *curriculumService) Delete(ctx context.Context, userID uint, name string) (bool, error) {
	deleted, err := s.repo.Curriculum.DeleteByName(ctx, userID, name)
	if err != nil {
		s.logger.Error("커리큘럼 삭제 실패",
			zap.Uint("user_id", userID),
			zap.String("name", name),
			zap.Error(err),
		)
		return false, err
	}
	return deleted, nil
}

func (s *curriculumService) Credits(record dto.CompletedRecord) *dto.CreditSummaryResponse {
	summary := CalculateCredits(record)
	return toCreditSummaryResponse(summary)
}

func toCurriculumResponse(c *model.Curriculum) *dto.CurriculumResponse {
	return &dto.CurriculumResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		CreatedAt:    c.CreatedAt,
		TotalCredits: c.TotalCredits,
		Description:  c.Description,
	}
}

func toCreditSummaryResponse(summary CreditSummary) *dto.CreditSummaryResponse {
	codes := make([]string, 0, len(summary.CompletedCodes))
	for code := range summary.CompletedCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return &dto.CreditSummaryResponse{
		TotalCredits:         summary.TotalCredits,
		MajorCredits:         summary.MajorCredits,
		GeneralCredits:       summary.GeneralCredits,
		FieldPracticeCredits: summary.FieldPracticeCredits,
		MajorRequiredCredits: summary.MajorRequiredCredits,
		CompletedCodes:       codes,
	}
}
