package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/dto"
	"github.com/seoyeong-y/navi-ai/internal/repository"
)

var ErrProfessorNotFound = errors.New("교수가 존재하지 않습니다")

// ProfessorService 교수 및 개설 강의 조회
type ProfessorService interface {
	GetByName(ctx context.Context, name string) (*dto.ProfessorResponse, error)
	ListLectures(ctx context.Context, name string) ([]dto.ProfessorLectureResponse, error)
}

type professorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProfessorService ProfessorService 인스턴스 생성
func NewProfessorService(repo *repository.Repository, logger *zap.Logger) ProfessorService {
	return &professorService{repo: repo, logger: logger}
}

func (s *professorService) GetByName(ctx context.Context, name string) (*dto.ProfessorResponse, error) {
	professor, err := s.repo.Professor.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}
	return &dto.ProfessorResponse{
		ID:         professor.ID,
		Name:       professor.Name,
		Department: professor.Department,
	}, nil
}

// ListLectures 교수명으로 과거 개설 강의 목록 조회
func (s *professorService) ListLectures(ctx context.Context, name string) ([]dto.ProfessorLectureResponse, error) {
	professor, err := s.repo.Professor.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}

	lectures, err := s.repo.Professor.ListLecturesByProfessorIDs(ctx, []uint{professor.ID})
	if err != nil {
		s.logger.Error("교수 강의 목록 조회 실패", zap.String("professor", name), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProfessorLectureResponse, 0, len(lectures))
	for _, lec := range lectures {
		result = append(result, dto.ProfessorLectureResponse{
			Name:     lec.Name,
			Code:     lec.Code,
			Credits:  lec.Credits,
			Type:     lec.Type,
			Grade:    lec.Grade,
			Semester: lec.Semester,
			Year:     lec.Year,
		})
	}
	return result, nil
}
