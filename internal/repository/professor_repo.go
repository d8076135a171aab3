package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/model"
)

// ProfessorRepository 교수 데이터 접근 인터페이스
type ProfessorRepository interface {
	GetByID(ctx context.Context, professorID uint) (*model.Professor, error)
	GetByName(ctx context.Context, name string) (*model.Professor, error)
	ListLecturesByProfessorIDs(ctx context.Context, professorIDs []uint) ([]model.Lecture, error)
}

type professorRepo struct {
	db *gorm.DB
}

// NewProfessorRepo ProfessorRepository 인스턴스 생성
func NewProfessorRepo(db *gorm.DB) ProfessorRepository {
	return &professorRepo{db: db}
}

func (r *professorRepo) GetByID(ctx context.Context, professorID uint) (*model.Professor, error) {
	var professor model.Professor
	err := r.db.WithContext(ctx).First(&professor, professorID).Error
	if err != nil {
		return nil, err
	}
	return &professor, nil
}

func (r *professorRepo) GetByName(ctx context.Context, name string) (*model.Professor, error) {
	var professor model.Professor
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&professor).Error
	if err != nil {
		return nil, err
	}
	return &professor, nil
}

func (r *professorRepo) ListLecturesByProfessorIDs(ctx context.Context, professorIDs []uint) ([]model.Lecture, error) {
	if len(professorIDs) == 0 {
		return nil, nil
	}
	var lectures []model.Lecture
	err := r.db.WithContext(ctx).
		Where("professor_id IN ?", professorIDs).
		Find(&lectures).Error
	return lectures, err
}
