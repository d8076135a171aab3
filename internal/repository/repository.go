package repository

import "gorm.io/gorm"

// Repository 모든 Repository 의 집약 진입점
type Repository struct {
	Chat       ChatRepository
	Curriculum CurriculumRepository
	Lecture    LectureRepository
	Professor  ProfessorRepository
}

// NewRepository Repository 집약 생성
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Chat:       NewChatRepo(db),
		Curriculum: NewCurriculumRepo(db),
		Lecture:    NewLectureRepo(db),
		Professor:  NewProfessorRepo(db),
	}
}
