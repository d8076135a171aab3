package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/model"
)

// CurriLectureInput 일괄 저장용 강의 튜플
// Code 는 lecture_code.code 로 해석되어야 삽입된다
type CurriLectureInput struct {
	Name     string
	Credits  int
	Type     string
	Grade    string
	Semester string
	Code     string
}

// SaveLecturesResult 일괄 저장 결과
// 코드 해석에 실패해 제외된 행을 호출자에게 그대로 보고한다
type SaveLecturesResult struct {
	Inserted     int      `json:"inserted"`
	SkippedCodes []string `json:"skipped_codes"`
}

// CurriculumRepository 커리큘럼 데이터 접근 인터페이스
type CurriculumRepository interface {
	ListNamesByUser(ctx context.Context, userID uint) ([]string, error)
	GetIDByName(ctx context.Context, userID uint, name string) (uint, error)
	GetByID(ctx context.Context, curriculumID uint) (*model.Curriculum, error)
	ListLectures(ctx context.Context, curriculumID uint) ([]model.CurriLecture, error)
	Create(ctx context.Context, curriculum *model.Curriculum) error
	SaveLectures(ctx context.Context, curriculumID uint, lectures []CurriLectureInput) (*SaveLecturesResult, error)
	// DeleteByName 자식 강의 행을 먼저 지우고 커리큘럼을 지운다 (단일 트랜잭션)
	// 일치하는 커리큘럼이 없으면 (false, nil)
	DeleteByName(ctx context.Context, userID uint, name string) (bool, error)
}

type curriculumRepo struct {
	db *gorm.DB
}

// NewCurriculumRepo CurriculumRepository 인스턴스 생성
func NewCurriculumRepo(db *gorm.DB) CurriculumRepository {
	return &curriculumRepo{db: db}
}

func (r *curriculumRepo) ListNamesByUser(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.Curriculum{}).
		Where("user_id = ?", userID).
		Pluck("name", &names).Error
	return names, err
}

func (r *curriculumRepo) GetIDByName(ctx context.Context, userID uint, name string) (uint, error) {
	var curriculum model.Curriculum
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ? AND name = ?", userID, name).
		First(&curriculum).Error
	if err != nil {
		return 0, err
	}
	return curriculum.ID, nil
}

func (r *curriculumRepo) GetByID(ctx context.Context, curriculumID uint) (*model.Curriculum, error) {
	var curriculum model.Curriculum
	err := r.db.WithContext(ctx).First(&curriculum, curriculumID).Error
	if err != nil {
		return nil, err
	}
	return &curriculum, nil
}

func (r *curriculumRepo) ListLectures(ctx context.Context, curriculumID uint) ([]model.CurriLecture, error) {
	var lectures []model.CurriLecture
	err := r.db.WithContext(ctx).
		Where("curri_id = ?", curriculumID).
		Order("id ASC").
		Find(&lectures).Error
	return lectures, err
}

func (r *curriculumRepo) Create(ctx context.Context, curriculum *model.Curriculum) error {
	return r.db.WithContext(ctx).Create(curriculum).Error
}

func (r *curriculumRepo) SaveLectures(ctx context.Context, curriculumID uint, lectures []CurriLectureInput) (*SaveLecturesResult, error) {
	// 강의 코드 → lecture_code.id 일괄 매핑 조회
	codes := make([]string, 0, len(lectures))
	for _, lec := range lectures {
		if lec.Code != "" {
			codes = append(codes, lec.Code)
		}
	}

	codeIDMap := make(map[string]uint, len(codes))
	if len(codes) > 0 {
		var rows []model.LectureCode
		if err := r.db.WithContext(ctx).
			Select("id", "code").
			Where("code IN ?", codes).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			codeIDMap[row.Code] = row.ID
		}
	}

	result := &SaveLecturesResult{}
	curriLectures := make([]model.CurriLecture, 0, len(lectures))
	for _, lec := range lectures {
		lectID, ok := codeIDMap[lec.Code]
		if !ok {
			// 카탈로그에 없는 코드는 삽입하지 않고 보고만 한다
			result.SkippedCodes = append(result.SkippedCodes, lec.Code)
			continue
		}
		curriLectures = append(curriLectures, model.CurriLecture{
			CurriID:  curriculumID,
			LectID:   lectID,
			Name:     lec.Name,
			Credits:  lec.Credits,
			Semester: lec.Semester,
			Type:     lec.Type,
			Grade:    lec.Grade,
		})
	}

	if len(curriLectures) > 0 {
		if err := r.db.WithContext(ctx).Create(&curriLectures).Error; err != nil {
			return nil, err
		}
	}
	result.Inserted = len(curriLectures)

	return result, nil
}

func (r *curriculumRepo) DeleteByName(ctx context.Context, userID uint, name string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var curriculum model.Curriculum
		err := tx.Where("user_id = ? AND name = ?", userID, name).First(&curriculum).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		// 자식 강의 행 먼저 삭제
		if err := tx.Where("curri_id = ?", curriculum.ID).
			Delete(&model.CurriLecture{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&curriculum).Error; err != nil {
			return err
		}

		deleted = true
		return nil
	})
	return deleted, err
}
