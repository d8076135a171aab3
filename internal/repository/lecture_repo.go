package repository

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/model"
)

// LectureInfo 추천 필터링용 (강의명, 개요, 목표) 트리플
type LectureInfo struct {
	Name        string
	Description string
	Objectives  string
}

// LectureRepository 강의 카탈로그 데이터 접근 인터페이스
type LectureRepository interface {
	GetByName(ctx context.Context, name string) (*model.RecentLecture, error)
	List(ctx context.Context) ([]model.RecentLecture, error)
	ListNames(ctx context.Context) ([]string, error)
	CodeIDMap(ctx context.Context) (map[string]uint, error)
	// ExpandWithReplacements 대체 교과목 1 홉 확장 (양방향, 추이적 폐포 아님)
	ExpandWithReplacements(ctx context.Context, codes []string) (map[string]struct{}, error)
	// UncompletedRequired 미이수 필수 과목 조회 (MR/GR, 학년 이하)
	UncompletedRequired(ctx context.Context, completedCodes map[string]struct{}, studentGrade int) (mr []string, gr []string, err error)
	ListInfos(ctx context.Context, names []string) ([]LectureInfo, error)
}

type lectureRepo struct {
	db *gorm.DB
}

// NewLectureRepo LectureRepository 인스턴스 생성
func NewLectureRepo(db *gorm.DB) LectureRepository {
	return &lectureRepo{db: db}
}

func (r *lectureRepo) GetByName(ctx context.Context, name string) (*model.RecentLecture, error) {
	var lecture model.RecentLecture
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&lecture).Error
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *lectureRepo) List(ctx context.Context) ([]model.RecentLecture, error) {
	var lectures []model.RecentLecture
	err := r.db.WithContext(ctx).Find(&lectures).Error
	return lectures, err
}

func (r *lectureRepo) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.RecentLecture{}).
		Pluck("name", &names).Error
	return names, err
}

func (r *lectureRepo) CodeIDMap(ctx context.Context) (map[string]uint, error) {
	var rows []model.LectureCode
	err := r.db.WithContext(ctx).Select("id", "code").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[string]uint, len(rows))
	for _, row := range rows {
		m[row.Code] = row.ID
	}
	return m, nil
}

func (r *lectureRepo) ExpandWithReplacements(ctx context.Context, codes []string) (map[string]struct{}, error) {
	all := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		all[code] = struct{}{}
	}
	if len(codes) == 0 {
		return all, nil
	}

	// original → replacement
	var forwards []string
	if err := r.db.WithContext(ctx).
		Model(&model.LectureReplacement{}).
		Where("original_code IN ?", codes).
		Pluck("replacement_code", &forwards).Error; err != nil {
		return nil, err
	}
	for _, code := range forwards {
		all[code] = struct{}{}
	}

	// replacement → original
	var backwards []string
	if err := r.db.WithContext(ctx).
		Model(&model.LectureReplacement{}).
		Where("replacement_code IN ?", codes).
		Pluck("original_code", &backwards).Error; err != nil {
		return nil, err
	}
	for _, code := range backwards {
		all[code] = struct{}{}
	}

	return all, nil
}

func (r *lectureRepo) UncompletedRequired(ctx context.Context, completedCodes map[string]struct{}, studentGrade int) ([]string, []string, error) {
	codes := make([]string, 0, len(completedCodes))
	for code := range completedCodes {
		codes = append(codes, code)
	}

	query := r.db.WithContext(ctx).
		Model(&model.RecentLecture{}).
		Where("type IN ?", []string{"MR", "GR"}).
		Where("grade <= ?", strconv.Itoa(studentGrade))
	if len(codes) > 0 {
		query = query.Where("code NOT IN ?", codes)
	}

	var lectures []model.RecentLecture
	if err := query.Find(&lectures).Error; err != nil {
		return nil, nil, err
	}

	var mr, gr []string
	for _, lec := range lectures {
		if lec.Type == "MR" {
			mr = append(mr, lec.Name)
		} else {
			gr = append(gr, lec.Name)
		}
	}
	return mr, gr, nil
}

func (r *lectureRepo) ListInfos(ctx context.Context, names []string) ([]LectureInfo, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var rows []model.LectureCode
	err := r.db.WithContext(ctx).
		Select("name", "lecture_description", "lecture_objectives").
		Where("name IN ?", names).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	infos := make([]LectureInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, LectureInfo{
			Name:        row.Name,
			Description: row.LectureDescription,
			Objectives:  row.LectureObjectives,
		})
	}
	return infos, nil
}
