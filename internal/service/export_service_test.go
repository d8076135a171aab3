package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/seoyeong-y/navi-ai/internal/model"
	"github.com/seoyeong-y/navi-ai/internal/repository"
)

func setupTestExportService() (ExportService, *mockCurriculumRepo, *mockLectureRepo) {
	curriculumRepo := newMockCurriculumRepo()
	lectureRepo := newMockLectureRepo()
	repo := &repository.Repository{
		Chat:       newMockChatRepo(),
		Curriculum: curriculumRepo,
		Lecture:    lectureRepo,
		Professor:  newMockProfessorRepo(),
	}
	return NewExportService(repo, zap.NewNop()), curriculumRepo, lectureRepo
}

func TestExportService_ExportCurriculum(t *testing.T) {
	svc, curriculumRepo, lectureRepo := setupTestExportService()
	curriculumRepo.curriculums[1] = &model.Curriculum{ID: 1, UserID: 1, Name: "커리큘럼 1"}
	lectureRepo.codeIDs["CSE3010"] = 10
	lectureRepo.codeIDs["CSE2010"] = 20
	curriculumRepo.lectures[1] = []model.CurriLecture{
		{ID: 1, CurriID: 1, LectID: 10, Name: "운영체제", Credits: 3, Type: "전필", Grade: "3", Semester: "1"},
		{ID: 2, CurriID: 1, LectID: 20, Name: "자료구조", Credits: 3, Type: "전필", Grade: "2", Semester: "1"},
	}

	buf, filename, err := svc.ExportCurriculum(context.Background(), 1)
	if err != nil {
		t.Fatalf("ExportCurriculum 은 성공해야 함: %v", err)
	}
	if filename != "커리큘럼_커리큘럼 1.xlsx" {
		t.Errorf("파일명 기대 커리큘럼_커리큘럼 1.xlsx, 실제 %s", filename)
	}

	// 생성된 파일을 다시 열어 정렬과 합계를 검증
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("생성된 Excel 을 열 수 없음: %v", err)
	}
	defer f.Close()

	// 학년 오름차순: 자료구조(2학년) 가 먼저
	name, _ := f.GetCellValue("커리큘럼", "D3")
	if name != "자료구조" {
		t.Errorf("첫 데이터 행 기대 자료구조, 실제 %s", name)
	}
	// 과목코드는 lect_id 를 통해 lecture_code 에서 역으로 찾는다
	code, _ := f.GetCellValue("커리큘럼", "C3")
	if code != "CSE2010" {
		t.Errorf("첫 데이터 행 과목코드 기대 CSE2010, 실제 %s", code)
	}
	total, _ := f.GetCellValue("커리큘럼", "F5")
	if total != "6" {
		t.Errorf("합계 기대 6, 실제 %s", total)
	}
}

func TestExportService_ExportCurriculum_NotFound(t *testing.T) {
	svc, _, _ := setupTestExportService()

	_, _, err := svc.ExportCurriculum(context.Background(), 404)
	if !errors.Is(err, ErrExportNoCurriculum) {
		t.Errorf("기대 ErrExportNoCurriculum, 실제: %v", err)
	}
}

func TestExportService_ExportCurriculum_Empty(t *testing.T) {
	svc, curriculumRepo, _ := setupTestExportService()
	curriculumRepo.curriculums[1] = &model.Curriculum{ID: 1, UserID: 1, Name: "빈 커리큘럼"}

	_, _, err := svc.ExportCurriculum(context.Background(), 1)
	if !errors.Is(err, ErrExportNoLectures) {
		t.Errorf("기대 ErrExportNoLectures, 실제: %v", err)
	}
}
