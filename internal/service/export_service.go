package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/repository"
)

// ── 내보내기 모듈 비즈니스 오류 ──

var (
	ErrExportNoCurriculum = errors.New("커리큘럼이 존재하지 않습니다")
	ErrExportNoLectures   = errors.New("커리큘럼에 담긴 강의가 없습니다")
	ErrExportGenerateFail = errors.New("Excel 파일 생성에 실패했습니다")
)

// ExportService 내보내기 업무 인터페이스
//
// 설계 메모:
//   - 커리큘럼을 Excel(.xlsx) 로 내보낸다
//   - bytes.Buffer 로 반환하고 HTTP 응답 헤더 설정은 Handler 층 책임
//   - 행은 학년 → 학기 → 강의명 순으로 정렬
type ExportService interface {
	// ExportCurriculum 커리큘럼을 Excel 로 내보내기
	ExportCurriculum(ctx context.Context, curriculumID uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService ExportService 인스턴스 생성
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportCurriculum(ctx context.Context, curriculumID uint) (*bytes.Buffer, string, error) {
	// 1. 커리큘럼 조회
	curriculum, err := s.repo.Curriculum.GetByID(ctx, curriculumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportNoCurriculum
		}
		s.logger.Error("커리큘럼 조회 실패", zap.Error(err))
		return nil, "", err
	}

	// 2. 담긴 강의 조회
	lectures, err := s.repo.Curriculum.ListLectures(ctx, curriculumID)
	if err != nil {
		s.logger.Error("커리큘럼 강의 조회 실패", zap.Error(err))
		return nil, "", err
	}
	if len(lectures) == 0 {
		return nil, "", ErrExportNoLectures
	}

	// 3. lect_id → 과목코드 역매핑 (curri_lectures 는 코드를 직접 들고 있지 않다)
	codeIDMap, err := s.repo.Lecture.CodeIDMap(ctx)
	if err != nil {
		s.logger.Error("강의 코드 매핑 조회 실패", zap.Error(err))
		return nil, "", err
	}
	codeByID := make(map[uint]string, len(codeIDMap))
	for code, id := range codeIDMap {
		codeByID[id] = code
	}

	// 4. 학년 → 학기 → 강의명 순 정렬
	sort.Slice(lectures, func(i, j int) bool {
		if lectures[i].Grade != lectures[j].Grade {
			return lectures[i].Grade < lectures[j].Grade
		}
		if lectures[i].Semester != lectures[j].Semester {
			return lectures[i].Semester < lectures[j].Semester
		}
		return lectures[i].Name < lectures[j].Name
	})

	// 5. Excel 생성
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "커리큘럼"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 기본 Sheet1 삭제
	f.DeleteSheet("Sheet1")

	// 열 너비
	f.SetColWidth(sheetName, "A", "B", 8)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 28)
	f.SetColWidth(sheetName, "E", "F", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 제목 행
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 커리큘럼", curriculum.Name))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 표 머리글
	headers := []string{"학년", "학기", "과목코드", "강의명", "이수구분", "학점"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 2), h)
	}
	f.SetCellStyle(sheetName, "A2", "F2", headerStyle)

	// 데이터 행
	row := 3
	totalCredits := 0
	for _, lec := range lectures {
		f.SetCellValue(sheetName, cell("A", row), lec.Grade)
		f.SetCellValue(sheetName, cell("B", row), lec.Semester)
		f.SetCellValue(sheetName, cell("C", row), codeByID[lec.LectID])
		f.SetCellValue(sheetName, cell("D", row), lec.Name)
		f.SetCellValue(sheetName, cell("E", row), lec.Type)
		f.SetCellValue(sheetName, cell("F", row), lec.Credits)
		totalCredits += lec.Credits
		row++
	}

	// 합계 행
	f.SetCellValue(sheetName, cell("E", row), "합계")
	f.SetCellValue(sheetName, cell("F", row), totalCredits)

	// buffer 로 기록
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("Excel 기록 실패", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("커리큘럼_%s.xlsx", curriculum.Name)
	return buf, filename, nil
}

// cell "A"+row 형태의 셀 좌표 문자열 생성
func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
