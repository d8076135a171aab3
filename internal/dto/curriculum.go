package dto

import "time"

// CreateCurriculumRequest 커리큘럼 생성 요청
// Name 이 비어 있으면 기본 이름("커리큘럼 N")을 생성한다
type CreateCurriculumRequest struct {
	UserID       uint   `json:"user_id" binding:"required"`
	Name         string `json:"name"`
	TotalCredits int    `json:"total_credits"`
	Description  string `json:"description"`
}

// CurriculumResponse 커리큘럼 응답
type CurriculumResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	TotalCredits int       `json:"total_credits"`
	Description  string    `json:"description"`
}

// CurriLectureRequest 커리큘럼 강의 저장 항목
type CurriLectureRequest struct {
	Name     string `json:"name" binding:"required"`
	Credits  int    `json:"credits"`
	Type     string `json:"type"`
	Grade    string `json:"grade"`
	Semester string `json:"semester"`
	Code     string `json:"code"`
}

// SaveLecturesRequest 커리큘럼 강의 일괄 저장 요청
type SaveLecturesRequest struct {
	Lectures []CurriLectureRequest `json:"lectures" binding:"required"`
}

// SaveLecturesResponse 일괄 저장 결과: 삽입 수와 제외된 코드
type SaveLecturesResponse struct {
	Inserted     int      `json:"inserted"`
	SkippedCodes []string `json:"skipped_codes"`
}

// CurriLectureResponse 커리큘럼 강의 응답
type CurriLectureResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Semester string `json:"semester"`
	Type     string `json:"type"`
	Grade    string `json:"grade"`
}

// CreditSummaryResponse 학점 집계 결과
type CreditSummaryResponse struct {
	TotalCredits         int      `json:"total_credits"`
	MajorCredits         int      `json:"major_credits"`
	GeneralCredits       int      `json:"general_credits"`
	FieldPracticeCredits int      `json:"field_practice_credits"`
	MajorRequiredCredits int      `json:"major_required_credits_earned"`
	CompletedCodes       []string `json:"completed_lecture_codes"`
}
