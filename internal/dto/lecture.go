package dto

// LectureResponse 개설 강의 응답
type LectureResponse struct {
	Name        string `json:"name"`
	Credits     int    `json:"credits"`
	Type        string `json:"type"`
	Grade       string `json:"grade"`
	Semester    string `json:"semester"`
	Code        string `json:"code"`
	Major       string `json:"major"`
	TeamProject string `json:"team_project"`
}

// ProfessorResponse 교수 응답
type ProfessorResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// ProfessorLectureResponse 교수 개설 강의 응답 (레거시 lectures 테이블)
type ProfessorLectureResponse struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Credits  int    `json:"credits"`
	Type     string `json:"type"`
	Grade    string `json:"grade"`
	Semester string `json:"semester"`
	Year     string `json:"year"`
}
