package model

// LectureCode 강의 코드 테이블 — lecture_code
// code 는 개설 학기와 무관한 안정적인 조인 키다
type LectureCode struct {
	ID                 uint   `gorm:"primaryKey"                       json:"id"`
	Code               string `gorm:"type:varchar(50);unique;not null" json:"code"`
	Name               string `gorm:"type:varchar(255);not null"       json:"name"`
	LectureDescription string `gorm:"type:text"                        json:"lecture_description"`
	LectureObjectives  string `gorm:"type:text"                        json:"lecture_objectives"`

	RecentLectures []RecentLecture `gorm:"foreignKey:Code;references:Code" json:"recent_lectures,omitempty"`
}

// TableName 테이블명 지정
func (LectureCode) TableName() string { return "lecture_code" }

// RecentLecture 최근 개설 강의 테이블 — recent_lectures
type RecentLecture struct {
	ID          uint   `gorm:"primaryKey"                json:"id"`
	Code        string `gorm:"type:varchar(50)"          json:"code"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Credits     int    `gorm:"not null"                  json:"credits"`
	Type        string `gorm:"type:varchar(10)"          json:"type"`
	Grade       string `gorm:"type:varchar(10)"          json:"grade"` // 숫자/문자 혼합 비교용 문자열
	Semester    string `gorm:"type:varchar(10)"          json:"semester"`
	Major       string `gorm:"type:varchar(50)"          json:"major"`
	TeamProject string `gorm:"type:varchar(10)"          json:"team_project"`
}

// TableName 테이블명 지정
func (RecentLecture) TableName() string { return "recent_lectures" }

// LectureReplacement 대체 교과목 테이블 — lecture_replacement
// original↔replacement 양방향 동치 관계의 조회 테이블
type LectureReplacement struct {
	ID              uint   `gorm:"primaryKey"                json:"id"`
	OriginalCode    string `gorm:"type:varchar(50);not null" json:"original_code"`
	ReplacementCode string `gorm:"type:varchar(50);not null" json:"replacement_code"`
}

// TableName 테이블명 지정
func (LectureReplacement) TableName() string { return "lecture_replacement" }

// Lecture 과거 개설 강의 테이블 — lectures (레거시)
type Lecture struct {
	ID          uint   `gorm:"primaryKey"                json:"id"`
	Code        string `gorm:"type:varchar(50);not null" json:"code"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	ProfessorID uint   `gorm:"index"                     json:"professor_id"`
	Credits     int    `gorm:"not null"                  json:"credits"`
	Type        string `gorm:"type:varchar(10)"          json:"type"`
	Grade       string `gorm:"type:varchar(10)"          json:"grade"`
	Semester    string `gorm:"type:varchar(10)"          json:"semester"`
	Year        string `gorm:"type:varchar(10)"          json:"year"`
}

// TableName 테이블명 지정
func (Lecture) TableName() string { return "lectures" }
