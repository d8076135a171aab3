package model

import "time"

// Curriculum 커리큘럼 테이블 — curriculums
// (user_id, name) 유니크 제약으로 이름 생성 경합을 저장 시점에 차단한다
type Curriculum struct {
	ID           uint      `gorm:"primaryKey"                                          json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:uq_curriculums_user_name"       json:"user_id"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_curriculums_user_name" json:"name"`
	CreatedAt    time.Time `gorm:"not null"                                            json:"created_at"`
	TotalCredits int       `gorm:"not null"                                            json:"total_credits"`
	Description  string    `gorm:"type:text"                                           json:"description"`

	Lectures []CurriLecture `gorm:"foreignKey:CurriID" json:"lectures,omitempty"`
}

// TableName 테이블명 지정
func (Curriculum) TableName() string { return "curriculums" }

// CurriLecture 커리큘럼 강의 테이블 — curri_lectures
// LectID 는 lecture_code.id 를 참조한다
type CurriLecture struct {
	ID       uint   `gorm:"primaryKey"                json:"id"`
	CurriID  uint   `gorm:"index"                     json:"curri_id"`
	LectID   uint   `json:"lect_id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Credits  int    `gorm:"not null"                  json:"credits"`
	Semester string `gorm:"type:varchar(10)"          json:"semester"`
	Type     string `gorm:"type:varchar(10)"          json:"type"`
	Grade    string `gorm:"type:varchar(10)"          json:"grade"`
}

// TableName 테이블명 지정
func (CurriLecture) TableName() string { return "curri_lectures" }
