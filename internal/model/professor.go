package model

// Professor 교수 테이블 — professors
type Professor struct {
	ID         uint   `gorm:"primaryKey"                 json:"id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	Department string `gorm:"type:varchar(100)"          json:"department"`

	Lectures []Lecture `gorm:"foreignKey:ProfessorID" json:"lectures,omitempty"`
}

// TableName 테이블명 지정
func (Professor) TableName() string { return "professors" }
