package handler

import "github.com/seoyeong-y/navi-ai/internal/service"

// Handler 모든 Handler 의 집합 진입점
type Handler struct {
	Chat       *ChatHandler
	Curriculum *CurriculumHandler
	Lecture    *LectureHandler
	Professor  *ProfessorHandler
	Export     *ExportHandler
}

// NewHandler Handler 집합체 생성
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Chat:       NewChatHandler(svc.Chat),
		Curriculum: NewCurriculumHandler(svc.Curriculum),
		Lecture:    NewLectureHandler(svc.Lecture),
		Professor:  NewProfessorHandler(svc.Professor),
		Export:     NewExportHandler(svc.Export),
	}
}
