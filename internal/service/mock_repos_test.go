package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/model"
	"github.com/seoyeong-y/navi-ai/internal/repository"
	"github.com/seoyeong-y/navi-ai/pkg/llm"
)

// ── Mock Repositories ──

type mockChatRepo struct {
	sessions map[uint]*model.ChatSession
	logs     map[uint][]model.ChatLog
	nextID   uint
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{
		sessions: make(map[uint]*model.ChatSession),
		logs:     make(map[uint][]model.ChatLog),
		nextID:   1,
	}
}

func (m *mockChatRepo) CreateSession(_ context.Context, userID uint, sessionType string) (uint, error) {
	id := m.nextID
	m.nextID++
	m.sessions[id] = &model.ChatSession{
		ID:          id,
		UserID:      userID,
		SessionType: sessionType,
		StartedAt:   time.Now(),
	}
	return id, nil
}

func (m *mockChatRepo) EndSession(_ context.Context, sessionID uint) (bool, error) {
	s, ok := m.sessions[sessionID]
	if !ok || s.EndedAt != nil {
		return false, nil
	}
	now := time.Now()
	s.EndedAt = &now
	return true, nil
}

func (m *mockChatRepo) GetSessionByID(_ context.Context, sessionID uint) (*model.ChatSession, error) {
	if s, ok := m.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChatRepo) SaveLog(_ context.Context, sessionID uint, chatType, message string) error {
	m.logs[sessionID] = append(m.logs[sessionID], model.ChatLog{
		ID:        uint(len(m.logs[sessionID]) + 1),
		SessionID: sessionID,
		ChatType:  chatType,
		Message:   message,
		Timestamp: time.Now(),
	})
	return nil
}

func (m *mockChatRepo) ListLogsBySession(_ context.Context, sessionID uint) ([]model.ChatLog, error) {
	return m.logs[sessionID], nil
}

type mockCurriculumRepo struct {
	curriculums map[uint]*model.Curriculum
	lectures    map[uint][]model.CurriLecture
	codeIDs     map[string]uint // 카탈로그 코드 → lecture_code.id
	nextID      uint
	createCalls int

	// phantomNames 이름 목록 조회와 저장 사이에 다른 요청이 선점한
	// 이름. Create 시 충돌을 일으키고 실제 행으로 승격된다
	phantomNames map[string]uint // name → userID
}

func newMockCurriculumRepo() *mockCurriculumRepo {
	return &mockCurriculumRepo{
		curriculums:  make(map[uint]*model.Curriculum),
		lectures:     make(map[uint][]model.CurriLecture),
		codeIDs:      make(map[string]uint),
		phantomNames: make(map[string]uint),
		nextID:       1,
	}
}

func (m *mockCurriculumRepo) ListNamesByUser(_ context.Context, userID uint) ([]string, error) {
	var names []string
	for _, c := range m.curriculums {
		if c.UserID == userID {
			names = append(names, c.Name)
		}
	}
	return names, nil
}

func (m *mockCurriculumRepo) GetIDByName(_ context.Context, userID uint, name string) (uint, error) {
	for _, c := range m.curriculums {
		if c.UserID == userID && c.Name == name {
			return c.ID, nil
		}
	}
	return 0, gorm.ErrRecordNotFound
}

func (m *mockCurriculumRepo) GetByID(_ context.Context, curriculumID uint) (*model.Curriculum, error) {
	if c, ok := m.curriculums[curriculumID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCurriculumRepo) ListLectures(_ context.Context, curriculumID uint) ([]model.CurriLecture, error) {
	return m.lectures[curriculumID], nil
}

// Create 유니크 제약 (user_id, name) 을 흉내낸다
func (m *mockCurriculumRepo) Create(_ context.Context, curriculum *model.Curriculum) error {
	m.createCalls++
	if userID, ok := m.phantomNames[curriculum.Name]; ok && userID == curriculum.UserID {
		// 경쟁 요청의 커밋이 먼저 도착한 상황: 행을 승격시키고 충돌 반환
		delete(m.phantomNames, curriculum.Name)
		m.curriculums[m.nextID] = &model.Curriculum{ID: m.nextID, UserID: userID, Name: curriculum.Name}
		m.nextID++
		return gorm.ErrDuplicatedKey
	}
	for _, c := range m.curriculums {
		if c.UserID == curriculum.UserID && c.Name == curriculum.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	curriculum.ID = m.nextID
	m.nextID++
	m.curriculums[curriculum.ID] = curriculum
	return nil
}

func (m *mockCurriculumRepo) SaveLectures(_ context.Context, curriculumID uint, inputs []repository.CurriLectureInput) (*repository.SaveLecturesResult, error) {
	result := &repository.SaveLecturesResult{}
	for _, in := range inputs {
		lectID, ok := m.codeIDs[in.Code]
		if !ok {
			result.SkippedCodes = append(result.SkippedCodes, in.Code)
			continue
		}
		m.lectures[curriculumID] = append(m.lectures[curriculumID], model.CurriLecture{
			ID:       uint(len(m.lectures[curriculumID]) + 1),
			CurriID:  curriculumID,
			LectID:   lectID,
			Name:     in.Name,
			Credits:  in.Credits,
			Semester: in.Semester,
			Type:     in.Type,
			Grade:    in.Grade,
		})
		result.Inserted++
	}
	return result, nil
}

func (m *mockCurriculumRepo) DeleteByName(_ context.Context, userID uint, name string) (bool, error) {
	for id, c := range m.curriculums {
		if c.UserID == userID && c.Name == name {
			delete(m.curriculums, id)
			delete(m.lectures, id)
			return true, nil
		}
	}
	return false, nil
}

type mockLectureRepo struct {
	lectures     map[string]*model.RecentLecture // key: name
	codeIDs      map[string]uint                 // code → lecture_code.id
	replacements map[string][]string             // code → 대체 코드 목록 (양방향으로 등록)
	required     []model.RecentLecture           // 필수 과목 풀 (Type: MR/GR)
	infos        []repository.LectureInfo
}

func newMockLectureRepo() *mockLectureRepo {
	return &mockLectureRepo{
		lectures:     make(map[string]*model.RecentLecture),
		codeIDs:      make(map[string]uint),
		replacements: make(map[string][]string),
	}
}

func (m *mockLectureRepo) GetByName(_ context.Context, name string) (*model.RecentLecture, error) {
	if lec, ok := m.lectures[name]; ok {
		return lec, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLectureRepo) List(_ context.Context) ([]model.RecentLecture, error) {
	var result []model.RecentLecture
	for _, lec := range m.lectures {
		result = append(result, *lec)
	}
	return result, nil
}

func (m *mockLectureRepo) ListNames(_ context.Context) ([]string, error) {
	var names []string
	for name := range m.lectures {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockLectureRepo) CodeIDMap(_ context.Context) (map[string]uint, error) {
	result := make(map[string]uint, len(m.codeIDs))
	for code, id := range m.codeIDs {
		result[code] = id
	}
	return result, nil
}

func (m *mockLectureRepo) ExpandWithReplacements(_ context.Context, codes []string) (map[string]struct{}, error) {
	expanded := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		expanded[code] = struct{}{}
		for _, rep := range m.replacements[code] {
			expanded[rep] = struct{}{}
		}
	}
	return expanded, nil
}

func (m *mockLectureRepo) UncompletedRequired(_ context.Context, completedCodes map[string]struct{}, studentGrade int) ([]string, []string, error) {
	var mr, gr []string
	for _, lec := range m.required {
		if _, done := completedCodes[lec.Code]; done {
			continue
		}
		if lec.Grade > strconv.Itoa(studentGrade) {
			continue
		}
		switch lec.Type {
		case "MR":
			mr = append(mr, lec.Name)
		case "GR":
			gr = append(gr, lec.Name)
		}
	}
	return mr, gr, nil
}

func (m *mockLectureRepo) ListInfos(_ context.Context, names []string) ([]repository.LectureInfo, error) {
	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[n] = true
	}
	var result []repository.LectureInfo
	for _, info := range m.infos {
		if nameSet[info.Name] {
			result = append(result, info)
		}
	}
	return result, nil
}

type mockProfessorRepo struct {
	professors map[string]*model.Professor // key: name
	lectures   map[uint][]model.Lecture    // professorID → 강의
}

func newMockProfessorRepo() *mockProfessorRepo {
	return &mockProfessorRepo{
		professors: make(map[string]*model.Professor),
		lectures:   make(map[uint][]model.Lecture),
	}
}

func (m *mockProfessorRepo) GetByID(_ context.Context, professorID uint) (*model.Professor, error) {
	for _, p := range m.professors {
		if p.ID == professorID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessorRepo) GetByName(_ context.Context, name string) (*model.Professor, error) {
	if p, ok := m.professors[name]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessorRepo) ListLecturesByProfessorIDs(_ context.Context, professorIDs []uint) ([]model.Lecture, error) {
	var result []model.Lecture
	for _, id := range professorIDs {
		result = append(result, m.lectures[id]...)
	}
	return result, nil
}

// ── Stub Completer ──

// stubCompleter 프롬프트 내용으로 응답을 고르는 고정 완성기
// responses 의 키가 프롬프트에 포함되면 해당 값을 반환한다
type stubCompleter struct {
	responses map[string]string // 프롬프트 부분 문자열 → 응답
	fallback  string
	err       error
	calls     []string // 전달된 프롬프트 기록
}

func (s *stubCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	prompt := ""
	for _, msg := range req.Messages {
		prompt += msg.Content + "\n"
	}
	s.calls = append(s.calls, prompt)
	if s.err != nil {
		return "", s.err
	}
	for key, resp := range s.responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return s.fallback, nil
}
