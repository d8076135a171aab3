package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seoyeong-y/navi-ai/config"
	"github.com/seoyeong-y/navi-ai/internal/dto"
	"github.com/seoyeong-y/navi-ai/internal/model"
	"github.com/seoyeong-y/navi-ai/internal/repository"
)

// 프롬프트를 구분하는 부분 문자열. 스텁 완성기의 응답 키로 쓴다
const (
	promptCurriculumRequest = "아래 조건을 만족할 때"
	promptResolveInterest   = "명확한 관심 분야인지 판단"
	promptParseConditions   = "해당되는 조건 키만"
	promptFilterByDesc      = "각 강의에 대한 설명은"
	promptParseAddRemove    = "[분석 기준]"
	promptModificationDone  = "수정(추가/삭제)하는 단계"
	promptAlternative       = "삭제한 강의 리스트"
	promptDisambiguate      = "강의명 후보 리스트"
	promptSuggest           = "제외하고 싶어 합니다"
)

type chatTestEnv struct {
	svc      ChatService
	chatRepo *mockChatRepo
	curRepo  *mockCurriculumRepo
	lecRepo  *mockLectureRepo
}

func setupTestChatService(completer *stubCompleter) *chatTestEnv {
	chatRepo := newMockChatRepo()
	curRepo := newMockCurriculumRepo()
	lecRepo := newMockLectureRepo()
	repo := &repository.Repository{
		Chat:       chatRepo,
		Curriculum: curRepo,
		Lecture:    lecRepo,
		Professor:  newMockProfessorRepo(),
	}

	logger := zap.NewNop()
	curriculum := NewCurriculumService(repo, logger)
	intent := NewIntentService(&config.OpenAIConfig{ConditionModel: "gpt-4o"}, completer, logger)

	return &chatTestEnv{
		svc:      NewChatService(repo, intent, curriculum, logger),
		chatRepo: chatRepo,
		curRepo:  curRepo,
		lecRepo:  lecRepo,
	}
}

func (e *chatTestEnv) newSession(t *testing.T) uint {
	t.Helper()
	id, err := e.chatRepo.CreateSession(context.Background(), 1, "curriculum")
	if err != nil {
		t.Fatalf("세션 생성 실패: %v", err)
	}
	return id
}

// ── 세션 수명주기 테스트 ──

func TestChatService_EndSession_Immutable(t *testing.T) {
	env := setupTestChatService(&stubCompleter{})
	sessionID := env.newSession(t)

	if err := env.svc.EndSession(context.Background(), sessionID); err != nil {
		t.Fatalf("첫 종료는 성공해야 함: %v", err)
	}
	firstEndedAt := *env.chatRepo.sessions[sessionID].EndedAt

	// 두 번째 종료는 거부되고 ended_at 이 바뀌지 않아야 한다
	err := env.svc.EndSession(context.Background(), sessionID)
	if !errors.Is(err, ErrSessionAlreadyEnded) {
		t.Errorf("기대 ErrSessionAlreadyEnded, 실제: %v", err)
	}
	if !env.chatRepo.sessions[sessionID].EndedAt.Equal(firstEndedAt) {
		t.Error("종료 시각은 변경되지 않아야 함")
	}
}

func TestChatService_EndSession_NotFound(t *testing.T) {
	env := setupTestChatService(&stubCompleter{})

	err := env.svc.EndSession(context.Background(), 404)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("기대 ErrSessionNotFound, 실제: %v", err)
	}
}

// ── HandleTurn 테스트 ──

func TestChatService_HandleTurn_SessionGuards(t *testing.T) {
	env := setupTestChatService(&stubCompleter{})
	req := &dto.ChatTurnRequest{UserID: 1, Message: "안녕"}

	if _, err := env.svc.HandleTurn(context.Background(), 404, req); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("기대 ErrSessionNotFound, 실제: %v", err)
	}

	sessionID := env.newSession(t)
	now := time.Now()
	env.chatRepo.sessions[sessionID].EndedAt = &now
	if _, err := env.svc.HandleTurn(context.Background(), sessionID, req); !errors.Is(err, ErrSessionAlreadyEnded) {
		t.Errorf("기대 ErrSessionAlreadyEnded, 실제: %v", err)
	}
}

func TestChatService_HandleTurn_ChatStage(t *testing.T) {
	env := setupTestChatService(&stubCompleter{
		responses: map[string]string{promptCurriculumRequest: "NO"},
	})
	sessionID := env.newSession(t)

	resp, err := env.svc.HandleTurn(context.Background(), sessionID, &dto.ChatTurnRequest{
		UserID: 1, Message: "안녕하세요",
	})
	if err != nil {
		t.Fatalf("HandleTurn 은 성공해야 함: %v", err)
	}
	if resp.Stage != StageChat {
		t.Errorf("기대 stage=chat, 실제 %s", resp.Stage)
	}

	// 사용자/봇 로그가 순서대로 기록되어야 한다
	logs := env.chatRepo.logs[sessionID]
	if len(logs) != 2 {
		t.Fatalf("로그 수 기대 2, 실제 %d", len(logs))
	}
	if logs[0].ChatType != model.ChatTypeUser || logs[1].ChatType != model.ChatTypeBot {
		t.Errorf("로그 순서 기대 user→bot, 실제 %s→%s", logs[0].ChatType, logs[1].ChatType)
	}
}

func TestChatService_HandleTurn_RecommendStage(t *testing.T) {
	env := setupTestChatService(&stubCompleter{
		responses: map[string]string{
			promptCurriculumRequest: "YES",
			promptResolveInterest:   "YES: 인공지능",
			promptParseConditions:   `["graduation"]`,
			promptFilterByDesc:      "기계학습\n알고리즘",
		},
	})
	sessionID := env.newSession(t)

	// 필수 과목 풀: CS201 은 이수 과목 CS101 의 대체 교과목이라 제외되어야 한다
	env.lecRepo.required = []model.RecentLecture{
		{Name: "기계학습", Code: "CS301", Type: "MR", Grade: "3"},
		{Name: "알고리즘", Code: "CS302", Type: "MR", Grade: "2"},
		{Name: "이산수학", Code: "CS201", Type: "MR", Grade: "1"},
		{Name: "영어회화", Code: "GE301", Type: "GR", Grade: "1"},
		{Name: "4학년세미나", Code: "CS401", Type: "MR", Grade: "4"},
	}
	env.lecRepo.replacements["CS101"] = []string{"CS201"}
	env.lecRepo.infos = []repository.LectureInfo{
		{Name: "기계학습", Description: "지도학습", Objectives: "모델 이해"},
		{Name: "알고리즘", Description: "그리디, DP", Objectives: "설계 기법"},
	}

	resp, err := env.svc.HandleTurn(context.Background(), sessionID, &dto.ChatTurnRequest{
		UserID:  1,
		Message: "인공지능 커리큘럼 만들어줘",
		Grade:   3,
		Completed: dto.CompletedRecord{
			"2024-1": {"전필": {{Code: "CS101", Name: "프로그래밍기초", Credits: 3}}},
		},
	})
	if err != nil {
		t.Fatalf("HandleTurn 은 성공해야 함: %v", err)
	}
	if resp.Stage != StageRecommend {
		t.Errorf("기대 stage=recommend, 실제 %s", resp.Stage)
	}
	if !reflect.DeepEqual(resp.Interests, []string{"인공지능"}) {
		t.Errorf("관심 분야 기대 [인공지능], 실제 %v", resp.Interests)
	}
	if !reflect.DeepEqual(resp.Conditions, []string{"graduation"}) {
		t.Errorf("설계 조건 기대 [graduation], 실제 %v", resp.Conditions)
	}
	// 이산수학(대체 이수), 영어회화/4학년세미나(필터링·학년) 제외
	want := []string{"기계학습", "알고리즘"}
	if !reflect.DeepEqual(resp.Recommended, want) {
		t.Errorf("추천 기대 %v, 실제 %v", want, resp.Recommended)
	}
	if resp.CreditSummary == nil || resp.CreditSummary.TotalCredits != 3 {
		t.Errorf("학점 요약이 포함되어야 함: %+v", resp.CreditSummary)
	}
}

func TestChatService_HandleTurn_ModifyStage_MembershipFiltered(t *testing.T) {
	env := setupTestChatService(&stubCompleter{
		responses: map[string]string{
			promptModificationDone: "계속",
			// 환각강의는 카탈로그에 없고, 운영체제는 현재 추천에 없다
			promptParseAddRemove: `{"add": ["기계학습", "환각강의"], "remove": ["자료구조", "운영체제"]}`,
		},
	})
	sessionID := env.newSession(t)
	env.lecRepo.lectures["기계학습"] = &model.RecentLecture{Name: "기계학습", Code: "CS301", Credits: 3}
	env.lecRepo.lectures["자료구조"] = &model.RecentLecture{Name: "자료구조", Code: "CS101", Credits: 3}

	resp, err := env.svc.HandleTurn(context.Background(), sessionID, &dto.ChatTurnRequest{
		UserID:             1,
		Message:            "자료구조 빼고 기계학습 넣어줘",
		CurrentRecommended: []string{"자료구조", "이산수학"},
	})
	if err != nil {
		t.Fatalf("HandleTurn 은 성공해야 함: %v", err)
	}
	if resp.Stage != StageModify {
		t.Errorf("기대 stage=modify, 실제 %s", resp.Stage)
	}
	if !reflect.DeepEqual(resp.Added, []string{"기계학습"}) {
		t.Errorf("add 소속 검증 실패: %v", resp.Added)
	}
	if !reflect.DeepEqual(resp.Removed, []string{"자료구조"}) {
		t.Errorf("remove 소속 검증 실패: %v", resp.Removed)
	}
	want := []string{"이산수학", "기계학습"}
	if !reflect.DeepEqual(resp.Recommended, want) {
		t.Errorf("반영 후 추천 기대 %v, 실제 %v", want, resp.Recommended)
	}
}

func TestChatService_HandleTurn_AlternativeSuggestion(t *testing.T) {
	env := setupTestChatService(&stubCompleter{
		responses: map[string]string{
			promptModificationDone: "계속",
			promptParseAddRemove:   `{"add": [], "remove": []}`,
			promptAlternative:      "YES",
			promptSuggest:          "컴퓨터비전\n자연어처리\n강화학습",
		},
	})
	sessionID := env.newSession(t)

	resp, err := env.svc.HandleTurn(context.Background(), sessionID, &dto.ChatTurnRequest{
		UserID:             1,
		Message:            "자료구조 말고 다른 거 추천해줘",
		CurrentRecommended: []string{"기계학습"},
		PreviouslyRemoved:  []string{"자료구조"},
	})
	if err != nil {
		t.Fatalf("HandleTurn 은 성공해야 함: %v", err)
	}
	if resp.Stage != StageModify {
		t.Errorf("기대 stage=modify, 실제 %s", resp.Stage)
	}
	want := []string{"컴퓨터비전", "자연어처리", "강화학습"}
	if !reflect.DeepEqual(resp.Added, want) {
		t.Errorf("대체 제안 기대 %v, 실제 %v", want, resp.Added)
	}
}

func TestChatService_HandleTurn_DoneStage(t *testing.T) {
	env := setupTestChatService(&stubCompleter{
		responses: map[string]string{promptModificationDone: "종료"},
	})
	sessionID := env.newSession(t)
	env.lecRepo.lectures["기계학습"] = &model.RecentLecture{Name: "기계학습", Code: "CS301", Credits: 3}
	env.lecRepo.lectures["자료구조"] = &model.RecentLecture{Name: "자료구조", Code: "CS101", Credits: 3}
	// CS301 만 카탈로그 코드 매핑에 존재: CS101 은 제외 코드로 보고된다
	env.curRepo.codeIDs["CS301"] = 10

	resp, err := env.svc.HandleTurn(context.Background(), sessionID, &dto.ChatTurnRequest{
		UserID:             1,
		Message:            "이대로 만들어줘",
		CurrentRecommended: []string{"기계학습", "자료구조"},
	})
	if err != nil {
		t.Fatalf("HandleTurn 은 성공해야 함: %v", err)
	}
	if resp.Stage != StageDone {
		t.Errorf("기대 stage=done, 실제 %s", resp.Stage)
	}
	if resp.CurriculumName != "커리큘럼 1" {
		t.Errorf("기본 이름 기대 커리큘럼 1, 실제 %s", resp.CurriculumName)
	}
	if !reflect.DeepEqual(resp.SkippedCodes, []string{"CS101"}) {
		t.Errorf("제외 코드 기대 [CS101], 실제 %v", resp.SkippedCodes)
	}
	if len(env.curRepo.curriculums) != 1 {
		t.Errorf("커리큘럼 1건이 저장되어야 함: %d", len(env.curRepo.curriculums))
	}
}
