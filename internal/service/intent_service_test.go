package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/seoyeong-y/navi-ai/config"
)

func setupTestIntentService(completer *stubCompleter) IntentService {
	cfg := &config.OpenAIConfig{ConditionModel: "gpt-4o"}
	return NewIntentService(cfg, completer, zap.NewNop())
}

// ── ResolveInterest 테스트 ──

func TestIntentService_ResolveInterest_Clear(t *testing.T) {
	svc := setupTestIntentService(&stubCompleter{fallback: "YES: 인공지능, 웹 개발"})

	interests, ambiguous := svc.ResolveInterest(context.Background(), "인공지능과 웹 개발에 관심 있어")
	if ambiguous {
		t.Error("명확한 입력은 ambiguous=false 여야 함")
	}
	want := []string{"인공지능", "웹 개발"}
	if !reflect.DeepEqual(interests, want) {
		t.Errorf("기대 %v, 실제 %v", want, interests)
	}
}

func TestIntentService_ResolveInterest_Ambiguous(t *testing.T) {
	svc := setupTestIntentService(&stubCompleter{fallback: "NO: 컴퓨터공학부 학생들이 가장 쉽게 접하는 분야"})

	interests, ambiguous := svc.ResolveInterest(context.Background(), "그냥 다 추천해줘")
	if !ambiguous {
		t.Error("불분명한 입력은 ambiguous=true 여야 함")
	}
	if len(interests) != 1 || interests[0] != "컴퓨터공학부 학생들이 가장 쉽게 접하는 분야" {
		t.Errorf("대체 관심 분야 기대, 실제 %v", interests)
	}
}

func TestIntentService_ResolveInterest_CompleterError(t *testing.T) {
	svc := setupTestIntentService(&stubCompleter{err: errors.New("timeout")})

	interests, ambiguous := svc.ResolveInterest(context.Background(), "데이터 분석")
	if ambiguous {
		t.Error("호출 실패 시 입력을 그대로 쓰고 ambiguous=false 여야 함")
	}
	if len(interests) != 1 || interests[0] != "데이터 분석" {
		t.Errorf("입력 원문 기대, 실제 %v", interests)
	}
}

// ── IsCurriculumRequest 테스트 ──

func TestIntentService_IsCurriculumRequest(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     bool
	}{
		{"YES 응답", "YES", nil, true},
		{"소문자/공백 응답", " yes ", nil, true},
		{"NO 응답", "NO", nil, false},
		{"형식 밖 응답", "아마도요", nil, false},
		{"호출 실패", "", errors.New("timeout"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupTestIntentService(&stubCompleter{fallback: tt.response, err: tt.err})
			if got := svc.IsCurriculumRequest(context.Background(), "커리큘럼 만들어줘"); got != tt.want {
				t.Errorf("기대 %v, 실제 %v", tt.want, got)
			}
		})
	}
}

// ── ParseAddRemove 테스트 ──

func TestIntentService_ParseAddRemove_PlainJSON(t *testing.T) {
	svc := setupTestIntentService(&stubCompleter{
		fallback: `{"add": ["기계학습"], "remove": ["자료구조"]}`,
	})

	add, remove := svc.ParseAddRemove(context.Background(), "자료구조 빼고 기계학습 넣어줘",
		[]string{"자료구조"}, []string{"자료구조", "기계학습"}, nil)
	if !reflect.DeepEqual(add, []string{"기계학습"}) {
		t.Errorf("add 기대 [기계학습], 실제 %v", add)
	}
	if !reflect.DeepEqual(remove, []string{"자료구조"}) {
		t.Errorf("remove 기대 [자료구조], 실제 %v", remove)
	}
}

func TestIntentService_ParseAddRemove_EmbeddedJSON(t *testing.T) {
	// 설명 텍스트에 섞인 JSON 도 추출해야 한다
	svc := setupTestIntentService(&stubCompleter{
		fallback: "분석 결과는 다음과 같습니다:\n```json\n{\"add\": [], \"remove\": [\"운영체제\"]}\n```",
	})

	add, remove := svc.ParseAddRemove(context.Background(), "운영체제 삭제",
		[]string{"운영체제"}, []string{"운영체제"}, nil)
	if len(add) != 0 {
		t.Errorf("add 기대 빈 목록, 실제 %v", add)
	}
	if !reflect.DeepEqual(remove, []string{"운영체제"}) {
		t.Errorf("remove 기대 [운영체제], 실제 %v", remove)
	}
}

func TestIntentService_ParseAddRemove_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"JSON 없음", "죄송합니다, 이해하지 못했어요"},
		{"깨진 JSON", `{"add": ["기계학습"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupTestIntentService(&stubCompleter{fallback: tt.response})
			add, remove := svc.ParseAddRemove(context.Background(), "기계학습 추가", nil, nil, nil)
			if add != nil || remove != nil {
				t.Errorf("파싱 실패는 (nil, nil) 이어야 함: add=%v remove=%v", add, remove)
			}
		})
	}
}

// ── IsModificationDone 테스트 ──

func TestIntentService_IsModificationDone(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{"종료", "종료", true},
		{"따옴표 포함 종료", `"종료"`, true},
		{"계속", "계속", false},
		{"형식 밖 응답", "종료할게요", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupTestIntentService(&stubCompleter{fallback: tt.response})
			if got := svc.IsModificationDone(context.Background(), "이대로 만들어줘"); got != tt.want {
				t.Errorf("기대 %v, 실제 %v", tt.want, got)
			}
		})
	}
}

// ── ParseConditions 테스트 ──

func TestIntentService_ParseConditions_FiltersUnknownKeys(t *testing.T) {
	// 허용 키 밖의 값은 평가 없이 버린다
	svc := setupTestIntentService(&stubCompleter{
		fallback: `["graduation", "no_team_project", "hack_the_db"]`,
	})

	conditions := svc.ParseConditions(context.Background(), "졸업 필수, 팀플 싫어")
	want := []string{"graduation", "no_team_project"}
	if !reflect.DeepEqual(conditions, want) {
		t.Errorf("기대 %v, 실제 %v", want, conditions)
	}
}

func TestIntentService_ParseConditions_NoArray(t *testing.T) {
	svc := setupTestIntentService(&stubCompleter{fallback: "조건이 없습니다"})

	if conditions := svc.ParseConditions(context.Background(), "아무거나"); conditions != nil {
		t.Errorf("배열이 없으면 nil 이어야 함: %v", conditions)
	}
}

func TestIntentService_ParseConditions_UsesConditionModel(t *testing.T) {
	stub := &stubCompleter{fallback: `["retake"]`}
	svc := setupTestIntentService(stub)

	svc.ParseConditions(context.Background(), "재수강 포함")
	if len(stub.calls) != 1 {
		t.Fatalf("호출 횟수 기대 1, 실제 %d", len(stub.calls))
	}
}

// ── DisambiguateLecture 테스트 ──

func TestIntentService_DisambiguateLecture_MatchesCandidate(t *testing.T) {
	// 모델이 소문자/공백 변형으로 답해도 후보 원문으로 정규화된다
	svc := setupTestIntentService(&stubCompleter{fallback: "database"})

	candidates := []string{"Database Systems", "운영체제", "자료구조"}
	got := svc.DisambiguateLecture(context.Background(), "데이터베이스 수업 추가해줘", candidates)
	if got != "Database Systems" {
		t.Errorf("기대 Database Systems, 실제 %s", got)
	}
}

func TestIntentService_DisambiguateLecture_NoMatch(t *testing.T) {
	// 후보와 매칭 실패 시 모델 응답 원문 반환
	svc := setupTestIntentService(&stubCompleter{fallback: "양자컴퓨팅"})

	got := svc.DisambiguateLecture(context.Background(), "양자 수업", []string{"운영체제"})
	if got != "양자컴퓨팅" {
		t.Errorf("기대 양자컴퓨팅, 실제 %s", got)
	}
}

// ── FilterByDescription 테스트 ──

func TestIntentService_FilterByDescription_DropsUnknownLines(t *testing.T) {
	// 추천 목록에 없는 줄은 버린다
	svc := setupTestIntentService(&stubCompleter{
		fallback: "기계학습\n환각강의\n  자료구조  \n",
	})

	recommended := []string{"기계학습", "자료구조", "운영체제"}
	infos := []LectureDescription{
		{Name: "기계학습", Description: "지도학습과 비지도학습", Objectives: "모델 학습 이해"},
		{Name: "자료구조", Description: "리스트, 트리, 그래프", Objectives: "자료구조 구현"},
	}

	got := svc.FilterByDescription(context.Background(), recommended, infos, "인공지능")
	want := []string{"기계학습", "자료구조"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("기대 %v, 실제 %v", want, got)
	}
}

func TestIntentService_FilterByDescription_EmptyRecommended(t *testing.T) {
	stub := &stubCompleter{fallback: "기계학습"}
	svc := setupTestIntentService(stub)

	if got := svc.FilterByDescription(context.Background(), nil, nil, "인공지능"); got != nil {
		t.Errorf("빈 추천 목록은 호출 없이 nil: %v", got)
	}
	if len(stub.calls) != 0 {
		t.Errorf("빈 추천 목록에서는 모델을 호출하지 않아야 함")
	}
}

// ── SuggestAlternatives 테스트 ──

func TestIntentService_SuggestAlternatives_CapsAtThree(t *testing.T) {
	svc := setupTestIntentService(&stubCompleter{
		fallback: "기계학습\n컴퓨터비전\n자연어처리\n강화학습",
	})

	got := svc.SuggestAlternatives(context.Background(), "인공지능",
		[]string{"자료구조"}, []string{"인공지능"}, []string{"기계학습", "컴퓨터비전", "자연어처리", "강화학습"})
	if len(got) != 3 {
		t.Errorf("제안 수 기대 3, 실제 %d: %v", len(got), got)
	}
}
