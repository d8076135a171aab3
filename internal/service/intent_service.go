package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seoyeong-y/navi-ai/config"
	"github.com/seoyeong-y/navi-ai/pkg/llm"
)

// fallbackInterest 관심 분야가 불분명할 때 쓰는 기본 키워드
const fallbackInterest = "컴퓨터공학부 학생들이 가장 쉽게 접하는 분야"

// conditionKeys 커리큘럼 설계 조건 키 집합. 이외 키는 버린다
var conditionKeys = map[string]bool{
	"graduation":          true,
	"no_team_project":     true,
	"preferred_professor": true,
	"retake":              true,
}

// IntentService 자연어 의도 해석 인터페이스
//
// 각 단계는 상태가 없다: 프롬프트 구성 → 완성 호출 1회 → 응답 파싱.
// 전송/파싱 실패 시 문서화된 안전 기본값을 반환하며 재시도하지 않는다
type IntentService interface {
	// ResolveInterest 관심 분야 명확성 판단. (키워드 목록, 모호 여부) 반환
	ResolveInterest(ctx context.Context, userInput string) ([]string, bool)
	// IsCurriculumRequest 커리큘럼 설계 요청 여부. 실패 시 false
	IsCurriculumRequest(ctx context.Context, userInput string) bool
	// ParseAddRemove 추가/삭제 요청 분석. 파싱 실패 시 (빈, 빈)
	// 반환 목록의 소속 검증(add ⊆ available, remove ⊆ current)은 호출자 몫이다
	ParseAddRemove(ctx context.Context, userInput string, current, available, previouslyRemoved []string) (add []string, remove []string)
	// IsModificationDone 추천 목록 수정 종료 여부. "종료"/"계속" 이외 응답은 false
	IsModificationDone(ctx context.Context, userInput string) bool
	// ParseConditions 설계 조건 키 추출. 파싱 실패 시 빈 목록
	ParseConditions(ctx context.Context, userInput string) []string
	// IsAlternativeRequest 삭제된 강의 제외 대체 추천 요청 여부. 실패 시 false
	IsAlternativeRequest(ctx context.Context, userInput string, deletedLectures []string) bool
	// DisambiguateLecture 후보 중 가장 가까운 강의명 선택
	// 후보와 매칭 실패 시 모델 응답 원문을 그대로 반환한다
	DisambiguateLecture(ctx context.Context, userInput string, candidates []string) string
	// FilterByDescription 강의 개요 기반으로 추천 목록을 선별
	FilterByDescription(ctx context.Context, recommended []string, infos []LectureDescription, userInput string) []string
	// SuggestAlternatives 삭제된 강의를 제외한 유사 강의 최대 3개 제안
	SuggestAlternatives(ctx context.Context, userInput string, deletedLectures, interests, availableLectures []string) []string
}

// LectureDescription 개요 필터링 입력 트리플
type LectureDescription struct {
	Name        string
	Description string
	Objectives  string
}

type intentService struct {
	completer      llm.Completer
	conditionModel string
	logger         *zap.Logger
}

// NewIntentService IntentService 인스턴스 생성
func NewIntentService(cfg *config.OpenAIConfig, completer llm.Completer, logger *zap.Logger) IntentService {
	return &intentService{
		completer:      completer,
		conditionModel: cfg.ConditionModel,
		logger:         logger,
	}
}

// ────────────────────── 관심 분야 명확성 판단 ──────────────────────

func (s *intentService) ResolveInterest(ctx context.Context, userInput string) ([]string, bool) {
	prompt := fmt.Sprintf(`다음 입력이 명확한 관심 분야인지 판단하세요.
입력: "%s"

1. 이 입력이 명확한 관심 분야이면 "YES: <관심 분야1>, <관심 분야2>, ..." 형식으로 출력하세요.
2. 애매하거나 불분명한 입력이면 "NO: %s"라고 출력하세요.

[YES 예시]
- "인공지능과 웹 개발 분야에 관심 있어" → YES: 인공지능, 웹 개발
- "데이터 분석, 머신러닝" → YES: 데이터 분석, 머신러닝

[NO 예시]
- "그냥 다 추천해줘"
- "모르겠어"`, userInput, fallbackInterest)

	result, err := s.completer.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   100,
		Temperature: 0,
	})
	if err != nil {
		s.logger.Warn("관심 분야 판단 호출 실패", zap.Error(err))
		return []string{userInput}, false
	}

	switch {
	case strings.Contains(result, "YES:"):
		raw := result[strings.Index(result, "YES:")+len("YES:"):]
		var interests []string
		for _, part := range strings.Split(raw, ",") {
			part = strings.Trim(strings.TrimSpace(part), `"`)
			if part != "" {
				interests = append(interests, part)
			}
		}
		return interests, false
	case strings.Contains(result, "NO:"):
		return []string{fallbackInterest}, true
	default:
		return []string{userInput}, false
	}
}

// ────────────────────── 커리큘럼 설계 요청 판단 ──────────────────────

func (s *intentService) IsCurriculumRequest(ctx context.Context, userInput string) bool {
	prompt := fmt.Sprintf(`사용자의 입력: "%s"

아래 조건을 만족할 때 "YES", 아니라면 "NO"라고만 답하세요:
- 사용자가 커리큘럼을 설계하거나 생성해달라고 요청하는 경우

절대 설명 없이 YES 또는 NO만 출력하세요.`, userInput)

	result, err := s.completer.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   3,
		Temperature: 0,
	})
	if err != nil {
		s.logger.Warn("커리큘럼 요청 판단 호출 실패", zap.Error(err))
		return false
	}
	return strings.ToUpper(strings.TrimSpace(result)) == "YES"
}

// ────────────────────── 추가/삭제 요청 분석 ──────────────────────

func (s *intentService) ParseAddRemove(ctx context.Context, userInput string, current, available, previouslyRemoved []string) ([]string, []string) {
	_ = previouslyRemoved // 프롬프트 맥락 유지용 시그니처. 분석 기준은 현재/전체 목록만 쓴다

	prompt := fmt.Sprintf(`다른 설명, 분석 과정은 절대 출력하지 말고, JSON만 출력하세요.

현재 추천된 강의 목록:
%s

추가 가능한 전체 강의 목록:
%s

사용자 입력: "%s"

[분석 기준]
- 만약 입력한 강의명이 추천 리스트에 존재한다면 삭제 대상으로 간주하세요.
- 입력한 강의명이 추천 리스트에 없고 전체 강의 목록에는 있다면 추가 대상으로 간주하세요.

[출력 포맷]
반드시 JSON 형식으로 출력하세요:
{
    "add": ["추가할 강의명1", "추가할 강의명2"],
    "remove": ["삭제할 강의명1", "삭제할 강의명2"]
}`, bulletList(current), bulletList(available), userInput)

	result, err := s.completer.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   100,
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Warn("추가/삭제 분석 호출 실패", zap.Error(err))
		return nil, nil
	}

	jsonText, ok := extractJSONObject(result)
	if !ok {
		s.logger.Warn("추가/삭제 응답에 JSON 객체가 없음", zap.String("raw", result))
		return nil, nil
	}

	var parsed struct {
		Add    []string `json:"add"`
		Remove []string `json:"remove"`
	}
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		s.logger.Warn("추가/삭제 JSON 파싱 실패", zap.String("raw", jsonText), zap.Error(err))
		return nil, nil
	}
	return parsed.Add, parsed.Remove
}

// ────────────────────── 수정 종료 판단 ──────────────────────

func (s *intentService) IsModificationDone(ctx context.Context, userInput string) bool {
	prompt := fmt.Sprintf(`현재는 사용자가 추천된 강의 목록을 수정(추가/삭제)하는 단계입니다.

사용자의 입력: "%s"

- "종료" : 더 이상 추천 강의를 수정할 의도가 없고 커리큘럼 생성을 시작해도 된다는 경우
- "계속" : 강의를 추가/삭제하거나 다른 추천을 요청하는 경우

반드시 "종료" 또는 "계속" 중 하나만 출력하세요.`, userInput)

	result, err := s.completer.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		s.logger.Warn("수정 종료 판단 호출 실패", zap.Error(err))
		return false
	}

	// 이진 분류: "종료" 만 종료로 본다. 그 외 응답은 전부 계속
	cleaned := strings.TrimSpace(strings.ReplaceAll(result, `"`, ""))
	return cleaned == "종료"
}

// ────────────────────── 설계 조건 추출 ──────────────────────

func (s *intentService) ParseConditions(ctx context.Context, userInput string) []string {
	prompt := fmt.Sprintf(`아래는 대학 커리큘럼 설계 챗봇에 입력한 조건입니다.

[입력 예시]
"졸업 꼭 하고 싶고, 팀플은 싫어요. 재수강 포함해줘."

[출력 예시]
["graduation", "no_team_project", "retake"]

아래 입력에 대해, 해당되는 조건 키만 리스트로 출력하세요.
가능한 조건: graduation(졸업), no_team_project(팀플 제외), preferred_professor(선호 교수), retake(재수강)
반드시 리스트만 반환하세요.

[입력]
%s`, userInput)

	result, err := s.completer.Complete(ctx, llm.Request{
		Model:       s.conditionModel,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   40,
		Temperature: 0,
	})
	if err != nil {
		s.logger.Warn("설계 조건 추출 호출 실패", zap.Error(err))
		return nil
	}

	// 모델 출력은 절대 평가하지 않는다: 대괄호 구간만 JSON 배열로 파싱
	arrayText, ok := extractJSONArray(result)
	if !ok {
		return nil
	}
	var parsed []string
	if err := json.Unmarshal([]byte(arrayText), &parsed); err != nil {
		s.logger.Warn("설계 조건 JSON 파싱 실패", zap.String("raw", arrayText), zap.Error(err))
		return nil
	}

	var conditions []string
	for _, key := range parsed {
		if conditionKeys[key] {
			conditions = append(conditions, key)
		}
	}
	return conditions
}

// ────────────────────── 대체 추천 요청 판단 ──────────────────────

func (s *intentService) IsAlternativeRequest(ctx context.Context, userInput string, deletedLectures []string) bool {
	prompt := fmt.Sprintf(`사용자의 입력: "%s"

다음은 사용자가 삭제한 강의 리스트입니다:
%s

입력에 삭제된 강의명 중 하나라도 포함되어 있고,
그 강의를 빼고 다른 강의를 추천해달라는 의도로 보이면 "YES"라고만 출력하세요.

그 외에는 "NO"라고만 출력하세요.
반드시 YES 또는 NO만 출력하세요.`, userInput, bulletList(deletedLectures))

	result, err := s.completer.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   3,
		Temperature: 0,
	})
	if err != nil {
		s.logger.Warn("대체 추천 판단 호출 실패", zap.Error(err))
		return false
	}
	return strings.ToUpper(strings.TrimSpace(result)) == "YES"
}

// ────────────────────── 유사 강의 선택 ──────────────────────

func (s *intentService) DisambiguateLecture(ctx context.Context, userInput string, candidates []string) string {
	prompt := fmt.Sprintf(`아래는 강의명 후보 리스트입니다:
%s

사용자가 입력한 강의 관련 요청: "%s"

위 입력에 가장 가까운 강의명을 하나만 골라서 출력하세요.
다른 설명 없이 강의명 하나만 정확하게 출력하세요.`, bulletList(candidates), userInput)

	result, err := s.completer.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   20,
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Warn("유사 강의 선택 호출 실패", zap.Error(err))
		return userInput
	}

	// 공백 제거 + 소문자화 후 부분 문자열 매칭으로 후보와 대조
	normalized := normalizeLectureName(result)
	for _, candidate := range candidates {
		if strings.Contains(normalizeLectureName(candidate), normalized) {
			return candidate
		}
	}
	return result
}

// ────────────────────── 개요 기반 추천 필터링 ──────────────────────

func (s *intentService) FilterByDescription(ctx context.Context, recommended []string, infos []LectureDescription, userInput string) []string {
	if len(recommended) == 0 {
		return nil
	}

	recommendedSet := make(map[string]bool, len(recommended))
	for _, name := range recommended {
		recommendedSet[name] = true
	}

	var infoLines []string
	for _, info := range infos {
		if recommendedSet[info.Name] {
			infoLines = append(infoLines,
				fmt.Sprintf("%s: %s %s", info.Name, info.Description, info.Objectives))
		}
	}

	prompt := fmt.Sprintf(`사용자의 관심 분야는 다음과 같습니다:
- %s

아래는 추천된 강의 리스트입니다:
%s

각 강의에 대한 설명은 다음과 같습니다:
%s

위 정보를 기반으로, 설명에 사용자의 관심 분야와 관련된 내용이 하나라도 포함되어 있다면, 해당 강의를 선별해주세요.
강의명만 줄바꿈으로 출력하고, 다른 설명은 절대 포함하지 마세요.`,
		userInput, bulletList(recommended), strings.Join(infoLines, "\n"))

	result, err := s.completer.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   200,
		Temperature: 0.5,
	})
	if err != nil {
		s.logger.Warn("개요 필터링 호출 실패", zap.Error(err))
		return nil
	}

	// 원래 추천 목록에 없는 응답 줄은 버린다
	var filtered []string
	for _, line := range strings.Split(result, "\n") {
		line = strings.TrimSpace(line)
		if recommendedSet[line] {
			filtered = append(filtered, line)
		}
	}
	return filtered
}

// ────────────────────── 대체 강의 제안 ──────────────────────

func (s *intentService) SuggestAlternatives(ctx context.Context, userInput string, deletedLectures, interests, availableLectures []string) []string {
	prompt := fmt.Sprintf(`사용자는 관심 분야로 "%s"을 선택했습니다.
그러나 다음 강의들은 제외하고 싶어 합니다:
%s

관심 분야 키워드:
%s

전체 강의 후보 목록은 다음과 같습니다:
%s

위 정보들을 기반으로 제외된 강의 외에 관심 분야와 관련된 강의명을 3개 추천하세요.
출력은 강의명만 줄바꿈으로, 다른 설명은 포함하지 마세요.`,
		userInput, bulletList(deletedLectures), bulletList(interests), bulletList(availableLectures))

	result, err := s.completer.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: "너는 대학생의 강의 선택을 돕는 AI 챗봇이야."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   200,
		Temperature: 0.5,
	})
	if err != nil {
		s.logger.Warn("대체 강의 제안 호출 실패", zap.Error(err))
		return nil
	}

	var suggestions []string
	for _, line := range strings.Split(result, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			suggestions = append(suggestions, line)
		}
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}

// ────────────────────── 파싱 헬퍼 ──────────────────────

// bulletList 프롬프트용 "- 항목" 목록 구성
func bulletList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

// extractJSONObject 주변 텍스트에 섞인 첫 번째 균형 잡힌 {...} 구간 추출
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// extractJSONArray 첫 번째 [...] 구간 추출
func extractJSONArray(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, ']')
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// normalizeLectureName 대소문자/공백 차이를 무시한 비교용 정규화
func normalizeLectureName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}
