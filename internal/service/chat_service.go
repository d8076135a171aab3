package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seoyeong-y/navi-ai/internal/dto"
	"github.com/seoyeong-y/navi-ai/internal/model"
	"github.com/seoyeong-y/navi-ai/internal/repository"
)

// ── 채팅 모듈 비즈니스 오류 ──

var (
	ErrSessionNotFound     = errors.New("채팅 세션이 존재하지 않습니다")
	ErrSessionAlreadyEnded = errors.New("이미 종료된 세션입니다")
)

// 대화 턴 처리 단계
const (
	StageChat      = "chat"      // 일반 대화
	StageRecommend = "recommend" // 추천 목록 생성
	StageModify    = "modify"    // 추천 목록 수정
	StageDone      = "done"      // 커리큘럼 생성 완료
)

// ChatService 채팅 세션 수명주기와 대화 턴 오케스트레이션
type ChatService interface {
	StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	EndSession(ctx context.Context, sessionID uint) error
	GetSession(ctx context.Context, sessionID uint) (*dto.SessionResponse, error)
	ListLogs(ctx context.Context, sessionID uint) ([]dto.ChatLogResponse, error)
	// HandleTurn 자유 텍스트 한 턴 처리: 의도 해석 → 데이터 조회/저장 → 로그 기록
	HandleTurn(ctx context.Context, sessionID uint, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error)
}

type chatService struct {
	repo       *repository.Repository
	intent     IntentService
	curriculum CurriculumService
	logger     *zap.Logger
}

// NewChatService ChatService 인스턴스 생성
func NewChatService(repo *repository.Repository, intent IntentService, curriculum CurriculumService, logger *zap.Logger) ChatService {
	return &chatService{
		repo:       repo,
		intent:     intent,
		curriculum: curriculum,
		logger:     logger,
	}
}

// ────────────────────── 세션 수명주기 ──────────────────────

func (s *chatService) StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	sessionID, err := s.repo.Chat.CreateSession(ctx, req.UserID, req.SessionType)
	if err != nil {
		s.logger.Error("채팅 세션 생성 실패", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return &dto.StartSessionResponse{SessionID: sessionID}, nil
}

func (s *chatService) EndSession(ctx context.Context, sessionID uint) error {
	ended, err := s.repo.Chat.EndSession(ctx, sessionID)
	if err != nil {
		s.logger.Error("채팅 세션 종료 실패", zap.Uint("session_id", sessionID), zap.Error(err))
		return err
	}
	if !ended {
		// 세션이 없거나 이미 종료됨을 구분한다
		if _, err := s.repo.Chat.GetSessionByID(ctx, sessionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		return ErrSessionAlreadyEnded
	}
	return nil
}

func (s *chatService) GetSession(ctx context.Context, sessionID uint) (*dto.SessionResponse, error) {
	session, err := s.repo.Chat.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &dto.SessionResponse{
		ID:          session.ID,
		UserID:      session.UserID,
		SessionType: session.SessionType,
		StartedAt:   session.StartedAt,
		EndedAt:     session.EndedAt,
	}, nil
}

func (s *chatService) ListLogs(ctx context.Context, sessionID uint) ([]dto.ChatLogResponse, error) {
	if _, err := s.repo.Chat.GetSessionByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	logs, err := s.repo.Chat.ListLogsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ChatLogResponse, 0, len(logs))
	for _, log := range logs {
		result = append(result, dto.ChatLogResponse{
			ID:        log.ID,
			ChatType:  log.ChatType,
			Message:   log.Message,
			Timestamp: log.Timestamp,
		})
	}
	return result, nil
}

// ────────────────────── 대화 턴 처리 ──────────────────────

func (s *chatService) HandleTurn(ctx context.Context, sessionID uint, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error) {
	session, err := s.repo.Chat.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.EndedAt != nil {
		return nil, ErrSessionAlreadyEnded
	}

	if err := s.repo.Chat.SaveLog(ctx, sessionID, model.ChatTypeUser, req.Message); err != nil {
		s.logger.Error("사용자 로그 저장 실패", zap.Uint("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	var resp *dto.ChatTurnResponse
	switch {
	case len(req.CurrentRecommended) > 0:
		// 추천 목록이 이미 있으면 수정 단계
		resp, err = s.handleModifyTurn(ctx, req)
	case s.intent.IsCurriculumRequest(ctx, req.Message):
		resp, err = s.handleRecommendTurn(ctx, req)
	default:
		resp = &dto.ChatTurnResponse{
			Stage: StageChat,
			Reply: "커리큘럼 설계를 도와드릴게요. 관심 분야를 알려주시거나 커리큘럼 추천을 요청해 주세요.",
		}
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Chat.SaveLog(ctx, sessionID, model.ChatTypeBot, resp.Reply); err != nil {
		s.logger.Error("봇 로그 저장 실패", zap.Uint("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// handleRecommendTurn 관심 분야 해석 → 미이수 필수 과목 → 개요 필터링
func (s *chatService) handleRecommendTurn(ctx context.Context, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error) {
	interests, ambiguous := s.intent.ResolveInterest(ctx, req.Message)
	conditions := s.intent.ParseConditions(ctx, req.Message)

	// 이수 내역 집계 후 대체 교과목 1 홉 확장
	summary := CalculateCredits(req.Completed)
	codes := make([]string, 0, len(summary.CompletedCodes))
	for code := range summary.CompletedCodes {
		codes = append(codes, code)
	}
	completedCodes, err := s.repo.Lecture.ExpandWithReplacements(ctx, codes)
	if err != nil {
		s.logger.Error("대체 교과목 확장 실패", zap.Error(err))
		return nil, err
	}

	grade := req.Grade
	if grade <= 0 {
		grade = 4
	}
	mr, gr, err := s.repo.Lecture.UncompletedRequired(ctx, completedCodes, grade)
	if err != nil {
		s.logger.Error("미이수 필수 과목 조회 실패", zap.Error(err))
		return nil, err
	}
	recommended := append(append([]string{}, mr...), gr...)

	// 관심 분야가 분명할 때만 개요 기반으로 선별한다
	if !ambiguous && len(recommended) > 0 {
		infos, err := s.repo.Lecture.ListInfos(ctx, recommended)
		if err != nil {
			s.logger.Error("강의 개요 조회 실패", zap.Error(err))
			return nil, err
		}
		descriptions := make([]LectureDescription, 0, len(infos))
		for _, info := range infos {
			descriptions = append(descriptions, LectureDescription{
				Name:        info.Name,
				Description: info.Description,
				Objectives:  info.Objectives,
			})
		}
		if filtered := s.intent.FilterByDescription(ctx, recommended, descriptions, req.Message); len(filtered) > 0 {
			recommended = filtered
		}
	}

	reply := fmt.Sprintf("%s 분야 기준으로 %d개 강의를 추천드려요. 수정할 강의가 있으면 말씀해 주세요.",
		strings.Join(interests, ", "), len(recommended))
	if len(recommended) == 0 {
		reply = "추천할 미이수 필수 강의가 없습니다. 다른 조건으로 다시 요청해 주세요."
	}

	return &dto.ChatTurnResponse{
		Stage:         StageRecommend,
		Reply:         reply,
		Interests:     interests,
		Conditions:    conditions,
		Recommended:   recommended,
		CreditSummary: toCreditSummaryResponse(summary),
	}, nil
}

// handleModifyTurn 추가/삭제 파싱 → 종료 판단 → 커리큘럼 생성
func (s *chatService) handleModifyTurn(ctx context.Context, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error) {
	if s.intent.IsModificationDone(ctx, req.Message) {
		return s.finalizeCurriculum(ctx, req)
	}

	available, err := s.repo.Lecture.ListNames(ctx)
	if err != nil {
		s.logger.Error("전체 강의 목록 조회 실패", zap.Error(err))
		return nil, err
	}

	add, remove := s.intent.ParseAddRemove(ctx, req.Message, req.CurrentRecommended, available, req.PreviouslyRemoved)

	// 파서는 자유 형식 JSON 을 내놓으므로 소속 검증은 여기서 한다
	add = intersect(add, available)
	remove = intersect(remove, req.CurrentRecommended)

	if len(add) == 0 && len(remove) == 0 {
		// 삭제된 강의를 뺀 다른 추천을 원하는지 판단한다
		if len(req.PreviouslyRemoved) > 0 && s.intent.IsAlternativeRequest(ctx, req.Message, req.PreviouslyRemoved) {
			suggestions := s.intent.SuggestAlternatives(ctx, req.Message, req.PreviouslyRemoved, nil, available)
			return &dto.ChatTurnResponse{
				Stage:       StageModify,
				Reply:       fmt.Sprintf("대신 이런 강의는 어떠세요: %s", strings.Join(suggestions, ", ")),
				Recommended: req.CurrentRecommended,
				Added:       suggestions,
			}, nil
		}

		// 강의명이 부정확하면 카탈로그 후보와 대조해 본다
		matched := s.intent.DisambiguateLecture(ctx, req.Message, available)
		if containsString(available, matched) && !containsString(req.CurrentRecommended, matched) {
			add = []string{matched}
		}
	}

	recommended := applyAddRemove(req.CurrentRecommended, add, remove)

	return &dto.ChatTurnResponse{
		Stage:       StageModify,
		Reply:       modifyReply(add, remove),
		Recommended: recommended,
		Added:       add,
		Removed:     remove,
	}, nil
}

// finalizeCurriculum 수정 종료: 기본 이름으로 커리큘럼을 만들고 추천 강의를 저장
func (s *chatService) finalizeCurriculum(ctx context.Context, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error) {
	totalCredits := 0
	lectures := make([]dto.CurriLectureRequest, 0, len(req.CurrentRecommended))
	for _, name := range req.CurrentRecommended {
		lecture, err := s.repo.Lecture.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			s.logger.Error("강의 조회 실패", zap.String("name", name), zap.Error(err))
			return nil, err
		}
		totalCredits += lecture.Credits
		lectures = append(lectures, dto.CurriLectureRequest{
			Name:     lecture.Name,
			Credits:  lecture.Credits,
			Type:     lecture.Type,
			Grade:    lecture.Grade,
			Semester: lecture.Semester,
			Code:     lecture.Code,
		})
	}

	curriculum, err := s.curriculum.Create(ctx, &dto.CreateCurriculumRequest{
		UserID:       req.UserID,
		TotalCredits: totalCredits,
	})
	if err != nil {
		return nil, err
	}

	saved, err := s.curriculum.SaveLectures(ctx, curriculum.ID, &dto.SaveLecturesRequest{Lectures: lectures})
	if err != nil {
		return nil, err
	}

	return &dto.ChatTurnResponse{
		Stage:          StageDone,
		Reply:          fmt.Sprintf("%q 커리큘럼을 생성했어요. 강의 %d개를 담았습니다.", curriculum.Name, saved.Inserted),
		CurriculumName: curriculum.Name,
		Recommended:    req.CurrentRecommended,
		SkippedCodes:   saved.SkippedCodes,
	}, nil
}

// ────────────────────── 턴 처리 헬퍼 ──────────────────────

func modifyReply(add, remove []string) string {
	switch {
	case len(add) > 0 && len(remove) > 0:
		return fmt.Sprintf("%s 추가, %s 삭제했어요. 더 수정하시겠어요?",
			strings.Join(add, ", "), strings.Join(remove, ", "))
	case len(add) > 0:
		return fmt.Sprintf("%s 추가했어요. 더 수정하시겠어요?", strings.Join(add, ", "))
	case len(remove) > 0:
		return fmt.Sprintf("%s 삭제했어요. 더 수정하시겠어요?", strings.Join(remove, ", "))
	default:
		return "변경할 강의를 찾지 못했어요. 강의명을 다시 확인해 주세요."
	}
}

// intersect items 중 allowed 에 존재하는 것만 순서 유지로 반환
func intersect(items, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, item := range allowed {
		allowedSet[item] = true
	}
	var result []string
	for _, item := range items {
		if allowedSet[item] {
			result = append(result, item)
		}
	}
	return result
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

// applyAddRemove 현재 목록에 추가/삭제를 반영 (중복 추가 방지)
func applyAddRemove(current, add, remove []string) []string {
	removeSet := make(map[string]bool, len(remove))
	for _, name := range remove {
		removeSet[name] = true
	}

	var result []string
	seen := make(map[string]bool)
	for _, name := range current {
		if !removeSet[name] && !seen[name] {
			result = append(result, name)
			seen[name] = true
		}
	}
	for _, name := range add {
		if !removeSet[name] && !seen[name] {
			result = append(result, name)
			seen[name] = true
		}
	}
	return result
}
