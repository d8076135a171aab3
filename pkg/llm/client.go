package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/seoyeong-y/navi-ai/config"
)

// Message 역할 태그가 붙은 대화 메시지
type Message struct {
	Role    string `json:"role"` // system | user | assistant
	Content string `json:"content"`
}

// Request 단일 완성 요청
// Model 이 비어 있으면 클라이언트 기본 모델을 사용한다
type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Completer GPT 완성 인터페이스
// 의도 해석 단계들은 이 인터페이스만 의존한다 (테스트에서 목으로 대체)
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client OpenAI chat completions HTTP 클라이언트
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient 설정으로 OpenAI 클라이언트 생성
func NewClient(cfg *config.OpenAIConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai.api_key 가 비어 있습니다")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4-turbo"
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

// ── wire 구조체 ──

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete 메시지 목록을 제출하고 단일 텍스트 완성을 반환
// 재시도는 하지 않는다. 실패 처리(기본값 대체)는 호출 측 책임이다
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	temp := req.Temperature
	body := chatCompletionRequest{
		Model:       model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: &temp,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("요청 직렬화 실패: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("요청 생성 실패: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion 호출 실패: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("응답 읽기 실패: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("OpenAI 응답 오류",
			zap.Int("status", resp.StatusCode),
			zap.String("model", model),
		)
		return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("응답 파싱 실패: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai 오류: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion 응답에 choices 가 없습니다")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
