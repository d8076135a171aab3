package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seoyeong-y/navi-ai/config"
)

// Client Redis 클라이언트 래퍼
// 현재 요청 속도 제한과 강의 목록 캐시에 사용한다
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient Redis 연결 생성 후 Ping 헬스체크 수행
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	logger.Info("Redis 연결 성공", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// Close 연결 종료
func (c *Client) Close() error {
	return c.rdb.Close()
}

// ── 요청 속도 제한 ──

// CheckRateLimit 고정 윈도우 카운터 기반 속도 제한
// 윈도우 내 요청 수가 limit 이하이면 true 를 반환한다
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── 강의 카탈로그 캐시 ──

const lectureCachePrefix = "lecture:cache:"

// GetCache 캐시 조회. 키가 없으면 ok=false
func (c *Client) GetCache(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, lectureCachePrefix+key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetCache 캐시 저장 (TTL 지정)
func (c *Client) SetCache(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, lectureCachePrefix+key, value, ttl).Err()
}
