package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seoyeong-y/navi-ai/config"
	"github.com/seoyeong-y/navi-ai/internal/api/handler"
	"github.com/seoyeong-y/navi-ai/internal/api/middleware"
	"github.com/seoyeong-y/navi-ai/pkg/redis"
)

const (
	maxBodyBytes = 1 << 20 // 1MB

	// 대화 턴은 GPT 호출을 동반하므로 별도의 빡빡한 한도를 둔다
	chatRateLimit  = 30
	chatRateWindow = time.Minute
)

// Setup Gin 라우터 엔진 초기화
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 전역 미들웨어 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 헬스 체크 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 채팅 모듈 (GPT 호출 경로는 속도 제한)
		chat := v1.Group("/chat")
		chat.Use(middleware.RateLimit(rdb, chatRateLimit, chatRateWindow))
		{
			chat.POST("/sessions", h.Chat.StartSession)
			chat.GET("/sessions/:id", h.Chat.GetSession)
			chat.POST("/sessions/:id/end", h.Chat.EndSession)
			chat.GET("/sessions/:id/logs", h.Chat.ListLogs)
			chat.POST("/sessions/:id/messages", h.Chat.HandleTurn)
		}

		// 커리큘럼 모듈
		curriculums := v1.Group("/curriculums")
		{
			curriculums.GET("", h.Curriculum.ListNames)
			curriculums.POST("", h.Curriculum.Create)
			curriculums.DELETE("", h.Curriculum.Delete)
			curriculums.POST("/credits", h.Curriculum.Credits)
			curriculums.GET("/:id", h.Curriculum.GetByID)
			curriculums.GET("/:id/lectures", h.Curriculum.ListLectures)
			curriculums.POST("/:id/lectures", h.Curriculum.SaveLectures)
		}

		// 강의 카탈로그 모듈
		lectures := v1.Group("/lectures")
		{
			lectures.GET("", h.Lecture.List)
			lectures.GET("/names", h.Lecture.ListNames)
			lectures.GET("/:name", h.Lecture.GetByName)
		}

		// 교수 모듈
		professors := v1.Group("/professors")
		{
			professors.GET("/:name", h.Professor.GetByName)
			professors.GET("/:name/lectures", h.Professor.ListLectures)
		}

		// 내보내기 모듈
		export := v1.Group("/export")
		{
			export.GET("/curriculums/:id", h.Export.ExportCurriculum)
		}
	}

	return r
}
