package bootstrap

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/archcoach-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/chat"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/evaluation"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/llm"
	projecthttp "github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/http"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/share"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	AllowOrigins string
	ShareBaseURL string
	ShareTTL     time.Duration

	DB        *pgxpool.Pool
	Redis     *redis.Client
	AI        llm.Generator
	AIMetrics func() llm.MetricsSnapshot
	Catalog   *chat.Catalog
	Logger    *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	logger := dep.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(logger))
	r.Use(middleware.CORS(dep.AllowOrigins))

	var dbPing, cachePing httpapi.Pinger
	if dep.DB != nil {
		dbPing = dep.DB
	}
	if dep.Redis != nil {
		cachePing = httpapi.PingFunc(func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() })
	}

	httpapi.RegisterRoot(r)
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dbPing, cachePing, dep.AIMetrics).RegisterRoutes(r)

	api := r.Group("/api")

	evaluator := evaluation.NewPipeline(dep.AI, logger)
	httpapi.NewEvaluateHandler(evaluator).RegisterRoutes(api)

	chatPipeline := chat.NewPipeline(dep.AI, dep.Catalog, logger)
	httpapi.NewChatHandler(chatPipeline, dep.Catalog).RegisterRoutes(api)

	if dep.DB != nil {
		projectSvc := service.NewProjectService(repository.NewProjectRepository(dep.DB), evaluator, logger)
		projecthttp.New(projectSvc, logger).Register(api.Group("/projects"))
	}

	if dep.Redis != nil {
		links := share.NewStore(dep.Redis, dep.ShareBaseURL, dep.ShareTTL)
		httpapi.NewShareHandler(links, logger).RegisterRoutes(r, api)
	}

	return r
}
