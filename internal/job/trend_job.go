package job

import (
	"Skylark/internal/pkg/consts"
	"Skylark/internal/pkg/logger"
	"Skylark/internal/pkg/redis"
	"Skylark/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const trendLockTTL = time.Second * 25

type TrendJob struct {
	trendService service.TrendService
}

func NewTrendJob(trendService service.TrendService) *TrendJob {
	return &TrendJob{
		trendService: trendService,
	}
}

// Run 定时刷新趋势榜
// 通过分布式锁保证多实例部署时每轮只有一个实例执行
func (s *TrendJob) Run() {
	traceID := "job-trend-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	acquired, err := redis.TryLock(ctx, consts.TrendRefreshLock, traceID, trendLockTTL, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire trend refresh lock error", "err", err)
		return
	}
	if !acquired {
		return
	}
	defer redis.UnLock(ctx, consts.TrendRefreshLock, traceID)

	start := time.Now()
	if err = s.trendService.RefreshTrends(ctx); err != nil {
		log.ErrorContext(ctx, "refresh trends error", "err", err)
		return
	}
	log.InfoContext(ctx, "TrendJob finished", "cost", time.Since(start).String())
}
