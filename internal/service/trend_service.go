package service

import (
	"Skylark/internal/pkg/consts"
	"Skylark/internal/pkg/mongo"
	"Skylark/internal/pkg/redis"
	"Skylark/internal/repository"
	"context"
	"net/url"
	"strconv"
	"time"

	log "log/slog"

	"github.com/goccy/go-json"
)

const trendCacheTTL = time.Second * 30

type TrendService interface {
	RefreshTrends(ctx context.Context) error
	GetTrends(ctx context.Context, woeid int) (*mongo.TrendModel, error)
}

type TrendServiceImpl struct {
	hashtagRepo repository.HashtagRepo
	trendRepo   mongo.TrendRepo
	now         func() time.Time
}

func NewTrendService(hashtagRepo repository.HashtagRepo, trendRepo mongo.TrendRepo) TrendService {
	return &TrendServiceImpl{
		hashtagRepo: hashtagRepo,
		trendRepo:   trendRepo,
		now:         time.Now,
	}
}

// RefreshTrends 重算全部话题的热度并整体替换 Worldwide 榜单
// 评分随时间衰减: score = volume * factor / 距话题最近一次活跃的毫秒数
// 零流量或缺少活跃时间的话题跳过，评分保持原值
func (s *TrendServiceImpl) RefreshTrends(ctx context.Context) error {
	now := s.now()

	tags, err := s.hashtagRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	scored := 0
	for _, tag := range tags {
		if tag.Volume <= 0 || tag.UpdatedAt.IsZero() {
			continue
		}
		elapsed := now.Sub(tag.UpdatedAt).Milliseconds()
		if elapsed <= 0 {
			elapsed = 1
		}
		score := float64(tag.Volume) * float64(consts.TrendScoreFactor) / float64(elapsed)
		if err = s.hashtagRepo.UpdateScore(ctx, tag.ID, score); err != nil {
			return err
		}
		scored++
	}

	top, err := s.hashtagRepo.GetTop(ctx, consts.TrendTopN)
	if err != nil {
		return err
	}

	entries := make([]mongo.TrendEntry, 0, len(top))
	for _, tag := range top {
		entries = append(entries, mongo.TrendEntry{
			Name:   tag.Name,
			Volume: tag.Volume,
			Score:  tag.Score,
			Query:  url.QueryEscape("#" + tag.Name),
		})
	}

	if err = s.trendRepo.EnsureLocation(ctx, consts.WorldwideWOEID, "Worldwide"); err != nil {
		return err
	}
	if err = s.trendRepo.ReplaceTrends(ctx, consts.WorldwideWOEID, entries, now); err != nil {
		return err
	}
	s.invalidateTrendCache(ctx, consts.WorldwideWOEID)

	log.InfoContext(ctx, "trends refreshed", "scored", scored, "ranked", len(entries))
	return nil
}

// GetTrends 读取某地区榜单，短期缓存降低热点读压力
func (s *TrendServiceImpl) GetTrends(ctx context.Context, woeid int) (*mongo.TrendModel, error) {
	key := consts.TrendListKey + strconv.Itoa(woeid)
	if cached, err := redis.GetValue(ctx, key); err == nil && cached != "" {
		var doc mongo.TrendModel
		if err = json.Unmarshal([]byte(cached), &doc); err == nil {
			return &doc, nil
		}
	}

	doc, err := s.trendRepo.GetByWOEID(ctx, woeid)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	if raw, err := json.Marshal(doc); err == nil {
		if err = redis.SetWithExpiration(ctx, key, string(raw), trendCacheTTL); err != nil {
			log.DebugContext(ctx, "cache trends failed", "key", key, "err", err)
		}
	}
	return doc, nil
}

func (s *TrendServiceImpl) invalidateTrendCache(ctx context.Context, woeid int) {
	key := consts.TrendListKey + strconv.Itoa(woeid)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.DebugContext(ctx, "invalidate trend cache failed", "key", key, "err", err)
	}
}
