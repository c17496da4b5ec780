package service

import (
	"Skylark/internal/model"
	"Skylark/internal/pkg/consts"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trendFixture struct {
	hashtags *memHashtagRepo
	trends   *memTrendRepo
	svc      *TrendServiceImpl
}

func newTrendFixture(now time.Time) *trendFixture {
	f := &trendFixture{
		hashtags: newMemHashtagRepo(),
		trends:   newMemTrendRepo(),
	}
	f.svc = NewTrendService(f.hashtags, f.trends).(*TrendServiceImpl)
	f.svc.now = func() time.Time { return now }
	return f
}

func (f *trendFixture) seedTag(name string, volume int64, lastActive time.Time) {
	f.hashtags.mu.Lock()
	defer f.hashtags.mu.Unlock()
	f.hashtags.nextID++
	f.hashtags.tags[name] = &model.Hashtag{
		ID:        f.hashtags.nextID,
		Name:      name,
		Volume:    volume,
		CreatedAt: lastActive,
		UpdatedAt: lastActive,
	}
}

func TestRefreshTrendsScoreDecaysWithAge(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f := newTrendFixture(now)
	ctx := context.Background()

	// volume 1000, 最近活跃于 100 秒前: 1000 * 10_000_000 / 100_000ms = 100_000
	f.seedTag("golang", 1000, now.Add(-100*time.Second))

	require.NoError(t, f.svc.RefreshTrends(ctx))

	tags, err := f.hashtags.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.InDelta(t, 100_000.0, tags[0].Score, 0.001)
}

func TestRefreshTrendsSkipsZeroVolume(t *testing.T) {
	now := time.Now()
	f := newTrendFixture(now)
	ctx := context.Background()

	f.seedTag("quiet", 0, now.Add(-time.Hour))
	f.seedTag("loud", 10, now.Add(-time.Hour))

	require.NoError(t, f.svc.RefreshTrends(ctx))

	tags, err := f.hashtags.GetAll(ctx)
	require.NoError(t, err)
	for _, tag := range tags {
		if tag.Name == "quiet" {
			assert.Zero(t, tag.Score)
		} else {
			assert.Greater(t, tag.Score, 0.0)
		}
	}

	doc, err := f.trends.GetByWOEID(ctx, consts.WorldwideWOEID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Len(t, doc.Trends, 1)
	assert.Equal(t, "loud", doc.Trends[0].Name)
}

func TestRefreshTrendsRanksTopN(t *testing.T) {
	now := time.Now()
	f := newTrendFixture(now)
	ctx := context.Background()

	// 30 个话题同龄，热度随流量单调，榜单只留流量最高的 20 个
	for i := 1; i <= 30; i++ {
		f.seedTag(fmt.Sprintf("tag%02d", i), int64(i), now.Add(-time.Hour))
	}

	require.NoError(t, f.svc.RefreshTrends(ctx))

	doc, err := f.trends.GetByWOEID(ctx, consts.WorldwideWOEID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Len(t, doc.Trends, consts.TrendTopN)
	assert.Equal(t, "tag30", doc.Trends[0].Name)
	assert.Equal(t, "tag11", doc.Trends[consts.TrendTopN-1].Name)
	for i := 1; i < len(doc.Trends); i++ {
		assert.GreaterOrEqual(t, doc.Trends[i-1].Score, doc.Trends[i].Score)
	}
}

func TestRefreshTrendsReplacesNotMerges(t *testing.T) {
	now := time.Now()
	f := newTrendFixture(now)
	ctx := context.Background()

	f.seedTag("first", 5, now.Add(-time.Hour))
	require.NoError(t, f.svc.RefreshTrends(ctx))

	// 第二轮出现热度更高的新话题，旧榜单整体被替换
	f.seedTag("second", 500, now.Add(-time.Minute))
	require.NoError(t, f.svc.RefreshTrends(ctx))

	doc, err := f.trends.GetByWOEID(ctx, consts.WorldwideWOEID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Len(t, doc.Trends, 2)
	assert.Equal(t, "second", doc.Trends[0].Name)
	assert.Equal(t, "Worldwide", doc.Location)
	assert.Equal(t, now.Unix(), doc.AsOf.Unix())
}

func TestTrendQueryIsURLEscaped(t *testing.T) {
	now := time.Now()
	f := newTrendFixture(now)
	ctx := context.Background()

	f.seedTag("早上好", 10, now.Add(-time.Hour))
	require.NoError(t, f.svc.RefreshTrends(ctx))

	doc, err := f.trends.GetByWOEID(ctx, consts.WorldwideWOEID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Len(t, doc.Trends, 1)
	assert.Contains(t, doc.Trends[0].Query, "%23")
	assert.NotContains(t, doc.Trends[0].Query, "#")
}

func TestGetTrendsMissingLocation(t *testing.T) {
	f := newTrendFixture(time.Now())

	doc, err := f.svc.GetTrends(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, doc)
}
