package consts

// EngagementPageSize 点赞/转发/回复列表的固定分页大小
const EngagementPageSize = 15

// RelationPageSize 粉丝/关注列表的固定分页大小
const RelationPageSize = 15

// FanoutBackfillSize 关注后回填到时间线的历史帖子数上限
const FanoutBackfillSize = 50

// TimelinePageSize 首页时间线分页大小
const TimelinePageSize = 20

const (
	// TrendTopN 每轮趋势榜保留的条目数
	TrendTopN = 20
	// TrendScoreFactor 热度衰减公式的系数: score = volume * factor / 毫秒间隔
	TrendScoreFactor = 10_000_000
	// WorldwideWOEID 默认 "Worldwide" 榜单的地区编号
	WorldwideWOEID = 1
)

const (
	NotificationFollowed   = "followed"
	NotificationUnfollowed = "unfollowed"
)
