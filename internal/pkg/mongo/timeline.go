package mongo

import "time"

// TimelineModel 物化的首页时间线，每个用户一份
type TimelineModel struct {
	UserID uint64          `bson:"user_id" json:"userId"`
	Posts  []TimelineEntry `bson:"posts" json:"posts"` // posted_at 降序
}

// TimelineEntry 时间线上的一条帖子引用
type TimelineEntry struct {
	PostID     uint64    `bson:"post_id" json:"postId"`
	AuthorID   uint64    `bson:"author_id" json:"authorId"`
	PostedAt   time.Time `bson:"posted_at" json:"postedAt"`
	InsertedAt time.Time `bson:"inserted_at" json:"insertedAt"`
}
