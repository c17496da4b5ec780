package mongo

// EngagementModel 帖子互动文档，每个帖子一份，首次互动时按需创建
type EngagementModel struct {
	PostID       uint64   `bson:"post_id" json:"postId"`
	LikedBy      []uint64 `bson:"liked_by" json:"likedBy"`            // 点赞用户，最近优先
	RepostedBy   []uint64 `bson:"reposted_by" json:"repostedBy"`      // 转发用户，最近优先
	ReplyPostIDs []uint64 `bson:"reply_post_ids" json:"replyPostIds"` // 回复帖子
}

const (
	fieldLikedBy      = "liked_by"
	fieldRepostedBy   = "reposted_by"
	fieldReplyPostIDs = "reply_post_ids"
)
