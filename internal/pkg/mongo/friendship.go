package mongo

// FriendshipModel 用户社交图谱文档，每个用户一份
// 四个数组都按最近优先排序（新成员插到头部）
type FriendshipModel struct {
	UserID        uint64   `bson:"user_id" json:"userId"`
	FollowerIDs   []uint64 `bson:"follower_ids" json:"followerIds"`     // 关注我的人
	FriendIDs     []uint64 `bson:"friend_ids" json:"friendIds"`         // 我关注的人
	LikedPostIDs  []uint64 `bson:"liked_post_ids" json:"likedPostIds"`  // 我点赞过的帖子
	RepostPostIDs []uint64 `bson:"repost_post_ids" json:"repostPostIds"` // 我转发过的帖子
}

// 字段名常量，供仓储层拼 filter 使用
const (
	fieldFollowerIDs   = "follower_ids"
	fieldFriendIDs     = "friend_ids"
	fieldLikedPostIDs  = "liked_post_ids"
	fieldRepostPostIDs = "repost_post_ids"
)
