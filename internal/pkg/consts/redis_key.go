package consts

const (
	UserFollowerCountKey = "user:follower:count:"
	UserFriendCountKey   = "user:friend:count:"
	UserStatusCountKey   = "user:status:count:"
	PostLikerCountKey    = "post:liker:count:"
	TrendListKey         = "trend:list:"
)

const (
	TrendRefreshLock = "trend:refresh:lock"
)
