package service

// ActionResult 幂等写操作的结果
// OK 表示请求被接受，Modified 表示状态确实发生了变化
// 重复的关注/点赞/转发请求返回 OK 且 Modified 为 false
type ActionResult struct {
	OK       bool
	Modified bool
}

var (
	actionApplied = &ActionResult{OK: true, Modified: true}
	actionNoop    = &ActionResult{OK: true, Modified: false}
)
