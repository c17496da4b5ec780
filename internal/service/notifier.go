package service

// NotificationEvent 关注动作产生的通知事件，经由消息队列异步落库
type NotificationEvent struct {
	ReceiverID uint64 `json:"receiver_id"`
	ActorID    uint64 `json:"actor_id"`
	Type       string `json:"type"`
}

// Notifier 通知触发器，投递失败不阻塞主流程
type Notifier interface {
	Notify(event *NotificationEvent)
}
