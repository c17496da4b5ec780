package api

import "Skylark/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	RelationHandler     *handler.RelationHandler
	PostHandler         *handler.PostHandler
	EngagementHandler   *handler.EngagementHandler
	TimelineHandler     *handler.TimelineHandler
	TrendHandler        *handler.TrendHandler
	NotificationHandler *handler.NotificationHandler
}
