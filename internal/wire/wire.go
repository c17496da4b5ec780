package wire

import (
	"Skylark/internal/api"
	"Skylark/internal/api/config"
	"Skylark/internal/api/handler"
	"Skylark/internal/job"
	"Skylark/internal/pkg/cron"
	"Skylark/internal/pkg/kafka"
	skymongo "Skylark/internal/pkg/mongo"
	"Skylark/internal/repository"
	"Skylark/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	Producer     *kafka.NotificationProducer
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)
	hashtagRepo := repository.NewHashtagRepo(db)

	friendshipRepo := skymongo.NewFriendshipRepo(mongoDB)
	engagementRepo := skymongo.NewEngagementRepo(mongoDB)
	timelineRepo := skymongo.NewTimelineRepo(mongoDB)
	settingRepo := skymongo.NewSettingRepo(mongoDB)
	trendRepo := skymongo.NewTrendRepo(mongoDB)
	notificationRepo := skymongo.NewNotificationRepo(mongoDB)

	producer, err := kafka.NewNotificationProducer(cfg)
	if err != nil {
		return nil, err
	}

	timelineService := service.NewTimelineService(timelineRepo, friendshipRepo, postRepo)
	userService := service.NewUserService(userRepo, settingRepo, friendshipRepo, timelineRepo)
	relationService := service.NewRelationService(userRepo, friendshipRepo, timelineService, producer)
	engagementService := service.NewEngagementService(userRepo, postRepo, friendshipRepo, engagementRepo)
	postService := service.NewPostService(postRepo, userRepo, hashtagRepo, settingRepo, friendshipRepo, engagementRepo, timelineService)
	trendService := service.NewTrendService(hashtagRepo, trendRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		RelationHandler:     handler.NewRelationHandler(relationService),
		PostHandler:         handler.NewPostHandler(postService),
		EngagementHandler:   handler.NewEngagementHandler(engagementService),
		TimelineHandler:     handler.NewTimelineHandler(timelineService),
		TrendHandler:        handler.NewTrendHandler(trendService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, notificationService)
	if err != nil {
		return nil, err
	}

	trendJob := job.NewTrendJob(trendService)
	cronMgr := cron.NewCronManager(trendJob, cfg)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		Producer:     producer,
	}, nil
}
