package wire

import (
	"Bastion/internal/api"
	"Bastion/internal/api/config"
	"Bastion/internal/api/handler"
	"Bastion/internal/job"
	"Bastion/internal/model"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/cron"
	"Bastion/internal/pkg/es"
	"Bastion/internal/pkg/kafka"
	"Bastion/internal/pkg/llm"
	"Bastion/internal/pkg/minio"
	bmongo "Bastion/internal/pkg/mongo"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/pkg/redis"
	"Bastion/internal/pkg/screening"
	"Bastion/internal/pkg/security"
	"Bastion/internal/pkg/util"
	"Bastion/internal/repository"
	"Bastion/internal/service"
	"context"
	log "log/slog"
	"strings"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer top level components main runs
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	Hub          *realtime.Hub
	Producer     kafka.Producer
	KafkaManager *kafka.ConsumerManager // nil when kafka or elasticsearch is not configured
	CronMgr      *cron.Manager
}

// Optional capabilities a nil value disables
type Optional struct {
	Mongo   *mongo.Database
	Elastic *elasticsearch.TypedClient
	Storage *minio.Storage
	LLM     *llm.Client
}

func BuildApplication(db *gorm.DB, opt Optional, cfg *config.Config) (*ApplicationContainer, error) {
	security.Configure(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	if err := util.RegisterValidators(); err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	postRepo := repository.NewPostRepo(db)
	postActionRepo := repository.NewPostActionRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	communityRepo := repository.NewCommunityRepo(db)

	if err := seedRoles(roleRepo, userRepo, cfg.Server.AdminUsername); err != nil {
		return nil, err
	}

	hub := newHub(cfg.Realtime)

	// a typed nil inside an interface would defeat the nil checks downstream
	var rater screening.Rater
	var chatModel service.ChatModel
	if opt.LLM != nil {
		rater = opt.LLM
		chatModel = opt.LLM
	}
	screener := screening.NewGate(screening.NewScorerFromConfig(cfg.Screening, rater), cfg.Screening.Threshold)

	var storage service.ObjectStorage
	if opt.Storage != nil {
		storage = opt.Storage
	}
	var aiHistory bmongo.AIMessageRepo
	if opt.Mongo != nil {
		aiHistory = bmongo.NewAIMessageRepo(opt.Mongo)
	}
	var postESRepo es.PostRepo
	var userESRepo es.UserRepo
	if opt.Elastic != nil {
		postESRepo = es.NewPostRepo(opt.Elastic, cfg.Elastic.Indices.PostIndex)
		userESRepo = es.NewUserRepo(opt.Elastic, cfg.Elastic.Indices.UserIndex)
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	notificationSvc := service.NewNotificationService(notificationRepo, hub)
	userSvc := service.NewUserService(userRepo, userFollowRepo, screener, hub, notificationSvc, producer, storage)
	userFollowSvc := service.NewUserFollowService(userFollowRepo, userRepo, hub, notificationSvc)
	postSvc := service.NewPostService(postRepo, postActionRepo, communityRepo, screener, hub, producer)
	commentSvc := service.NewCommentService(postRepo, postActionRepo, userRepo, screener, hub, notificationSvc)
	actionSvc := service.NewPostActionService(postRepo, postActionRepo, userRepo, hub, notificationSvc)
	messageSvc := service.NewMessageService(messageRepo, userRepo, hub)
	communitySvc := service.NewCommunityService(communityRepo, screener)
	searchSvc := service.NewSearchService(userRepo, postRepo, userFollowRepo, userESRepo, postESRepo)
	agentSvc := service.NewAgentService(chatModel, aiHistory, userRepo, cfg.AI.SystemPrompt, cfg.AI.HistoryTurns)

	wsRouter := handler.NewWsRouter(hub, postSvc, commentSvc, actionSvc, userFollowSvc, messageSvc, userSvc, notificationSvc)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userSvc),
		UserFollowHandler:   handler.NewUserFollowHandler(userFollowSvc),
		PostHandler:         handler.NewPostHandler(postSvc, commentSvc, actionSvc),
		MessageHandler:      handler.NewMessageHandler(messageSvc),
		NotificationHandler: handler.NewNotificationHandler(notificationSvc),
		CommunityHandler:    handler.NewCommunityHandler(communitySvc),
		SearchHandler:       handler.NewSearchHandler(searchSvc),
		AgentHandler:        handler.NewAgentHandler(agentSvc),
		WsHandler:           handler.NewWsHandler(hub, wsRouter, cfg.Server.AllowedOrigins),
	}

	router := api.SetupRouter(handlers, cfg.Server.AllowedOrigins)

	var kafkaMgr *kafka.ConsumerManager
	if len(cfg.Kafka.Brokers) > 0 && postESRepo != nil {
		indexHandler := kafka.NewIndexHandler(postRepo, userRepo, postESRepo, userESRepo)
		kafkaMgr, err = kafka.NewConsumerManager(cfg.Kafka, indexHandler)
		if err != nil {
			return nil, err
		}
	}

	var cveJob *job.CVEDigestJob
	if cfg.Jobs.CVEFeedURL != "" {
		cveJob = job.NewCVEDigestJob(notificationSvc, cfg.Jobs.CVEFeedURL, cfg.Jobs.CVEDigestLimit)
	}
	cronMgr := cron.NewCronManager(
		cfg.Jobs,
		job.NewLikeReconcileJob(postRepo),
		job.NewNotificationPurgeJob(notificationSvc, cfg.Jobs.NotificationRetentionDays),
		cveJob,
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		Hub:          hub,
		Producer:     producer,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}

// newHub the redis registry and relay are only used when redis is connected
func newHub(cfg config.RealtimeConfig) *realtime.Hub {
	rdb := redis.GetRdbClient()
	if rdb == nil || strings.ToLower(cfg.Registry) != "redis" {
		log.Info("realtime running single instance", "registry", "local")
		return realtime.NewHub(realtime.NewLocalRegistry(), nil)
	}
	log.Info("realtime running with redis fan-out", "channel", cfg.FanoutChannel)
	return realtime.NewHub(
		realtime.NewRedisRegistry(rdb, consts.WsOnlineKey, consts.WsOnlineTTL),
		realtime.NewRedisRelay(rdb, cfg.FanoutChannel),
	)
}

func seedRoles(roleRepo repository.RoleRepo, userRepo repository.UserRepo, adminUsername string) error {
	ctx := context.Background()
	if err := roleRepo.EnsureRoles(ctx, model.RoleUser, model.RoleAdmin); err != nil {
		return err
	}
	if adminUsername == "" {
		return nil
	}
	user, err := userRepo.GetUserByUsername(ctx, adminUsername)
	if err != nil {
		return err
	}
	if user == nil {
		log.Warn("admin account not found, skipping role grant", "username", adminUsername)
		return nil
	}
	return roleRepo.AssignRole(ctx, user.ID, model.RoleAdmin)
}
