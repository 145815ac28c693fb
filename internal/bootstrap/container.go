package bootstrap

import (
	"context"
	"fmt"
	"time"

	"ai-journaling-be/internal/config"
	"ai-journaling-be/internal/controller"
	"ai-journaling-be/internal/handler"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/pkg/serverutils"
	"ai-journaling-be/internal/repository/memory"
	"ai-journaling-be/internal/repository/unitofwork"
	"ai-journaling-be/internal/service"
	internalWS "ai-journaling-be/internal/websocket"
	"ai-journaling-be/pkg/authprovider"
	"ai-journaling-be/pkg/cache"
	"ai-journaling-be/pkg/events"
	"ai-journaling-be/pkg/llm"
	"ai-journaling-be/pkg/llm/factory"

	pktNats "ai-journaling-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController     controller.IAuthController
	ChatController     controller.IChatController
	SummaryController  controller.ISummaryController
	JournalController  controller.IJournalController
	ProfileController  controller.IProfileController
	InsightController  controller.IInsightController
	BackfillController controller.IBackfillController
	EventStreamHandler *handler.EventStreamHandler

	// Background services, started by main.
	ConsumerService  service.IConsumerService
	SchedulerService service.ISchedulerService
	BackfillService  service.IBackfillService

	hub     *internalWS.Hub
	natsSub *pktNats.Subscriber
	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. Completion client
	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		APIKey:   cfg.Ai.OpenAIAPIKey,
		BaseURL:  llmBaseURL(cfg),
		Timeout:  time.Duration(cfg.Ai.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	completer := llm.NewCompletionClient(llmProvider)
	sysLogger.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	c := &Container{Logger: sysLogger}

	// 3. Redis backs the profile cache and cross-instance event fan-out.
	// It is optional; without it reads go to the database.
	var profileCache service.ProfileCache
	var hubRedis *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		sysLogger.Warn("BOOTSTRAP", "Redis unavailable, profile cache disabled", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
	} else {
		profileCache = cache.NewProfileCache(rdb, cache.DefaultProfileTTL)
		hubRedis = rdb
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// 4. Event bus. Events go to NATS when it is reachable and always to the
	// websocket hub.
	var natsPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS publisher unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		natsPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS subscriber unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		c.natsSub = natsSub
		c.closers = append(c.closers, natsSub.Close)
	}
	c.hub = internalWS.NewHub(hubRedis, sysLogger)
	eventService := service.NewEventService(service.FanOut(natsPublisher, c.hub), sysLogger)

	// In-process job queue for backfill work.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 5. Services
	authClient := authprovider.NewClient(
		cfg.Auth.ProviderURL,
		cfg.Auth.AnonKey,
		time.Duration(cfg.Auth.ProviderTimeout)*time.Second,
	)
	tokenCache := memory.NewTokenCache(time.Duration(cfg.Auth.TokenCacheTTL) * time.Second)
	authService := service.NewAuthService(uowFactory, authClient, tokenCache, cfg.Auth.JwtSecret, eventService, sysLogger)

	summaryService := service.NewSummaryService(uowFactory, completer, eventService, sysLogger)
	profileService := service.NewProfileService(uowFactory, completer, profileCache, eventService, sysLogger)
	chatService := service.NewChatService(uowFactory, completer, eventService, sysLogger)
	journalService := service.NewJournalService(uowFactory, sysLogger)
	insightService := service.NewInsightService(uowFactory, completer, eventService, sysLogger)

	publisherService := service.NewPublisherService(pubSub, cfg.App.BackfillTopic)
	backfillService := service.NewBackfillService(uowFactory, summaryService, profileService, publisherService, sysLogger)

	c.BackfillService = backfillService
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.BackfillTopic, backfillService, sysLogger)
	c.SchedulerService = service.NewSchedulerService(cfg.App.SchedulerCron, backfillService, sysLogger)

	// 6. Controllers
	auth := serverutils.JwtMiddleware(authService)
	c.AuthController = controller.NewAuthController(authService, auth, cfg.Auth.SecureCookies)
	c.ChatController = controller.NewChatController(chatService, auth)
	c.SummaryController = controller.NewSummaryController(summaryService, auth)
	c.JournalController = controller.NewJournalController(journalService, auth)
	c.ProfileController = controller.NewProfileController(profileService, auth)
	c.InsightController = controller.NewInsightController(insightService, auth)
	c.BackfillController = controller.NewBackfillController(backfillService, auth)
	c.EventStreamHandler = handler.NewEventStreamHandler(c.hub, authService, sysLogger)

	return c, nil
}

// StartWorkers runs the websocket hub, the backfill consumer, the scheduler
// and the NATS backfill.requested subscription.
func (c *Container) StartWorkers(ctx context.Context) error {
	go c.hub.Run(ctx)
	if err := c.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start backfill consumer: %w", err)
	}
	if err := c.SchedulerService.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if c.natsSub != nil {
		err := c.natsSub.Subscribe(ctx, pktNats.Subject(events.TypeBackfillRequested), "backfill-worker", c.BackfillService.HandleBackfillRequested)
		if err != nil {
			c.Logger.Warn("BOOTSTRAP", "NATS backfill subscription failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// Close stops the scheduler and releases broker and cache connections.
func (c *Container) Close() {
	if c.SchedulerService != nil {
		<-c.SchedulerService.Stop().Done()
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.OpenAIBaseURL
}
