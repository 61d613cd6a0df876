package provider

import (
	"time"

	"github.com/denhamvenom/inventoryapp/internal/board"
	"github.com/denhamvenom/inventoryapp/internal/cache"
	"github.com/denhamvenom/inventoryapp/internal/config"
	"github.com/denhamvenom/inventoryapp/internal/logger"
	"github.com/denhamvenom/inventoryapp/internal/models"
	"github.com/denhamvenom/inventoryapp/internal/queue"
	"github.com/denhamvenom/inventoryapp/internal/repository"
	"github.com/denhamvenom/inventoryapp/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	BoardClient *board.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	PartRepo      repository.PartRepository
	StudentRepo   repository.StudentRepository
	OrderLineRepo repository.OrderLineRepository
	SyncStateRepo repository.SyncStateRepository

	// Services
	AuthService   *service.AuthService
	PartService   *service.PartService
	OrderService  *service.OrderService
	UploadService *service.UploadService
	SyncService   *service.SyncService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化看板客户端
	c.initBoardClient()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.PartRepo = repository.NewPartRepository(db)
	c.StudentRepo = repository.NewStudentRepository(db)
	c.OrderLineRepo = repository.NewOrderLineRepository(db)
	c.SyncStateRepo = repository.NewSyncStateRepository(db)
}

func (c *Container) initBoardClient() {
	boardCfg := c.Config.Board
	if boardCfg.Token == "" || boardCfg.BoardID == "" {
		logger.Warnw("provider_board_client_disabled",
			"reason", "token or board_id missing",
		)
		return
	}
	client, err := board.NewClient(board.Config{
		APIURL:       boardCfg.APIURL,
		APIVersion:   boardCfg.APIVersion,
		Token:        boardCfg.Token,
		BoardID:      boardCfg.BoardID,
		MaxRetries:   boardCfg.MaxRetries,
		RetryDelay:   time.Duration(boardCfg.RetryDelayMS) * time.Millisecond,
		BatchSize:    boardCfg.BatchSize,
		BatchDelay:   time.Duration(boardCfg.BatchDelayMS) * time.Millisecond,
		SubitemDelay: time.Duration(boardCfg.SubitemDelayMS) * time.Millisecond,
		HTTPTimeout:  time.Duration(boardCfg.TimeoutMS) * time.Millisecond,
	})
	if err != nil {
		logger.Errorw("provider_init_board_client_failed", "error", err)
		return
	}
	c.BoardClient = client
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.PartService = service.NewPartService(c.PartRepo)
	c.OrderService = service.NewOrderService(c.OrderLineRepo, c.PartRepo, c.StudentRepo, c.QueueClient)
	c.UploadService = service.NewUploadService(c.Config)
	if c.BoardClient != nil {
		c.SyncService = service.NewSyncService(c.OrderLineRepo, c.SyncStateRepo, c.BoardClient, c.Config.Sync)
	}
}
