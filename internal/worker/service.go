package worker

import (
	"context"
	"errors"
	"time"

	"github.com/denhamvenom/inventoryapp/internal/config"
	"github.com/denhamvenom/inventoryapp/internal/logger"
	"github.com/denhamvenom/inventoryapp/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务，同时承担同步调度（定时入队推送与拉取任务）
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.syncEnabled() {
		go s.runPushLoop(ctx)
		go s.runPullLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) syncEnabled() bool {
	return s != nil &&
		s.consumer != nil &&
		s.consumer.Container != nil &&
		s.consumer.SyncService != nil &&
		s.consumer.QueueClient != nil &&
		s.consumer.Config.Sync.Enabled
}

// runPushLoop 按固定间隔入队推送任务。
// 推送与拉取的互斥由 SyncService 内部的锁保证，
// 队列里同时出现多个同步任务也不会并发执行。
func (s *Service) runPushLoop(ctx context.Context) {
	interval := time.Duration(s.consumer.Config.Sync.PushIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	enqueue := func() {
		if err := s.consumer.QueueClient.EnqueueSyncPush(queue.SyncPushPayload{Trigger: "schedule"}); err != nil {
			logger.Warnw("worker_schedule_sync_push_failed", "error", err)
		}
	}
	enqueue()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue()
		}
	}
}

// runPullLoop 按固定间隔入队拉取任务
func (s *Service) runPullLoop(ctx context.Context) {
	interval := time.Duration(s.consumer.Config.Sync.PullIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	enqueue := func() {
		if err := s.consumer.QueueClient.EnqueueSyncPull(queue.SyncPullPayload{Trigger: "schedule"}); err != nil {
			logger.Warnw("worker_schedule_sync_pull_failed", "error", err)
		}
	}
	enqueue()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue()
		}
	}
}
