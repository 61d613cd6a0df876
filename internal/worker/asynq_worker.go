package worker

import (
	"context"
	"encoding/json"

	"github.com/denhamvenom/inventoryapp/internal/logger"
	"github.com/denhamvenom/inventoryapp/internal/provider"
	"github.com/denhamvenom/inventoryapp/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskSyncPush, c.handleSyncPush)
	mux.HandleFunc(queue.TaskSyncPull, c.handleSyncPull)
}

func (c *Consumer) handleSyncPush(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_sync_push_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SyncPushPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_sync_push_unmarshal_failed", "error", err)
		return err
	}
	if c.SyncService == nil {
		logger.Debugw("worker_sync_push_skip_sync_disabled", "trigger", payload.Trigger)
		return nil
	}
	result, err := c.SyncService.PushOrders(ctx)
	if err != nil {
		logger.Warnw("worker_sync_push_failed", "trigger", payload.Trigger, "error", err)
		return err
	}
	logger.Infow("worker_sync_push_done",
		"trigger", payload.Trigger,
		"orders_created", result.OrdersCreated,
		"orders_failed", result.OrdersFailed,
		"lines_synced", result.LinesSynced,
	)
	return nil
}

func (c *Consumer) handleSyncPull(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_sync_pull_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SyncPullPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_sync_pull_unmarshal_failed", "error", err)
		return err
	}
	if c.SyncService == nil {
		logger.Debugw("worker_sync_pull_skip_sync_disabled", "trigger", payload.Trigger)
		return nil
	}
	result, err := c.SyncService.PullStatuses(ctx)
	if err != nil {
		logger.Warnw("worker_sync_pull_failed", "trigger", payload.Trigger, "error", err)
		return err
	}
	logger.Infow("worker_sync_pull_done",
		"trigger", payload.Trigger,
		"status_updates", result.StatusUpdates,
	)
	return nil
}
