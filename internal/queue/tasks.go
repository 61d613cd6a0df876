package queue

import (
	"encoding/json"

	"github.com/denhamvenom/inventoryapp/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskSyncPush 订单推送任务
	TaskSyncPush = constants.TaskSyncPush
	// TaskSyncPull 状态拉取任务
	TaskSyncPull = constants.TaskSyncPull
)

// SyncPushPayload 订单推送任务载荷
type SyncPushPayload struct {
	Trigger string `json:"trigger"`
}

// SyncPullPayload 状态拉取任务载荷
type SyncPullPayload struct {
	Trigger string `json:"trigger"`
}

// NewSyncPushTask 创建订单推送任务
func NewSyncPushTask(payload SyncPushPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSyncPush, body), nil
}

// NewSyncPullTask 创建状态拉取任务
func NewSyncPullTask(payload SyncPullPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSyncPull, body), nil
}
