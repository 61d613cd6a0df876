package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/denhamvenom/inventoryapp/internal/board"
	"github.com/denhamvenom/inventoryapp/internal/config"
	"github.com/denhamvenom/inventoryapp/internal/models"
	"github.com/denhamvenom/inventoryapp/internal/provider"
	"github.com/denhamvenom/inventoryapp/internal/queue"
	"github.com/denhamvenom/inventoryapp/internal/repository"
	"github.com/denhamvenom/inventoryapp/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type stubBoardClient struct{}

func (stubBoardClient) CreateMainItem(ctx context.Context, input board.MainItemInput) (string, error) {
	return "main-1", nil
}

func (stubBoardClient) CreateSubitem(ctx context.Context, input board.SubitemInput) (string, error) {
	return "sub-1", nil
}

func (stubBoardClient) FetchStatuses(ctx context.Context, remoteIDs []string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (stubBoardClient) SubitemDelay() time.Duration {
	return 0
}

func newTestConsumer(t *testing.T, withSync bool) *Consumer {
	t.Helper()
	container := &provider.Container{Config: &config.Config{}}
	if withSync {
		db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
		if err != nil {
			t.Fatalf("open sqlite failed: %v", err)
		}
		if err := db.AutoMigrate(&models.OrderLine{}, &models.OrderSyncState{}); err != nil {
			t.Fatalf("migrate order tables failed: %v", err)
		}
		lineRepo := repository.NewOrderLineRepository(db)
		stateRepo := repository.NewSyncStateRepository(db)
		container.SyncService = service.NewSyncService(lineRepo, stateRepo, stubBoardClient{}, config.SyncConfig{})
	}
	return NewConsumer(container)
}

func TestHandleSyncPushRejectsBadPayload(t *testing.T) {
	consumer := newTestConsumer(t, true)
	task := asynq.NewTask(queue.TaskSyncPush, []byte("not json"))
	if err := consumer.handleSyncPush(context.Background(), task); err == nil {
		t.Fatalf("bad payload should fail")
	}
}

func TestHandleSyncPushSkipsWhenSyncDisabled(t *testing.T) {
	consumer := newTestConsumer(t, false)
	task, err := queue.NewSyncPushTask(queue.SyncPushPayload{Trigger: "schedule"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleSyncPush(context.Background(), task); err != nil {
		t.Fatalf("disabled sync should be a silent skip, got %v", err)
	}
}

func TestHandleSyncPushAndPullRunAgainstEmptyBacklog(t *testing.T) {
	consumer := newTestConsumer(t, true)

	pushTask, err := queue.NewSyncPushTask(queue.SyncPushPayload{Trigger: "schedule"})
	if err != nil {
		t.Fatalf("build push task failed: %v", err)
	}
	if err := consumer.handleSyncPush(context.Background(), pushTask); err != nil {
		t.Fatalf("push over empty backlog failed: %v", err)
	}

	pullTask, err := queue.NewSyncPullTask(queue.SyncPullPayload{Trigger: "schedule"})
	if err != nil {
		t.Fatalf("build pull task failed: %v", err)
	}
	if err := consumer.handleSyncPull(context.Background(), pullTask); err != nil {
		t.Fatalf("pull over empty backlog failed: %v", err)
	}
}
