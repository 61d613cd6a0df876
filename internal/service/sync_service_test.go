package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/denhamvenom/inventoryapp/internal/board"
	"github.com/denhamvenom/inventoryapp/internal/config"
	"github.com/denhamvenom/inventoryapp/internal/constants"
	"github.com/denhamvenom/inventoryapp/internal/models"
	"github.com/denhamvenom/inventoryapp/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeBoardClient struct {
	mainCalls    int
	subitemCalls int
	failMainFor  map[string]bool
	failSubitems map[string]bool
	statuses     map[string]string
	subitems     []board.SubitemInput
}

func (f *fakeBoardClient) CreateMainItem(ctx context.Context, input board.MainItemInput) (string, error) {
	f.mainCalls++
	if f.failMainFor[input.OrderNumber] {
		return "", errors.New("board unavailable")
	}
	return fmt.Sprintf("main-%d", f.mainCalls), nil
}

func (f *fakeBoardClient) CreateSubitem(ctx context.Context, input board.SubitemInput) (string, error) {
	f.subitemCalls++
	if f.failSubitems[input.PartID] {
		return "", errors.New("board unavailable")
	}
	f.subitems = append(f.subitems, input)
	return fmt.Sprintf("sub-%d", f.subitemCalls), nil
}

func (f *fakeBoardClient) FetchStatuses(ctx context.Context, remoteIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(remoteIDs))
	for _, id := range remoteIDs {
		if status, ok := f.statuses[id]; ok {
			out[id] = status
		}
	}
	return out, nil
}

func (f *fakeBoardClient) SubitemDelay() time.Duration {
	return 0
}

func setupSyncServiceTest(t *testing.T, client *fakeBoardClient) (*SyncService, *repository.GormOrderLineRepository, *repository.GormSyncStateRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.OrderLine{}, &models.OrderSyncState{}); err != nil {
		t.Fatalf("migrate order tables failed: %v", err)
	}
	lineRepo := repository.NewOrderLineRepository(db)
	stateRepo := repository.NewSyncStateRepository(db)
	svc := NewSyncService(lineRepo, stateRepo, client, config.SyncConfig{
		Enabled:             true,
		PushIntervalMinutes: 5,
		PullIntervalMinutes: 30,
		OrderDelayMS:        0,
	})
	svc.sleep = func(time.Duration) {}
	return svc, lineRepo, stateRepo
}

func createSyncLine(t *testing.T, repo *repository.GormOrderLineRepository, orderNumber, partID, productCode string) {
	t.Helper()
	err := repo.CreateBatch([]models.OrderLine{{
		OrderNumber: orderNumber,
		Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Department:  "Mechanical",
		StudentName: "Alex Chen",
		Priority:    constants.PriorityMedium,
		PartID:      partID,
		PartName:    "Part " + partID,
		Quantity:    2,
		UnitCost:    models.NewMoneyFromDecimal(decimal.NewFromInt(4)),
		TotalCost:   models.NewMoneyFromDecimal(decimal.NewFromInt(8)),
		ProductCode: productCode,
		Status:      constants.LineStatusPending,
	}})
	if err != nil {
		t.Fatalf("create line failed: %v", err)
	}
}

func TestPushOrdersCreatesMainItemAndSubitems(t *testing.T) {
	client := &fakeBoardClient{}
	svc, lineRepo, stateRepo := setupSyncServiceTest(t, client)

	createSyncLine(t, lineRepo, "ORD-20260110-001", "FAST-001", "91251A540")
	createSyncLine(t, lineRepo, "ORD-20260110-001", "GEAR-002", "217-5466")

	result, err := svc.PushOrders(context.Background())
	if err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if result.OrdersCreated != 1 || result.OrdersFailed != 0 {
		t.Fatalf("result want created=1 failed=0 got %+v", result)
	}
	if result.LinesSynced != 2 {
		t.Fatalf("lines synced want 2 got %d", result.LinesSynced)
	}
	if client.mainCalls != 1 {
		t.Fatalf("main item calls want 1 got %d", client.mainCalls)
	}

	lines, err := lineRepo.ListByOrderNumber("ORD-20260110-001")
	if err != nil {
		t.Fatalf("reload lines failed: %v", err)
	}
	for _, line := range lines {
		if !line.Synced() {
			t.Fatalf("line %s should be synced", line.PartID)
		}
		if line.Status != constants.LineStatusRequested {
			t.Fatalf("line %s status want Requested got %s", line.PartID, line.Status)
		}
	}

	state, err := stateRepo.GetByOrderNumber("ORD-20260110-001")
	if err != nil || state == nil {
		t.Fatalf("sync state missing: state=%v err=%v", state, err)
	}
	if state.OrderType != constants.OrderTypeDirectory {
		t.Fatalf("order type want Directory Order got %s", state.OrderType)
	}
}

func TestPushOrdersIsolatesFailingOrder(t *testing.T) {
	client := &fakeBoardClient{failMainFor: map[string]bool{"ORD-20260111-001": true}}
	svc, lineRepo, _ := setupSyncServiceTest(t, client)

	createSyncLine(t, lineRepo, "ORD-20260111-001", "PLAT-001", "")
	createSyncLine(t, lineRepo, "ORD-20260111-002", "WHEE-004", "")

	result, err := svc.PushOrders(context.Background())
	if err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if result.OrdersCreated != 1 {
		t.Fatalf("orders created want 1 got %d", result.OrdersCreated)
	}
	if result.OrdersFailed != 1 {
		t.Fatalf("orders failed want 1 got %d", result.OrdersFailed)
	}

	lines, err := lineRepo.ListByOrderNumber("ORD-20260111-002")
	if err != nil {
		t.Fatalf("reload lines failed: %v", err)
	}
	if len(lines) != 1 || !lines[0].Synced() {
		t.Fatalf("healthy order should still sync: %+v", lines)
	}
}

func TestPushOrdersReusesMainItemAfterPartialFailure(t *testing.T) {
	client := &fakeBoardClient{failSubitems: map[string]bool{"AXLE-002": true}}
	svc, lineRepo, stateRepo := setupSyncServiceTest(t, client)

	createSyncLine(t, lineRepo, "ORD-20260112-001", "AXLE-001", "")
	createSyncLine(t, lineRepo, "ORD-20260112-001", "AXLE-002", "")

	result, err := svc.PushOrders(context.Background())
	if err != nil {
		t.Fatalf("first push failed: %v", err)
	}
	if result.OrdersFailed != 1 || result.LinesSynced != 1 {
		t.Fatalf("first push want failed=1 synced=1 got %+v", result)
	}

	state, err := stateRepo.GetByOrderNumber("ORD-20260112-001")
	if err != nil || state == nil {
		t.Fatalf("sync state should survive partial failure: state=%v err=%v", state, err)
	}
	firstMainItemID := state.MainItemID

	client.failSubitems = nil
	result, err = svc.PushOrders(context.Background())
	if err != nil {
		t.Fatalf("second push failed: %v", err)
	}
	if result.OrdersCreated != 1 || result.LinesSynced != 1 {
		t.Fatalf("second push want created=1 synced=1 got %+v", result)
	}
	if client.mainCalls != 1 {
		t.Fatalf("main item should be reused, calls want 1 got %d", client.mainCalls)
	}

	state, err = stateRepo.GetByOrderNumber("ORD-20260112-001")
	if err != nil || state == nil || state.MainItemID != firstMainItemID {
		t.Fatalf("main item id should be stable: %+v err=%v", state, err)
	}
	retried := client.subitems[len(client.subitems)-1]
	if retried.ParentID != firstMainItemID {
		t.Fatalf("retried subitem parent want %s got %s", firstMainItemID, retried.ParentID)
	}
}

func TestPushOrdersNoopWhenEverythingSynced(t *testing.T) {
	client := &fakeBoardClient{}
	svc, lineRepo, _ := setupSyncServiceTest(t, client)

	createSyncLine(t, lineRepo, "ORD-20260113-001", "CHAI-001", "")
	if _, err := svc.PushOrders(context.Background()); err != nil {
		t.Fatalf("first push failed: %v", err)
	}

	result, err := svc.PushOrders(context.Background())
	if err != nil {
		t.Fatalf("second push failed: %v", err)
	}
	if result.OrdersCreated != 0 || result.LinesSynced != 0 {
		t.Fatalf("second push should be a no-op, got %+v", result)
	}
	if client.mainCalls != 1 {
		t.Fatalf("main item calls want 1 got %d", client.mainCalls)
	}
}

func TestPullStatusesUpdatesEachLineFromItsSubitem(t *testing.T) {
	client := &fakeBoardClient{}
	svc, lineRepo, _ := setupSyncServiceTest(t, client)

	createSyncLine(t, lineRepo, "ORD-20260114-001", "MOTO-001", "")
	createSyncLine(t, lineRepo, "ORD-20260114-001", "MOTO-002", "")
	if _, err := svc.PushOrders(context.Background()); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	client.statuses = map[string]string{
		"sub-1": constants.BoardStatusArrived,
		"sub-2": constants.BoardStatusCannotOrder,
	}

	result, err := svc.PullStatuses(context.Background())
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if result.StatusUpdates != 2 {
		t.Fatalf("status updates want 2 got %d", result.StatusUpdates)
	}

	lines, err := lineRepo.ListByOrderNumber("ORD-20260114-001")
	if err != nil {
		t.Fatalf("reload lines failed: %v", err)
	}
	want := map[string]string{
		"MOTO-001": constants.LineStatusReceived,
		"MOTO-002": constants.LineStatusCancelled,
	}
	for _, line := range lines {
		if line.Status != want[line.PartID] {
			t.Fatalf("line %s status want %s got %s", line.PartID, want[line.PartID], line.Status)
		}
	}

	result, err = svc.PullStatuses(context.Background())
	if err != nil {
		t.Fatalf("second pull failed: %v", err)
	}
	if result.StatusUpdates != 0 {
		t.Fatalf("second pull should not rewrite statuses, got %d", result.StatusUpdates)
	}
}

func TestPullStatusesSkipsLinesWithoutRemoteStatus(t *testing.T) {
	client := &fakeBoardClient{}
	svc, lineRepo, _ := setupSyncServiceTest(t, client)

	createSyncLine(t, lineRepo, "ORD-20260116-001", "BELT-001", "")
	createSyncLine(t, lineRepo, "ORD-20260116-001", "BELT-002", "")
	if _, err := svc.PushOrders(context.Background()); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	client.statuses = map[string]string{"sub-1": constants.BoardStatusOrderedWait}

	result, err := svc.PullStatuses(context.Background())
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if result.StatusUpdates != 1 {
		t.Fatalf("status updates want 1 got %d", result.StatusUpdates)
	}

	lines, err := lineRepo.ListByOrderNumber("ORD-20260116-001")
	if err != nil {
		t.Fatalf("reload lines failed: %v", err)
	}
	for _, line := range lines {
		switch line.PartID {
		case "BELT-001":
			if line.Status != constants.LineStatusOrdered {
				t.Fatalf("line %s status want Ordered got %s", line.PartID, line.Status)
			}
		case "BELT-002":
			if line.Status != constants.LineStatusRequested {
				t.Fatalf("line %s should keep its local status, got %s", line.PartID, line.Status)
			}
		}
	}
}

func TestPullStatusesPassesThroughUnmappedStatus(t *testing.T) {
	client := &fakeBoardClient{}
	svc, lineRepo, _ := setupSyncServiceTest(t, client)

	createSyncLine(t, lineRepo, "ORD-20260115-001", "ELEC-001", "")
	if _, err := svc.PushOrders(context.Background()); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	client.statuses = map[string]string{"sub-1": "On Hold"}

	result, err := svc.PullStatuses(context.Background())
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if result.StatusUpdates != 1 {
		t.Fatalf("status updates want 1 got %d", result.StatusUpdates)
	}

	lines, err := lineRepo.ListByOrderNumber("ORD-20260115-001")
	if err != nil {
		t.Fatalf("reload lines failed: %v", err)
	}
	if lines[0].Status != "On Hold" {
		t.Fatalf("unmapped status should pass through, got %s", lines[0].Status)
	}
}

func TestConcurrentPushesCreateSingleMainItem(t *testing.T) {
	client := &fakeBoardClient{}
	svc, lineRepo, _ := setupSyncServiceTest(t, client)

	createSyncLine(t, lineRepo, "ORD-20260117-001", "GEAR-001", "")
	createSyncLine(t, lineRepo, "ORD-20260117-001", "GEAR-002", "")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.PushOrders(context.Background()); err != nil {
				t.Errorf("push failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if client.mainCalls != 1 {
		t.Fatalf("main item calls want 1 got %d", client.mainCalls)
	}
	if client.subitemCalls != 2 {
		t.Fatalf("subitem calls want 2 got %d", client.subitemCalls)
	}
}
