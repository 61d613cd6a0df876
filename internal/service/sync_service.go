package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/denhamvenom/inventoryapp/internal/board"
	"github.com/denhamvenom/inventoryapp/internal/config"
	"github.com/denhamvenom/inventoryapp/internal/constants"
	"github.com/denhamvenom/inventoryapp/internal/logger"
	"github.com/denhamvenom/inventoryapp/internal/models"
	"github.com/denhamvenom/inventoryapp/internal/repository"
)

// BoardClient 看板客户端接口（推送与拉取所需的最小能力）
type BoardClient interface {
	CreateMainItem(ctx context.Context, input board.MainItemInput) (string, error)
	CreateSubitem(ctx context.Context, input board.SubitemInput) (string, error)
	FetchStatuses(ctx context.Context, remoteIDs []string) (map[string]string, error)
	SubitemDelay() time.Duration
}

// SyncService 看板同步服务。
// 推送：把本地未同步订单行按订单分组写入看板（主项 + 子项）。
// 拉取：按行读取看板子项状态，映射后写回对应订单行。
// 互斥锁保证同一进程内推送与拉取不会并发执行，
// 定时任务、下单触发与管理端手动触发共用同一把锁。
type SyncService struct {
	lineRepo  repository.OrderLineRepository
	stateRepo repository.SyncStateRepository
	client    BoardClient
	cfg       config.SyncConfig
	sleep     func(time.Duration)
	mu        sync.Mutex
}

// NewSyncService 创建同步服务
func NewSyncService(lineRepo repository.OrderLineRepository, stateRepo repository.SyncStateRepository, client BoardClient, cfg config.SyncConfig) *SyncService {
	return &SyncService{
		lineRepo:  lineRepo,
		stateRepo: stateRepo,
		client:    client,
		cfg:       cfg,
		sleep:     time.Sleep,
	}
}

// SyncResult 一轮同步的统计
type SyncResult struct {
	OrdersCreated int `json:"orders_created"`
	OrdersFailed  int `json:"orders_failed"`
	LinesSynced   int `json:"lines_synced"`
	StatusUpdates int `json:"status_updates"`
}

// PushOrders 推送全部未同步订单。
// 订单之间相互隔离：单个订单失败只计入失败数，不影响后续订单。
func (s *SyncService) PushOrders(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushOrders(ctx)
}

func (s *SyncService) pushOrders(ctx context.Context) (*SyncResult, error) {
	lines, err := s.lineRepo.ListUnsynced()
	if err != nil {
		return nil, fmt.Errorf("加载未同步订单行失败: %w", err)
	}

	result := &SyncResult{}
	groups := groupOrderLines(lines)
	if len(groups) == 0 {
		return result, nil
	}

	orderDelay := time.Duration(s.cfg.OrderDelayMS) * time.Millisecond
	for i, group := range groups {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if i > 0 && orderDelay > 0 {
			s.sleep(orderDelay)
		}
		synced, err := s.pushOrder(ctx, group)
		result.LinesSynced += synced
		if err != nil {
			result.OrdersFailed++
			logger.Errorw("sync_push_order_failed",
				"order_number", group.OrderNumber,
				"order_type", group.OrderType,
				"lines_synced", synced,
				"error", err,
			)
			continue
		}
		result.OrdersCreated++
	}

	logger.Infow("sync_push_completed",
		"orders_created", result.OrdersCreated,
		"orders_failed", result.OrdersFailed,
		"lines_synced", result.LinesSynced,
	)
	return result, nil
}

// pushOrder 推送单个订单，返回本轮成功写入的行数。
// 已有主项的订单复用台账中的主项 ID，只补建缺失子项。
func (s *SyncService) pushOrder(ctx context.Context, group *orderGroup) (int, error) {
	mainItemID, err := s.ensureMainItem(ctx, group)
	if err != nil {
		return 0, err
	}

	synced := 0
	subitemDelay := s.client.SubitemDelay()
	for i := range group.Lines {
		line := &group.Lines[i]
		if i > 0 && subitemDelay > 0 {
			s.sleep(subitemDelay)
		}
		remoteID, err := s.client.CreateSubitem(ctx, s.buildSubitemInput(mainItemID, group.OrderType, line))
		if err != nil {
			return synced, fmt.Errorf("创建子项失败 part=%s: %w", line.PartID, err)
		}
		if err := s.lineRepo.SetRemoteID(line.ID, remoteID); err != nil {
			return synced, fmt.Errorf("写回子项 ID 失败 line=%d: %w", line.ID, err)
		}
		if err := s.lineRepo.SetStatus(line.ID, constants.LineStatusRequested); err != nil {
			return synced, fmt.Errorf("写回行状态失败 line=%d: %w", line.ID, err)
		}
		synced++
	}
	return synced, nil
}

// ensureMainItem 获取或创建订单对应的看板主项
func (s *SyncService) ensureMainItem(ctx context.Context, group *orderGroup) (string, error) {
	state, err := s.stateRepo.GetByOrderNumber(group.OrderNumber)
	if err != nil {
		return "", fmt.Errorf("读取同步台账失败: %w", err)
	}
	if state != nil && state.MainItemID != "" {
		return state.MainItemID, nil
	}

	first := group.firstLine()
	mainItemID, err := s.client.CreateMainItem(ctx, board.MainItemInput{
		OrderNumber: group.OrderNumber,
		OrderType:   group.OrderType,
		Priority:    first.Priority,
		Department:  first.Department,
		StudentName: first.StudentName,
		Date:        first.Date,
	})
	if err != nil {
		return "", fmt.Errorf("创建主项失败: %w", err)
	}

	if err := s.stateRepo.Upsert(&models.OrderSyncState{
		OrderNumber: group.OrderNumber,
		MainItemID:  mainItemID,
		OrderType:   group.OrderType,
	}); err != nil {
		return "", fmt.Errorf("写入同步台账失败: %w", err)
	}
	return mainItemID, nil
}

// buildSubitemInput 按订单类型组装子项字段
func (s *SyncService) buildSubitemInput(mainItemID, orderType string, line *models.OrderLine) board.SubitemInput {
	input := board.SubitemInput{
		ParentID:  mainItemID,
		PartID:    line.PartID,
		PartName:  line.PartName,
		Quantity:  line.Quantity,
		TotalCost: line.TotalCost.InexactFloat64(),
		Notes:     line.Notes,
	}
	switch orderType {
	case constants.OrderTypeCustom:
		input.Fields = board.CustomFields{
			Supplier:      line.Supplier,
			PartLink:      line.SupplierLink,
			Justification: line.Justification,
		}
	case constants.OrderTypeCSV:
		input.Fields = board.CSVFields{
			QuickOrderLink: constants.CSVOrderSupplierLink,
			CSVFileLink:    line.CSVFileLink,
		}
	default:
		input.Fields = board.DirectoryFields{
			Supplier:      line.Supplier,
			SupplierLink:  line.SupplierLink,
			ProductCode:   line.ProductCode,
			Justification: line.Justification,
		}
	}
	return input
}

// PullStatuses 拉取看板子项状态并写回本地订单行。
// 状态按行粒度生效：每行以自己的子项 ID 为游标查询远端状态，
// 同一订单内各行可以处于不同状态。与本地一致的行不重复写库。
func (s *SyncService) PullStatuses(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pullStatuses(ctx)
}

func (s *SyncService) pullStatuses(ctx context.Context) (*SyncResult, error) {
	lines, err := s.lineRepo.ListSynced()
	if err != nil {
		return nil, fmt.Errorf("加载已同步订单行失败: %w", err)
	}

	result := &SyncResult{}
	if len(lines) == 0 {
		return result, nil
	}

	remoteIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.RemoteID]; ok {
			continue
		}
		seen[line.RemoteID] = struct{}{}
		remoteIDs = append(remoteIDs, line.RemoteID)
	}

	statuses, err := s.client.FetchStatuses(ctx, remoteIDs)
	if err != nil {
		return nil, fmt.Errorf("拉取看板状态失败: %w", err)
	}

	for _, line := range lines {
		remoteStatus, ok := statuses[line.RemoteID]
		if !ok || remoteStatus == "" {
			continue
		}
		localStatus := board.MapStatus(remoteStatus)
		if line.Status == localStatus {
			continue
		}
		if err := s.lineRepo.SetStatus(line.ID, localStatus); err != nil {
			return result, fmt.Errorf("写回行状态失败 line=%d: %w", line.ID, err)
		}
		result.StatusUpdates++
	}

	logger.Infow("sync_pull_completed",
		"lines_checked", len(remoteIDs),
		"status_updates", result.StatusUpdates,
	)
	return result, nil
}

// RunSync 先推送后拉取，返回合并统计。整轮持有同一把锁。
func (s *SyncService) RunSync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pushResult, err := s.pushOrders(ctx)
	if err != nil {
		return pushResult, err
	}
	pullResult, err := s.pullStatuses(ctx)
	if err != nil {
		return pushResult, err
	}
	return &SyncResult{
		OrdersCreated: pushResult.OrdersCreated,
		OrdersFailed:  pushResult.OrdersFailed,
		LinesSynced:   pushResult.LinesSynced,
		StatusUpdates: pullResult.StatusUpdates,
	}, nil
}
