package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/denhamvenom/inventoryapp/internal/constants"
	"github.com/denhamvenom/inventoryapp/internal/logger"
	"github.com/denhamvenom/inventoryapp/internal/models"
	"github.com/denhamvenom/inventoryapp/internal/queue"
	"github.com/denhamvenom/inventoryapp/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderService 订单服务：目录下单、定制申请、CSV 汇总单
type OrderService struct {
	lineRepo    repository.OrderLineRepository
	partRepo    repository.PartRepository
	studentRepo repository.StudentRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(lineRepo repository.OrderLineRepository, partRepo repository.PartRepository, studentRepo repository.StudentRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		lineRepo:    lineRepo,
		partRepo:    partRepo,
		studentRepo: studentRepo,
		queueClient: queueClient,
	}
}

// SubmitOrderItem 目录下单条目
type SubmitOrderItem struct {
	PartID   string `json:"part_id"`
	Quantity int    `json:"quantity"`
}

// SubmitOrderInput 目录下单输入
type SubmitOrderInput struct {
	StudentName string            `json:"student_name"`
	Department  string            `json:"department"`
	Priority    string            `json:"priority"`
	Notes       string            `json:"notes"`
	Items       []SubmitOrderItem `json:"items"`
}

// SubmitCustomRequestInput 定制申请输入（目录外零件）
type SubmitCustomRequestInput struct {
	StudentName   string          `json:"student_name"`
	Department    string          `json:"department"`
	Priority      string          `json:"priority"`
	PartName      string          `json:"part_name"`
	Supplier      string          `json:"supplier"`
	PartLink      string          `json:"part_link"`
	Quantity      int             `json:"quantity"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Justification string          `json:"justification"`
	Notes         string          `json:"notes"`
}

// SubmitCSVOrderInput CSV 汇总单输入（WCP 批量导入）
type SubmitCSVOrderInput struct {
	StudentName string          `json:"student_name"`
	Department  string          `json:"department"`
	Priority    string          `json:"priority"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	CSVFileLink string          `json:"csv_file_link"`
	Notes       string          `json:"notes"`
}

// SubmitOrder 提交目录订单，返回订单编号与创建的行
func (s *OrderService) SubmitOrder(input SubmitOrderInput) (string, []models.OrderLine, error) {
	if len(input.Items) == 0 {
		return "", nil, ErrOrderEmpty
	}
	if err := s.checkStudent(input.StudentName); err != nil {
		return "", nil, err
	}

	now := time.Now()
	orderNumber, err := s.nextOrderNumber(now)
	if err != nil {
		return "", nil, err
	}

	lines := make([]models.OrderLine, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return "", nil, fmt.Errorf("%w: %s", ErrQuantityInvalid, item.PartID)
		}
		part, err := s.partRepo.GetByPartID(item.PartID)
		if err != nil {
			return "", nil, err
		}
		if part == nil {
			return "", nil, fmt.Errorf("%w: %s", ErrPartNotFound, item.PartID)
		}
		totalCost := part.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, models.OrderLine{
			OrderNumber:  orderNumber,
			Date:         now,
			Department:   input.Department,
			StudentName:  strings.TrimSpace(input.StudentName),
			Priority:     normalizePriority(input.Priority),
			PartID:       part.PartID,
			PartName:     part.PartName,
			Category:     part.Category,
			Quantity:     item.Quantity,
			UnitCost:     part.UnitCost,
			TotalCost:    models.NewMoneyFromDecimal(totalCost),
			Supplier:     part.Supplier,
			SupplierLink: part.SupplierLink,
			ProductCode:  part.ProductCode,
			Status:       constants.LineStatusPending,
			Notes:        input.Notes,
		})
	}

	if err := s.lineRepo.CreateBatch(lines); err != nil {
		return "", nil, fmt.Errorf("创建订单行失败: %w", err)
	}

	// 常备库存件在下单时即扣减库存
	for _, item := range input.Items {
		part, err := s.partRepo.GetByPartID(item.PartID)
		if err != nil || part == nil || !part.IsInventory {
			continue
		}
		if err := s.partRepo.AdjustStock(part.PartID, -item.Quantity); err != nil {
			logger.Warnw("order_stock_adjust_failed",
				"order_number", orderNumber,
				"part_id", part.PartID,
				"error", err,
			)
		}
	}

	s.enqueueSyncPush(orderNumber)
	logger.Infow("order_submitted",
		"order_number", orderNumber,
		"order_type", constants.OrderTypeDirectory,
		"student", input.StudentName,
		"lines", len(lines),
	)
	return orderNumber, lines, nil
}

// SubmitCustomRequest 提交定制申请，返回订单编号与分配的定制件号
func (s *OrderService) SubmitCustomRequest(input SubmitCustomRequestInput) (string, string, error) {
	if err := s.checkStudent(input.StudentName); err != nil {
		return "", "", err
	}
	if strings.TrimSpace(input.PartName) == "" {
		return "", "", fmt.Errorf("%w: 零件名称不能为空", ErrOrderEmpty)
	}
	if input.Quantity <= 0 {
		return "", "", fmt.Errorf("%w: %s", ErrQuantityInvalid, input.PartName)
	}

	now := time.Now()
	orderNumber, err := s.nextOrderNumber(now)
	if err != nil {
		return "", "", err
	}
	partID, err := s.nextCustomPartID()
	if err != nil {
		return "", "", err
	}

	totalCost := input.EstimatedCost.Mul(decimal.NewFromInt(int64(input.Quantity)))
	line := models.OrderLine{
		OrderNumber:   orderNumber,
		Date:          now,
		Department:    input.Department,
		StudentName:   strings.TrimSpace(input.StudentName),
		Priority:      normalizePriority(input.Priority),
		PartID:        partID,
		PartName:      input.PartName,
		Category:      "Custom",
		Quantity:      input.Quantity,
		UnitCost:      models.NewMoneyFromDecimal(input.EstimatedCost),
		TotalCost:     models.NewMoneyFromDecimal(totalCost),
		Supplier:      input.Supplier,
		SupplierLink:  input.PartLink,
		ProductCode:   "N/A",
		Status:        constants.LineStatusPending,
		Notes:         input.Notes,
		Justification: input.Justification,
	}
	if err := s.lineRepo.CreateBatch([]models.OrderLine{line}); err != nil {
		return "", "", fmt.Errorf("创建定制申请失败: %w", err)
	}

	s.enqueueSyncPush(orderNumber)
	logger.Infow("order_submitted",
		"order_number", orderNumber,
		"order_type", constants.OrderTypeCustom,
		"student", input.StudentName,
		"part_id", partID,
	)
	return orderNumber, partID, nil
}

// SubmitCSVOrder 提交 CSV 汇总单。
// 整个 CSV 文件记为一条固定件号的汇总行，明细留在文件里。
func (s *OrderService) SubmitCSVOrder(input SubmitCSVOrderInput) (string, error) {
	if err := s.checkStudent(input.StudentName); err != nil {
		return "", err
	}
	if strings.TrimSpace(input.CSVFileLink) == "" {
		return "", fmt.Errorf("%w: 缺少 CSV 文件", ErrUploadInvalid)
	}

	now := time.Now()
	orderNumber, err := s.nextOrderNumber(now)
	if err != nil {
		return "", err
	}

	line := models.OrderLine{
		OrderNumber:   orderNumber,
		Date:          now,
		Department:    input.Department,
		StudentName:   strings.TrimSpace(input.StudentName),
		Priority:      normalizePriority(input.Priority),
		PartID:        constants.CSVOrderPartID,
		PartName:      constants.CSVOrderPartName,
		Category:      constants.CSVOrderCategory,
		Quantity:      1,
		UnitCost:      models.NewMoneyFromDecimal(input.TotalCost),
		TotalCost:     models.NewMoneyFromDecimal(input.TotalCost),
		Supplier:      constants.CSVOrderSupplier,
		SupplierLink:  constants.CSVOrderSupplierLink,
		Status:        constants.LineStatusPending,
		Notes:         input.Notes,
		Justification: constants.CSVOrderJustification,
		CSVFileLink:   input.CSVFileLink,
	}
	if err := s.lineRepo.CreateBatch([]models.OrderLine{line}); err != nil {
		return "", fmt.Errorf("创建 CSV 汇总单失败: %w", err)
	}

	s.enqueueSyncPush(orderNumber)
	logger.Infow("order_submitted",
		"order_number", orderNumber,
		"order_type", constants.OrderTypeCSV,
		"student", input.StudentName,
	)
	return orderNumber, nil
}

// ListOrders 管理端分页查询订单行
func (s *OrderService) ListOrders(filter repository.OrderLineListFilter) ([]models.OrderLine, int64, error) {
	return s.lineRepo.ListAdmin(filter)
}

// GetOrder 按订单编号返回全部行
func (s *OrderService) GetOrder(orderNumber string) ([]models.OrderLine, error) {
	lines, err := s.lineRepo.ListByOrderNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return lines, nil
}

// checkStudent 校验提交人在队员名册中
func (s *OrderService) checkStudent(name string) error {
	student, err := s.studentRepo.GetByName(name)
	if err != nil {
		return err
	}
	if student == nil {
		return fmt.Errorf("%w: %s", ErrStudentUnknown, strings.TrimSpace(name))
	}
	return nil
}

// nextOrderNumber 生成订单编号 ORD-YYYYMMDD-NNN，序号按当日已有最大值递增
func (s *OrderService) nextOrderNumber(now time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%s-", constants.OrderNumberPrefix, now.Format("20060102"))
	existing, err := s.lineRepo.ListOrderNumbersWithPrefix(prefix)
	if err != nil {
		return "", fmt.Errorf("查询当日订单编号失败: %w", err)
	}
	return fmt.Sprintf("%s%03d", prefix, maxNumericSuffix(existing, prefix)+1), nil
}

// nextCustomPartID 生成定制件号 CUSTOM-NNN
func (s *OrderService) nextCustomPartID() (string, error) {
	existing, err := s.lineRepo.ListPartIDsWithPrefix(constants.CustomPartIDPrefix)
	if err != nil {
		return "", fmt.Errorf("查询定制件号失败: %w", err)
	}
	return fmt.Sprintf("%s%03d", constants.CustomPartIDPrefix, maxNumericSuffix(existing, constants.CustomPartIDPrefix)+1), nil
}

// maxNumericSuffix 返回给定前缀下的最大数字后缀，非数字后缀忽略
func maxNumericSuffix(values []string, prefix string) int {
	max := 0
	for _, v := range values {
		seq, err := strconv.Atoi(strings.TrimPrefix(v, prefix))
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max
}

// normalizePriority 未指定优先级时取 Medium
func normalizePriority(priority string) string {
	switch priority {
	case constants.PriorityLow, constants.PriorityMedium, constants.PriorityHigh, constants.PriorityUrgent:
		return priority
	default:
		return constants.PriorityMedium
	}
}

// enqueueSyncPush 下单后触发一次推送，失败只记告警不影响下单
func (s *OrderService) enqueueSyncPush(orderNumber string) {
	if err := s.queueClient.EnqueueSyncPush(queue.SyncPushPayload{Trigger: "order_submitted"}); err != nil {
		logger.Warnw("order_enqueue_sync_push_failed",
			"order_number", orderNumber,
			"error", err,
		)
	}
}
