package service

import (
	"regexp"
	"strings"

	"github.com/denhamvenom/inventoryapp/internal/constants"
	"github.com/denhamvenom/inventoryapp/internal/logger"
	"github.com/denhamvenom/inventoryapp/internal/models"
)

// directoryPartIDPattern 目录件号格式，如 FAST-001
var directoryPartIDPattern = regexp.MustCompile(`^[A-Z]{4}-\d{3}$`)

// orderGroup 同一订单编号下的全部行，携带订单级元数据。
// 元数据取自该编号下第一条行，行顺序保持插入顺序。
type orderGroup struct {
	OrderNumber string
	OrderType   string
	Lines       []models.OrderLine
}

// firstLine 返回分组的首行
func (g *orderGroup) firstLine() *models.OrderLine {
	if g == nil || len(g.Lines) == 0 {
		return nil
	}
	return &g.Lines[0]
}

// groupOrderLines 按订单编号分组。
// 编号为空的行无法归属任何订单，记录告警后丢弃。
func groupOrderLines(lines []models.OrderLine) []*orderGroup {
	groups := make([]*orderGroup, 0)
	index := make(map[string]*orderGroup)
	for _, line := range lines {
		orderNumber := strings.TrimSpace(line.OrderNumber)
		if orderNumber == "" {
			logger.Warnw("sync_line_missing_order_number",
				"line_id", line.ID,
				"part_id", line.PartID,
			)
			continue
		}
		group, ok := index[orderNumber]
		if !ok {
			group = &orderGroup{OrderNumber: orderNumber}
			index[orderNumber] = group
			groups = append(groups, group)
		}
		group.Lines = append(group.Lines, line)
	}
	for _, group := range groups {
		group.OrderType = classifyOrder(group.firstLine())
	}
	return groups
}

// classifyOrder 根据首行判定订单类型。
// CSV 汇总单使用固定件号，定制申请使用 CUSTOM- 前缀且无产品编码，
// 其余一律按目录订单处理。
func classifyOrder(first *models.OrderLine) string {
	if first == nil {
		return constants.OrderTypeDirectory
	}
	partID := strings.TrimSpace(first.PartID)
	switch {
	case partID == constants.CSVOrderPartID:
		return constants.OrderTypeCSV
	case strings.HasPrefix(partID, constants.CustomPartIDPrefix) && first.ProductCode == "N/A":
		return constants.OrderTypeCustom
	case directoryPartIDPattern.MatchString(partID):
		return constants.OrderTypeDirectory
	default:
		return constants.OrderTypeDirectory
	}
}
