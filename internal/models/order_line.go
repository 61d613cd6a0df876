package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderLine 订单行表（一行 = 一个订购条目，本地持久化单元）
type OrderLine struct {
	ID            uint           `gorm:"primarykey" json:"id"`                    // 主键（行定位键）
	OrderNumber   string         `gorm:"index;not null" json:"order_number"`      // 订单编号（同一订单多行共享）
	Date          time.Time      `gorm:"index" json:"date"`                       // 提交日期
	Department    string         `json:"department"`                              // 所属部门/子队
	StudentName   string         `gorm:"index" json:"student_name"`               // 提交人
	Priority      string         `json:"priority"`                                // 优先级
	PartID        string         `gorm:"index" json:"part_id"`                    // 件号
	PartName      string         `json:"part_name"`                               // 零件名称
	Category      string         `json:"category"`                                // 分类
	Quantity      int            `gorm:"not null;default:0" json:"quantity"`      // 订购数量
	UnitCost      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"`  // 单价
	TotalCost     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_cost"` // 小计（仅展示，同步时原样透传）
	Supplier      string         `json:"supplier"`                                // 供应商
	SupplierLink  string         `json:"supplier_link"`                           // 供应商链接
	ProductCode   string         `json:"product_code"`                            // 供应商产品编码
	Status        string         `gorm:"index;not null" json:"status"`            // 本地状态
	Notes         string         `gorm:"type:text" json:"notes"`                  // 备注
	Justification string         `gorm:"type:text" json:"justification"`          // 采购理由
	CSVFileLink   string         `json:"csv_file_link"`                           // CSV 文件链接（仅 CSV 订单）
	RemoteID      string         `gorm:"index" json:"remote_id"`                  // 看板子项 ID，空串表示尚未同步
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (OrderLine) TableName() string {
	return "order_lines"
}

// Synced 判断该行是否已同步到看板
func (l *OrderLine) Synced() bool {
	return l != nil && l.RemoteID != ""
}
