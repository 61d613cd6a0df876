package models

import (
	"time"

	"gorm.io/gorm"
)

// Part 零件目录表
type Part struct {
	ID              uint           `gorm:"primarykey" json:"id"`                      // 主键
	PartID          string         `gorm:"uniqueIndex;not null" json:"part_id"`       // 件号（如 FAST-001）
	PartName        string         `gorm:"index;not null" json:"part_name"`           // 零件名称
	Category        string         `gorm:"index" json:"category"`                     // 分类
	Subcategory     string         `gorm:"index" json:"subcategory"`                  // 子分类
	Type            string         `gorm:"index" json:"type"`                         // 型号分组
	Supplier        string         `json:"supplier"`                                  // 供应商
	SupplierLink    string         `json:"supplier_link"`                             // 供应商链接
	ProductCode     string         `gorm:"index" json:"product_code"`                 // 供应商产品编码
	UnitCost        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"` // 单价
	QuantityInStock int            `gorm:"not null;default:0" json:"quantity_in_stock"`             // 库存数量
	Location        string         `json:"location"`                                  // 存放位置
	IsInventory     bool           `gorm:"index;not null;default:false" json:"is_inventory"`        // 是否常备库存件
	Seasons         string         `json:"seasons"`                                   // 使用赛季（逗号分隔）
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                            // 软删除时间
}

// TableName 指定表名
func (Part) TableName() string {
	return "parts"
}
