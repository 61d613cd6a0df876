package models

import "time"

// OrderSyncState 订单级同步台账：记录订单编号对应的看板主项 ID。
// 推送中途失败的订单在下一轮会复用已建主项，只补建缺失子项，避免重复创建。
type OrderSyncState struct {
	ID          uint      `gorm:"primarykey" json:"id"`                    // 主键
	OrderNumber string    `gorm:"uniqueIndex;not null" json:"order_number"` // 订单编号
	MainItemID  string    `gorm:"not null" json:"main_item_id"`            // 看板主项 ID
	OrderType   string    `json:"order_type"`                              // 推送时判定的订单类型
	CreatedAt   time.Time `json:"created_at"`                              // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                              // 更新时间
}

// TableName 指定表名
func (OrderSyncState) TableName() string {
	return "order_sync_states"
}
