package repository

import (
	"errors"

	"github.com/denhamvenom/inventoryapp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncStateRepository 订单同步台账接口。
// 台账记录订单编号到看板主项 ID 的映射，
// 重推部分失败的订单时可以复用已创建的主项。
type SyncStateRepository interface {
	GetByOrderNumber(orderNumber string) (*models.OrderSyncState, error)
	Upsert(state *models.OrderSyncState) error
}

// GormSyncStateRepository GORM 实现
type GormSyncStateRepository struct {
	db *gorm.DB
}

// NewSyncStateRepository 创建同步台账仓库
func NewSyncStateRepository(db *gorm.DB) *GormSyncStateRepository {
	return &GormSyncStateRepository{db: db}
}

// GetByOrderNumber 按订单编号查询台账，未找到时返回 (nil, nil)
func (r *GormSyncStateRepository) GetByOrderNumber(orderNumber string) (*models.OrderSyncState, error) {
	var state models.OrderSyncState
	err := r.db.Where("order_number = ?", orderNumber).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

// Upsert 写入或更新台账记录
func (r *GormSyncStateRepository) Upsert(state *models.OrderSyncState) error {
	if state.OrderNumber == "" {
		return errors.New("order number is empty")
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"main_item_id", "order_type"}),
	}).Create(state).Error
}
