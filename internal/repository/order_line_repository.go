package repository

import (
	"errors"
	"strings"

	"github.com/denhamvenom/inventoryapp/internal/models"

	"gorm.io/gorm"
)

// OrderLineRepository 订单行数据访问接口。
// 同步引擎只通过该接口读写订单表：按主键定位行，按列名语义更新，
// 不暴露任何行号寻址。
type OrderLineRepository interface {
	ListAll() ([]models.OrderLine, error)
	ListUnsynced() ([]models.OrderLine, error)
	ListSynced() ([]models.OrderLine, error)
	ListByOrderNumber(orderNumber string) ([]models.OrderLine, error)
	ListAdmin(filter OrderLineListFilter) ([]models.OrderLine, int64, error)
	ListOrderNumbersWithPrefix(prefix string) ([]string, error)
	ListPartIDsWithPrefix(prefix string) ([]string, error)
	CreateBatch(lines []models.OrderLine) error
	SetRemoteID(lineID uint, remoteID string) error
	SetStatus(lineID uint, status string) error
}

// GormOrderLineRepository GORM 实现
type GormOrderLineRepository struct {
	db *gorm.DB
}

// NewOrderLineRepository 创建订单行仓库
func NewOrderLineRepository(db *gorm.DB) *GormOrderLineRepository {
	return &GormOrderLineRepository{db: db}
}

// ListAll 按插入顺序返回全部订单行
func (r *GormOrderLineRepository) ListAll() ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0)
	if err := r.db.Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// ListUnsynced 返回尚未同步到看板的订单行（remote_id 为空）
func (r *GormOrderLineRepository) ListUnsynced() ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0)
	err := r.db.
		Where("remote_id = ?", "").
		Where("order_number <> ?", "").
		Order("id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ListSynced 返回已同步的订单行（remote_id 非空）
func (r *GormOrderLineRepository) ListSynced() ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0)
	if err := r.db.Where("remote_id <> ?", "").Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// ListByOrderNumber 返回某一订单编号的全部行
func (r *GormOrderLineRepository) ListByOrderNumber(orderNumber string) ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0)
	err := r.db.
		Where("order_number = ?", strings.TrimSpace(orderNumber)).
		Order("id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ListAdmin 管理端分页查询
func (r *GormOrderLineRepository) ListAdmin(filter OrderLineListFilter) ([]models.OrderLine, int64, error) {
	query := r.db.Model(&models.OrderLine{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNumber != "" {
		query = query.Where("order_number = ?", filter.OrderNumber)
	}
	if filter.StudentName != "" {
		query = query.Where("student_name = ?", filter.StudentName)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	lines := make([]models.OrderLine, 0)
	err := applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize).Find(&lines).Error
	if err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}

// ListOrderNumbersWithPrefix 返回指定前缀的去重订单编号
func (r *GormOrderLineRepository) ListOrderNumbersWithPrefix(prefix string) ([]string, error) {
	numbers := make([]string, 0)
	err := r.db.Model(&models.OrderLine{}).
		Distinct("order_number").
		Where("order_number LIKE ?", prefix+"%").
		Pluck("order_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// ListPartIDsWithPrefix 返回指定前缀的去重件号
func (r *GormOrderLineRepository) ListPartIDsWithPrefix(prefix string) ([]string, error) {
	partIDs := make([]string, 0)
	err := r.db.Model(&models.OrderLine{}).
		Distinct("part_id").
		Where("part_id LIKE ?", prefix+"%").
		Pluck("part_id", &partIDs).Error
	if err != nil {
		return nil, err
	}
	return partIDs, nil
}

// CreateBatch 批量创建订单行
func (r *GormOrderLineRepository) CreateBatch(lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.Create(&lines).Error
}

// SetRemoteID 写入某行的看板子项 ID
func (r *GormOrderLineRepository) SetRemoteID(lineID uint, remoteID string) error {
	if lineID == 0 {
		return errors.New("line id is zero")
	}
	return r.db.Model(&models.OrderLine{}).
		Where("id = ?", lineID).
		Update("remote_id", remoteID).Error
}

// SetStatus 写入某行的本地状态
func (r *GormOrderLineRepository) SetStatus(lineID uint, status string) error {
	if lineID == 0 {
		return errors.New("line id is zero")
	}
	return r.db.Model(&models.OrderLine{}).
		Where("id = ?", lineID).
		Update("status", status).Error
}
