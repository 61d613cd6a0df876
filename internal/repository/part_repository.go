package repository

import (
	"errors"
	"strings"

	"github.com/denhamvenom/inventoryapp/internal/models"

	"gorm.io/gorm"
)

// ErrPartIDExists 件号已存在
var ErrPartIDExists = errors.New("part id already exists")

// PartRepository 零件目录数据访问接口
type PartRepository interface {
	List(filter PartListFilter) ([]models.Part, int64, error)
	GetByID(id uint) (*models.Part, error)
	GetByPartID(partID string) (*models.Part, error)
	GetByName(partName string) (*models.Part, error)
	ListPartIDsWithPrefix(prefix string) ([]string, error)
	Create(part *models.Part) error
	Update(part *models.Part) error
	Delete(partID string) error
	AdjustStock(partID string, delta int) error
	ListLowStock(threshold int) ([]models.Part, error)
	ListCategories() ([]string, error)
}

// GormPartRepository GORM 实现
type GormPartRepository struct {
	db *gorm.DB
}

// NewPartRepository 创建零件目录仓库
func NewPartRepository(db *gorm.DB) *GormPartRepository {
	return &GormPartRepository{db: db}
}

// List 按条件分页查询零件
func (r *GormPartRepository) List(filter PartListFilter) ([]models.Part, int64, error) {
	query := r.db.Model(&models.Part{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("subcategory = ?", filter.Subcategory)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Supplier != "" {
		query = query.Where("supplier = ?", filter.Supplier)
	}
	if filter.OnlyInventory {
		query = query.Where("is_inventory = ?", true)
	}
	if filter.Search != "" {
		keyword := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("part_id LIKE ? OR part_name LIKE ? OR product_code LIKE ?", keyword, keyword, keyword)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	parts := make([]models.Part, 0)
	err := applyPagination(query.Order("part_id ASC"), filter.Page, filter.PageSize).Find(&parts).Error
	if err != nil {
		return nil, 0, err
	}
	return parts, total, nil
}

// GetByID 按主键查询，未找到时返回 (nil, nil)
func (r *GormPartRepository) GetByID(id uint) (*models.Part, error) {
	var part models.Part
	err := r.db.First(&part, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

// GetByPartID 按件号查询，未找到时返回 (nil, nil)
func (r *GormPartRepository) GetByPartID(partID string) (*models.Part, error) {
	var part models.Part
	err := r.db.Where("part_id = ?", strings.TrimSpace(partID)).First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

// GetByName 按名称精确查询，未找到时返回 (nil, nil)
func (r *GormPartRepository) GetByName(partName string) (*models.Part, error) {
	var part models.Part
	err := r.db.Where("part_name = ?", strings.TrimSpace(partName)).First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

// ListPartIDsWithPrefix 查询指定前缀的全部件号
func (r *GormPartRepository) ListPartIDsWithPrefix(prefix string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Part{}).
		Where("part_id LIKE ?", prefix+"%").
		Distinct().
		Pluck("part_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Create 创建零件，件号重复时返回 ErrPartIDExists
func (r *GormPartRepository) Create(part *models.Part) error {
	existing, err := r.GetByPartID(part.PartID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrPartIDExists
	}
	return r.db.Create(part).Error
}

// Update 更新零件
func (r *GormPartRepository) Update(part *models.Part) error {
	return r.db.Save(part).Error
}

// Delete 按件号删除零件
func (r *GormPartRepository) Delete(partID string) error {
	return r.db.Where("part_id = ?", strings.TrimSpace(partID)).Delete(&models.Part{}).Error
}

// AdjustStock 调整库存数量，结果不会低于 0
func (r *GormPartRepository) AdjustStock(partID string, delta int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var part models.Part
		err := tx.Where("part_id = ?", partID).First(&part).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		next := part.QuantityInStock + delta
		if next < 0 {
			next = 0
		}
		return tx.Model(&part).Update("quantity_in_stock", next).Error
	})
}

// ListLowStock 返回库存不高于阈值的常备库存件
func (r *GormPartRepository) ListLowStock(threshold int) ([]models.Part, error) {
	parts := make([]models.Part, 0)
	err := r.db.
		Where("is_inventory = ?", true).
		Where("quantity_in_stock <= ?", threshold).
		Order("quantity_in_stock ASC").
		Find(&parts).Error
	if err != nil {
		return nil, err
	}
	return parts, nil
}

// ListCategories 返回去重后的全部分类
func (r *GormPartRepository) ListCategories() ([]string, error) {
	categories := make([]string, 0)
	err := r.db.Model(&models.Part{}).
		Distinct("category").
		Where("category <> ?", "").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
