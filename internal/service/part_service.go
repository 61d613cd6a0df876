package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/denhamvenom/inventoryapp/internal/cache"
	"github.com/denhamvenom/inventoryapp/internal/logger"
	"github.com/denhamvenom/inventoryapp/internal/models"
	"github.com/denhamvenom/inventoryapp/internal/repository"
)

const (
	partListCacheTTL       = 5 * time.Minute
	partCategoriesCacheKey = "parts:categories"
	partListVersionKey     = "parts:list:version"
)

// PartService 零件目录服务
type PartService struct {
	partRepo repository.PartRepository
}

// NewPartService 创建零件目录服务
func NewPartService(partRepo repository.PartRepository) *PartService {
	return &PartService{partRepo: partRepo}
}

// PartListResult 目录分页结果
type PartListResult struct {
	Parts    []models.Part `json:"parts"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// List 分页查询目录，结果短缓存。
// 缓存键带版本号，任何目录写操作都会翻新版本号让旧列表立即失效。
func (s *PartService) List(ctx context.Context, filter repository.PartListFilter) (*PartListResult, error) {
	cacheKey := fmt.Sprintf("parts:list:%d:%d:%d:%s:%s:%s:%s:%s:%t",
		s.listVersion(ctx),
		filter.Page, filter.PageSize,
		filter.Category, filter.Subcategory, filter.Type, filter.Supplier,
		filter.Search, filter.OnlyInventory,
	)
	var cached PartListResult
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	parts, total, err := s.partRepo.List(filter)
	if err != nil {
		return nil, err
	}
	result := &PartListResult{
		Parts:    parts,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if err := cache.SetJSON(ctx, cacheKey, result, partListCacheTTL); err != nil {
		logger.Warnw("part_list_cache_set_failed", "error", err)
	}
	return result, nil
}

// Get 按件号查询
func (s *PartService) Get(partID string) (*models.Part, error) {
	part, err := s.partRepo.GetByPartID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, partID)
	}
	return part, nil
}

// Create 新建零件。件号为空时按分类前缀自动生成，名称重复时拒绝。
func (s *PartService) Create(ctx context.Context, part *models.Part) error {
	if strings.TrimSpace(part.PartName) != "" {
		existing, err := s.partRepo.GetByName(part.PartName)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %s", ErrPartNameExists, part.PartName)
		}
	}
	if strings.TrimSpace(part.PartID) == "" {
		partID, err := s.NextPartID(part.Category)
		if err != nil {
			return err
		}
		part.PartID = partID
	}
	if err := s.partRepo.Create(part); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// NextPartID 按分类前缀生成下一个件号（如 FAST-007）
func (s *PartService) NextPartID(category string) (string, error) {
	code := categoryCode(category)
	if code == "" {
		return "", fmt.Errorf("%w: 分类为空，无法生成件号", ErrPartInvalid)
	}
	prefix := code + "-"
	ids, err := s.partRepo.ListPartIDsWithPrefix(prefix)
	if err != nil {
		return "", err
	}
	next := maxNumericSuffix(ids, prefix) + 1
	return fmt.Sprintf("%s%03d", prefix, next), nil
}

// categoryCode 从分类名提取件号前缀：取前 4 个字母并大写
func categoryCode(category string) string {
	var letters []rune
	for _, r := range category {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 4 {
				break
			}
		}
	}
	return string(letters)
}

// Update 更新零件
func (s *PartService) Update(ctx context.Context, part *models.Part) error {
	if err := s.partRepo.Update(part); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// Delete 按件号删除零件
func (s *PartService) Delete(ctx context.Context, partID string) error {
	if _, err := s.Get(partID); err != nil {
		return err
	}
	if err := s.partRepo.Delete(partID); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// Categories 返回全部分类，结果短缓存
func (s *PartService) Categories(ctx context.Context) ([]string, error) {
	var cached []string
	if hit, err := cache.GetJSON(ctx, partCategoriesCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	categories, err := s.partRepo.ListCategories()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, partCategoriesCacheKey, categories, partListCacheTTL); err != nil {
		logger.Warnw("part_categories_cache_set_failed", "error", err)
	}
	return categories, nil
}

// LowStock 返回库存不高于阈值的常备库存件
func (s *PartService) LowStock(threshold int) ([]models.Part, error) {
	if threshold < 0 {
		threshold = 0
	}
	return s.partRepo.ListLowStock(threshold)
}

// AdjustStock 调整库存并返回最新零件
func (s *PartService) AdjustStock(ctx context.Context, partID string, delta int) (*models.Part, error) {
	if err := s.partRepo.AdjustStock(partID, delta); err != nil {
		return nil, err
	}
	part, err := s.Get(partID)
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return part, nil
}

func (s *PartService) listVersion(ctx context.Context) int64 {
	var version int64
	if hit, err := cache.GetJSON(ctx, partListVersionKey, &version); err == nil && hit {
		return version
	}
	return 0
}

// invalidateCatalog 目录写操作后失效缓存。
// 分类键直接删除，列表键靠翻新版本号整体作废。
func (s *PartService) invalidateCatalog(ctx context.Context) {
	if err := cache.Del(ctx, partCategoriesCacheKey); err != nil {
		logger.Warnw("part_categories_cache_del_failed", "error", err)
	}
	if err := cache.SetJSON(ctx, partListVersionKey, time.Now().UnixNano(), 0); err != nil {
		logger.Warnw("part_list_version_bump_failed", "error", err)
	}
}
