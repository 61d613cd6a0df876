package public

import (
	"errors"
	"strconv"

	"github.com/denhamvenom/inventoryapp/internal/http/handlers/shared"
	"github.com/denhamvenom/inventoryapp/internal/http/response"
	"github.com/denhamvenom/inventoryapp/internal/repository"
	"github.com/denhamvenom/inventoryapp/internal/service"

	"github.com/gin-gonic/gin"
)

// ListParts 零件目录列表（支持分类、供应商与关键字过滤）
func (h *Handler) ListParts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	onlyInventory, _ := strconv.ParseBool(c.DefaultQuery("only_inventory", "false"))

	filter := repository.PartListFilter{
		Page:          page,
		PageSize:      pageSize,
		Category:      c.Query("category"),
		Subcategory:   c.Query("subcategory"),
		Type:          c.Query("type"),
		Supplier:      c.Query("supplier"),
		Search:        c.Query("search"),
		OnlyInventory: onlyInventory,
	}

	result, err := h.PartService.List(c.Request.Context(), filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "零件列表查询失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     result.Total,
		TotalPage: (result.Total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, result.Parts, pagination)
}

// ListPartCategories 零件分类列表
func (h *Handler) ListPartCategories(c *gin.Context) {
	categories, err := h.PartService.Categories(c.Request.Context())
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "分类列表查询失败", err)
		return
	}
	response.Success(c, categories)
}

// ListLowStockParts 低库存常备件列表
func (h *Handler) ListLowStockParts(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", "5"))
	if threshold < 0 {
		threshold = 0
	}
	parts, err := h.PartService.LowStock(threshold)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "低库存查询失败", err)
		return
	}
	response.Success(c, parts)
}

// GetPart 按件号查询零件详情
func (h *Handler) GetPart(c *gin.Context) {
	partID := c.Param("part_id")
	part, err := h.PartService.Get(partID)
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			shared.RespondError(c, response.CodeNotFound, "零件不存在", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "零件查询失败", err)
		return
	}
	response.Success(c, part)
}
