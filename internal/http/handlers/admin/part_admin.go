package admin

import (
	"errors"
	"strconv"

	"github.com/denhamvenom/inventoryapp/internal/http/handlers/shared"
	"github.com/denhamvenom/inventoryapp/internal/http/response"
	"github.com/denhamvenom/inventoryapp/internal/models"
	"github.com/denhamvenom/inventoryapp/internal/repository"
	"github.com/denhamvenom/inventoryapp/internal/service"

	"github.com/gin-gonic/gin"
)

// PartUpsertRequest 零件创建/更新请求
type PartUpsertRequest struct {
	PartID          string       `json:"part_id"`
	PartName        string       `json:"part_name" binding:"required"`
	Category        string       `json:"category"`
	Subcategory     string       `json:"subcategory"`
	Type            string       `json:"type"`
	Supplier        string       `json:"supplier"`
	SupplierLink    string       `json:"supplier_link"`
	ProductCode     string       `json:"product_code"`
	UnitCost        models.Money `json:"unit_cost"`
	QuantityInStock int          `json:"quantity_in_stock"`
	Location        string       `json:"location"`
	IsInventory     bool         `json:"is_inventory"`
	Seasons         string       `json:"seasons"`
}

func (req *PartUpsertRequest) toModel() *models.Part {
	return &models.Part{
		PartID:          req.PartID,
		PartName:        req.PartName,
		Category:        req.Category,
		Subcategory:     req.Subcategory,
		Type:            req.Type,
		Supplier:        req.Supplier,
		SupplierLink:    req.SupplierLink,
		ProductCode:     req.ProductCode,
		UnitCost:        req.UnitCost,
		QuantityInStock: req.QuantityInStock,
		Location:        req.Location,
		IsInventory:     req.IsInventory,
		Seasons:         req.Seasons,
	}
}

// CreatePart 新增零件
func (h *Handler) CreatePart(c *gin.Context) {
	var req PartUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	part := req.toModel()
	if err := h.PartService.Create(c.Request.Context(), part); err != nil {
		switch {
		case errors.Is(err, repository.ErrPartIDExists):
			shared.RespondError(c, response.CodeBadRequest, "件号已存在", nil)
		case errors.Is(err, service.ErrPartNameExists):
			shared.RespondError(c, response.CodeBadRequest, "零件名称已存在", nil)
		case errors.Is(err, service.ErrPartInvalid):
			shared.RespondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			shared.RespondError(c, response.CodeInternal, "零件创建失败", err)
		}
		return
	}
	response.Success(c, part)
}

// UpdatePart 更新零件
func (h *Handler) UpdatePart(c *gin.Context) {
	partID := c.Param("part_id")
	existing, err := h.PartService.Get(partID)
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			shared.RespondError(c, response.CodeNotFound, "零件不存在", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "零件查询失败", err)
		return
	}

	var req PartUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	part := req.toModel()
	part.ID = existing.ID
	part.PartID = existing.PartID
	part.CreatedAt = existing.CreatedAt
	if err := h.PartService.Update(c.Request.Context(), part); err != nil {
		shared.RespondError(c, response.CodeInternal, "零件更新失败", err)
		return
	}
	response.Success(c, part)
}

// DeletePart 删除零件
func (h *Handler) DeletePart(c *gin.Context) {
	partID := c.Param("part_id")
	if err := h.PartService.Delete(c.Request.Context(), partID); err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			shared.RespondError(c, response.CodeNotFound, "零件不存在", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "零件删除失败", err)
		return
	}
	response.Success(c, gin.H{"part_id": partID})
}

// StockAdjustRequest 库存调整请求
type StockAdjustRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustPartStock 调整零件库存（正数入库，负数出库）
func (h *Handler) AdjustPartStock(c *gin.Context) {
	partID := c.Param("part_id")
	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	part, err := h.PartService.AdjustStock(c.Request.Context(), partID, req.Delta)
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			shared.RespondError(c, response.CodeNotFound, "零件不存在", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "库存调整失败", err)
		return
	}
	response.Success(c, part)
}

// ListLowStockParts 低库存零件列表
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
