package admin

import (
	"strconv"

	"github.com/denhamvenom/inventoryapp/internal/http/handlers/shared"
	"github.com/denhamvenom/inventoryapp/internal/http/response"
	"github.com/denhamvenom/inventoryapp/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAdminOrders 管理端订单行列表
func (h *Handler) ListAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	filter := repository.OrderLineListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      c.Query("status"),
		OrderNumber: c.Query("order_number"),
		StudentName: c.Query("student_name"),
		Department:  c.Query("department"),
	}

	lines, total, err := h.OrderService.ListOrders(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "订单列表查询失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, lines, pagination)
}

// GetAdminOrder 管理端订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	orderNumber := c.Param("order_number")
	lines, err := h.OrderService.GetOrder(orderNumber)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "订单查询失败", err)
		return
	}
	if lines == nil {
		shared.RespondError(c, response.CodeNotFound, "订单不存在", nil)
		return
	}
	response.Success(c, lines)
}
