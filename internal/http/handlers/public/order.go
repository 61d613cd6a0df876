package public

import (
	"errors"

	"github.com/denhamvenom/inventoryapp/internal/http/handlers/shared"
	"github.com/denhamvenom/inventoryapp/internal/http/response"
	"github.com/denhamvenom/inventoryapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SubmitOrder 提交目录订单
func (h *Handler) SubmitOrder(c *gin.Context) {
	var req service.SubmitOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	orderNumber, lines, err := h.OrderService.SubmitOrder(req)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.Success(c, gin.H{
		"order_number": orderNumber,
		"lines":        lines,
	})
}

// SubmitCustomRequest 提交定制零件申请
func (h *Handler) SubmitCustomRequest(c *gin.Context) {
	var req service.SubmitCustomRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	orderNumber, partID, err := h.OrderService.SubmitCustomRequest(req)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.Success(c, gin.H{
		"order_number": orderNumber,
		"part_id":      partID,
	})
}

// SubmitCSVOrder 上传 CSV 文件并提交汇总订单
func (h *Handler) SubmitCSVOrder(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "缺少 CSV 文件", err)
		return
	}

	fileLink, err := h.UploadService.SaveCSV(file)
	if err != nil {
		if errors.Is(err, service.ErrUploadInvalid) {
			shared.RespondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "CSV 文件保存失败", err)
		return
	}

	totalCost, err := decimal.NewFromString(c.DefaultPostForm("total_cost", "0"))
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "总金额格式有误", err)
		return
	}

	input := service.SubmitCSVOrderInput{
		StudentName: c.PostForm("student_name"),
		Department:  c.PostForm("department"),
		Priority:    c.PostForm("priority"),
		TotalCost:   totalCost,
		CSVFileLink: fileLink,
		Notes:       c.PostForm("notes"),
	}
	orderNumber, err := h.OrderService.SubmitCSVOrder(input)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.Success(c, gin.H{
		"order_number":  orderNumber,
		"csv_file_link": fileLink,
	})
}

// GetOrder 按订单编号查询订单行
func (h *Handler) GetOrder(c *gin.Context) {
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

// respondOrderError 将下单业务错误映射为响应码
func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderEmpty),
		errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrUploadInvalid):
		shared.RespondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrStudentUnknown):
		shared.RespondError(c, response.CodeBadRequest, "提交人不在队员名册中", nil)
	case errors.Is(err, service.ErrPartNotFound):
		shared.RespondError(c, response.CodeNotFound, "零件不存在", nil)
	default:
		shared.RespondError(c, response.CodeInternal, "订单提交失败", err)
	}
}
