package public

import (
	"github.com/denhamvenom/inventoryapp/internal/http/handlers/shared"
	"github.com/denhamvenom/inventoryapp/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListStudents 队员名册（提交表单的下拉数据源）
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.StudentRepo.ListAll()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "队员名册查询失败", err)
		return
	}
	response.Success(c, students)
}
