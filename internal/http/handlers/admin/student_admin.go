package admin

import (
	"strings"

	"github.com/denhamvenom/inventoryapp/internal/http/handlers/shared"
	"github.com/denhamvenom/inventoryapp/internal/http/response"
	"github.com/denhamvenom/inventoryapp/internal/models"

	"github.com/gin-gonic/gin"
)

// StudentCreateRequest 队员创建请求
type StudentCreateRequest struct {
	Name    string `json:"name" binding:"required"`
	Subteam string `json:"subteam"`
}

// ListAdminStudents 管理端队员名册
func (h *Handler) ListAdminStudents(c *gin.Context) {
	students, err := h.StudentRepo.ListAll()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "队员名册查询失败", err)
		return
	}
	response.Success(c, students)
}

// CreateStudent 新增队员
func (h *Handler) CreateStudent(c *gin.Context) {
	var req StudentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		shared.RespondError(c, response.CodeBadRequest, "队员姓名不能为空", nil)
		return
	}
	if existing, err := h.StudentRepo.GetByName(name); err != nil {
		shared.RespondError(c, response.CodeInternal, "队员查询失败", err)
		return
	} else if existing != nil {
		shared.RespondError(c, response.CodeBadRequest, "队员已存在", nil)
		return
	}

	student := &models.Student{
		Name:    name,
		Subteam: strings.TrimSpace(req.Subteam),
	}
	if err := h.StudentRepo.Create(student); err != nil {
		shared.RespondError(c, response.CodeInternal, "队员创建失败", err)
		return
	}
	response.Success(c, student)
}
