package admin

import (
	"errors"

	"github.com/denhamvenom/inventoryapp/internal/http/handlers/shared"
	"github.com/denhamvenom/inventoryapp/internal/http/response"
	"github.com/denhamvenom/inventoryapp/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	admin, token, expireAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondError(c, response.CodeUnauthorized, "用户名或密码错误", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "登录失败", err)
		return
	}

	shared.RequestLog(c).Infow("admin_login",
		"admin_id", admin.ID,
		"username", admin.Username,
	)
	response.Success(c, gin.H{
		"token":     token,
		"expire_at": expireAt,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
	})
}

// Profile 当前管理员信息
func (h *Handler) Profile(c *gin.Context) {
	adminID, ok := c.Get("admin_id")
	if !ok {
		shared.RespondError(c, response.CodeUnauthorized, "未登录", nil)
		return
	}
	id, ok := adminID.(uint)
	if !ok {
		shared.RespondError(c, response.CodeUnauthorized, "登录态无效", nil)
		return
	}

	admin, err := h.AdminRepo.GetByID(id)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "管理员查询失败", err)
		return
	}
	if admin == nil {
		shared.RespondError(c, response.CodeUnauthorized, "管理员不存在", nil)
		return
	}
	response.Success(c, admin)
}
