package admin

import (
	"github.com/denhamvenom/inventoryapp/internal/http/handlers/shared"
	"github.com/denhamvenom/inventoryapp/internal/http/response"
	"github.com/denhamvenom/inventoryapp/internal/service"

	"github.com/gin-gonic/gin"
)

// TriggerSyncPush 手动触发推送（本地待同步行写入看板）
func (h *Handler) TriggerSyncPush(c *gin.Context) {
	if h.SyncService == nil {
		shared.RespondError(c, response.CodeBadRequest, service.ErrSyncDisabled.Error(), nil)
		return
	}

	result, err := h.SyncService.PushOrders(c.Request.Context())
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "推送失败", err)
		return
	}
	response.Success(c, result)
}

// TriggerSyncPull 手动触发拉取（回读看板状态）
func (h *Handler) TriggerSyncPull(c *gin.Context) {
	if h.SyncService == nil {
		shared.RespondError(c, response.CodeBadRequest, service.ErrSyncDisabled.Error(), nil)
		return
	}

	result, err := h.SyncService.PullStatuses(c.Request.Context())
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "拉取失败", err)
		return
	}
	response.Success(c, result)
}

// TriggerSyncFull 手动触发完整同步（先推后拉）
func (h *Handler) TriggerSyncFull(c *gin.Context) {
	if h.SyncService == nil {
		shared.RespondError(c, response.CodeBadRequest, service.ErrSyncDisabled.Error(), nil)
		return
	}

	result, err := h.SyncService.RunSync(c.Request.Context())
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "同步失败", err)
		return
	}
	response.Success(c, result)
}
