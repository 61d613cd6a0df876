package admin

import "github.com/denhamvenom/inventoryapp/internal/provider"

// Handler 管理端接口处理器入口
// 说明：除登录外均需 JWT 鉴权。
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
