package public

import "github.com/denhamvenom/inventoryapp/internal/provider"

// Handler 学生端/公开接口处理器入口
// 说明：该处理器用于学生自助下单与目录查询，无需登录。
type Handler struct {
	*provider.Container
}

// New 创建学生端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
