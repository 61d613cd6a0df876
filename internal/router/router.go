package router

import (
	"fmt"
	"strings"

	"github.com/denhamvenom/inventoryapp/internal/cache"
	"github.com/denhamvenom/inventoryapp/internal/config"
	adminhandlers "github.com/denhamvenom/inventoryapp/internal/http/handlers/admin"
	publichandlers "github.com/denhamvenom/inventoryapp/internal/http/handlers/public"
	"github.com/denhamvenom/inventoryapp/internal/logger"
	"github.com/denhamvenom/inventoryapp/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按学生端/管理端分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "inv"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: 60,
		MaxRequests:   10,
	}
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order_submit", redisPrefix),
		WindowSeconds: 60,
		MaxRequests:   30,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的 CSV 文件）
	uploadDir := cfg.Upload.Dir
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 学生端公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/parts", publicHandler.ListParts)
			public.GET("/parts/categories", publicHandler.ListPartCategories)
			public.GET("/parts/low-stock", publicHandler.ListLowStockParts)
			public.GET("/parts/:part_id", publicHandler.GetPart)
			public.GET("/students", publicHandler.ListStudents)
			public.GET("/orders/:order_number", publicHandler.GetOrder)
			public.POST("/orders", RateLimitMiddleware(redisClient, submitRule, KeyByIPAndJSONField("student_name")), publicHandler.SubmitOrder)
			public.POST("/orders/custom", RateLimitMiddleware(redisClient, submitRule, KeyByIPAndJSONField("student_name")), publicHandler.SubmitCustomRequest)
			public.POST("/orders/csv", RateLimitMiddleware(redisClient, submitRule, KeyByIP), publicHandler.SubmitCSVOrder)
		}

		// 管理端登录
		apiV1.POST("/admin/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.Login)

		// 管理端接口（需鉴权）
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
		{
			admin.GET("/profile", adminHandler.Profile)

			admin.GET("/orders", adminHandler.ListAdminOrders)
			admin.GET("/orders/:order_number", adminHandler.GetAdminOrder)

			admin.POST("/parts", adminHandler.CreatePart)
			admin.PUT("/parts/:part_id", adminHandler.UpdatePart)
			admin.DELETE("/parts/:part_id", adminHandler.DeletePart)
			admin.POST("/parts/:part_id/stock", adminHandler.AdjustPartStock)
			admin.GET("/parts/low-stock", adminHandler.ListLowStockParts)

			admin.GET("/students", adminHandler.ListAdminStudents)
			admin.POST("/students", adminHandler.CreateStudent)

			admin.POST("/sync/push", adminHandler.TriggerSyncPush)
			admin.POST("/sync/pull", adminHandler.TriggerSyncPull)
			admin.POST("/sync/run", adminHandler.TriggerSyncFull)
		}
	}

	return r
}
