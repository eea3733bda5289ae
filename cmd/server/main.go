package main

import (
	"log"

	"redemption_report/internal/pkg/config"
	"redemption_report/internal/pkg/middleware"
	"redemption_report/internal/pkg/notify"
	"redemption_report/internal/pkg/registry"
	"redemption_report/internal/pkg/storage"
	"redemption_report/pkg/database"
	"redemption_report/pkg/logger"

	// 模块通过 init() 自动注册
	_ "redemption_report/internal/domain/discount"
	_ "redemption_report/internal/domain/redemption"
	_ "redemption_report/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	// 1. 配置与日志
	config.LoadConfig()
	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	// 2. 基础设施
	db := database.InitDatabase()
	reportDB := database.InitReportDB()
	rdb := database.InitRedis()

	if err := storage.InitStore(); err != nil {
		log.Fatalf("Failed to initialize export storage: %v", err)
	}
	notify.InitNotifier()

	// 3. HTTP 引擎与全局中间件
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.LoggerMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.RateLimitMiddleware(rate.Limit(100), 200),
		cors.Default(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 4. 初始化各业务模块
	moduleCtx := &registry.ModuleContext{
		DB:       db,
		ReportDB: reportDB,
		Redis:    rdb,
		Router:   r,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		log.Fatalf("Failed to initialize modules: %v", err)
	}

	// 5. 启动
	port := config.GlobalConfig.Server.Port
	log.Printf("Server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
