package redemption

import (
	"redemption_report/internal/domain/redemption/handler"
	"redemption_report/internal/domain/redemption/repository"
	"redemption_report/internal/domain/redemption/service"
	"redemption_report/internal/pkg/config"
	"redemption_report/internal/pkg/middleware"
	"redemption_report/internal/pkg/notify"
	"redemption_report/internal/pkg/registry"
	"redemption_report/internal/pkg/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RedemptionModule 兑换报表模块
type RedemptionModule struct{}

func init() {
	registry.Register(&RedemptionModule{})
}

func (m *RedemptionModule) Name() string {
	return "redemption"
}

func (m *RedemptionModule) Priority() int {
	return 20
}

func (m *RedemptionModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入：报表查询走独立的只读连接
	repo := repository.NewReportRepository(ctx.ReportDB)
	svc := service.NewReportService(repo, storage.GlobalStore, notify.GlobalNotifier, config.GlobalConfig.Export.Dir)
	h := handler.NewReportHandler(svc)

	// 2. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ReportHandler) {
	g := r.Group("/admin/redemptions")
	g.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		g.GET("/", h.GetReport)
		// 导出会扫到 5000 行并占住一条报表连接，单独限流
		g.POST("/export", middleware.RateLimitMiddleware(rate.Limit(1), 3), h.Export)
	}
}
