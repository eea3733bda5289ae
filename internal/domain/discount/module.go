package discount

import (
	"redemption_report/internal/domain/discount/handler"
	"redemption_report/internal/domain/discount/repository"
	"redemption_report/internal/domain/discount/service"
	"redemption_report/internal/pkg/middleware"
	"redemption_report/internal/pkg/registry"
	"redemption_report/pkg/cache"

	"github.com/gin-gonic/gin"
)

// DiscountModule 折扣模块
type DiscountModule struct{}

func init() {
	registry.Register(&DiscountModule{})
}

func (m *DiscountModule) Name() string {
	return "discount"
}

func (m *DiscountModule) Priority() int {
	return 10
}

func (m *DiscountModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	dRepo := repository.NewDiscountRepository(ctx.DB)
	dCache := cache.NewRedisCache(ctx.Redis)
	dService := service.NewDiscountService(dRepo, dCache)
	dHandler := handler.NewDiscountHandler(dService)

	// 2. 路由注册
	setupRoutes(ctx.Router, dHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.DiscountHandler) {
	g := r.Group("/admin/discounts")
	g.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		g.GET("/", h.ListDiscounts)
		g.GET("/:id", h.GetDiscount)
		g.POST("/", h.CreateDiscount)
	}
}
