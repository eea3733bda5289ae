package handler

import (
	"net/http"
	"strconv"
	"time"

	"redemption_report/internal/domain/redemption/model"
	"redemption_report/internal/domain/redemption/service"
	"redemption_report/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReportHandler 兑换报表处理器
type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// 时间筛选支持的输入格式
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// parseFilter 从 URL 查询参数解析筛选条件
// 缺失或解析不了的参数一律当作"不加约束"，不报错
func parseFilter(c *gin.Context) model.ReportFilter {
	var filter model.ReportFilter

	if v, err := strconv.ParseUint(c.Query("discount_id"), 10, 64); err == nil {
		id := uint(v)
		filter.DiscountID = &id
	}
	if v, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil {
		id := uint(v)
		filter.UserID = &id
	}
	if t, ok := parseTime(c.Query("from")); ok {
		filter.From = &t
	}
	if t, ok := parseTime(c.Query("to")); ok {
		filter.To = &t
	}

	return filter
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GetReport 预览页：筛选下拉框候选 + 最多 200 行预览
func (h *ReportHandler) GetReport(c *gin.Context) {
	filter := parseFilter(c)

	page, err := h.service.LoadPage(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to load redemption report")
		return
	}

	response.Success(c, page)
}

// ExportInput 导出输入
type ExportInput struct {
	Scope string `json:"scope"` // all(默认) 或 filtered
}

// Export 导出 CSV 到存储区，返回文件的相对路径
// 筛选条件与预览页一样从查询参数读取，只在 scope=filtered 时生效
func (h *ReportHandler) Export(c *gin.Context) {
	var input ExportInput
	// body 可以为空，空 body 走默认 scope
	_ = c.ShouldBindJSON(&input)

	scope := service.ScopeAll
	if input.Scope == string(service.ScopeFiltered) {
		scope = service.ScopeFiltered
	}

	filter := parseFilter(c)

	relPath, err := h.service.Export(c.Request.Context(), filter, scope)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrExportFailed, "Export failed: "+err.Error())
		return
	}

	response.Success(c, gin.H{"path": relPath})
}
