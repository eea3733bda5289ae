package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"time"

	"redemption_report/internal/domain/redemption/model"
	"redemption_report/internal/domain/redemption/repository"
	"redemption_report/internal/pkg/notify"
	"redemption_report/internal/pkg/storage"
	"redemption_report/pkg/logger"
	"redemption_report/pkg/metrics"

	"go.uber.org/zap"
)

const (
	// previewLimit 预览页行数上限，超出部分静默截断，不报错
	previewLimit = 200
	// exportLimit 导出行数上限，同样是静默截断
	exportLimit = 5000
	// selectorLimit 筛选下拉框的折扣候选数上限
	selectorLimit = 200
)

// ExportScope 导出范围
type ExportScope string

const (
	// ScopeAll 导出全量兑换记录，忽略当前筛选条件。
	// 这是默认值：旧版管理后台的导出从来不看预览页的筛选状态，
	// 这里保留该行为并把筛选导出作为显式的第二种模式提供。
	ScopeAll ExportScope = "all"
	// ScopeFiltered 按当前筛选条件导出
	ScopeFiltered ExportScope = "filtered"
)

// ReportPage 预览页数据：筛选下拉框候选 + 预览行
type ReportPage struct {
	Discounts []model.DiscountOption `json:"discounts"`
	Rows      []model.ReportRow      `json:"rows"`
}

// ReportService 兑换报表服务
type ReportService interface {
	// LoadPage 加载预览页：恰好一次折扣候选查询 + 一次预览查询，无副作用
	LoadPage(ctx context.Context, filter model.ReportFilter) (*ReportPage, error)

	// Export 导出 CSV 并落盘，返回存储区内的相对路径
	Export(ctx context.Context, filter model.ReportFilter, scope ExportScope) (string, error)
}

type reportService struct {
	repo      repository.ReportRepository
	store     storage.Store
	notifier  notify.Notifier
	exportDir string
	collector *metrics.MetricsCollector
}

func NewReportService(repo repository.ReportRepository, store storage.Store, notifier notify.Notifier, exportDir string) ReportService {
	return &reportService{
		repo:      repo,
		store:     store,
		notifier:  notifier,
		exportDir: exportDir,
		collector: metrics.GetGlobalCollector(),
	}
}

func (s *reportService) LoadPage(ctx context.Context, filter model.ReportFilter) (*ReportPage, error) {
	start := time.Now()

	discounts, err := s.repo.ListDiscountOptions(ctx, selectorLimit)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.PreviewReport(ctx, filter, previewLimit)
	if err != nil {
		return nil, err
	}

	s.collector.RecordReportQuery("preview", len(rows), time.Since(start))

	return &ReportPage{
		Discounts: discounts,
		Rows:      rows,
	}, nil
}

func (s *reportService) Export(ctx context.Context, filter model.ReportFilter, scope ExportScope) (string, error) {
	start := time.Now()

	effective := model.ReportFilter{}
	if scope == ScopeFiltered {
		effective = filter
	}

	// 整个文件先写进内存缓冲，再一次性交给存储层；
	// 行数上限 5000，缓冲大小可控
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(model.CSVHeader); err != nil {
		s.collector.RecordExport("error", 0, time.Since(start))
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}

	rowCount := 0
	err := s.repo.StreamReport(ctx, effective, exportLimit, func(row model.ReportRow) error {
		rowCount++
		return w.Write(row.CSVRecord())
	})
	if err != nil {
		s.collector.RecordExport("error", 0, time.Since(start))
		return "", fmt.Errorf("export query failed: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		s.collector.RecordExport("error", 0, time.Since(start))
		return "", fmt.Errorf("failed to flush csv writer: %w", err)
	}

	// 分钟粒度的时间戳文件名：同一分钟内的两次导出会互相覆盖，
	// 这是已知并接受的限制
	filename := fmt.Sprintf("discount_redemptions_%s.csv", time.Now().Format("20060102_1504"))
	relPath := path.Join(s.exportDir, filename)

	if err := s.store.Save(ctx, relPath, buf.Bytes()); err != nil {
		s.collector.RecordExport("error", 0, time.Since(start))
		return "", fmt.Errorf("failed to store export file: %w", err)
	}

	// 通知只在文件完整落盘之后发；通知失败不回滚导出，只记日志
	if err := s.notifier.Success("Redemption export ready", "Export finished: "+relPath); err != nil {
		if logger.Log != nil {
			logger.Log.Warn("export notification failed",
				zap.String("path", relPath),
				zap.Error(err),
			)
		}
	}

	s.collector.RecordExport("success", buf.Len(), time.Since(start))
	s.collector.RecordReportQuery("export", rowCount, time.Since(start))

	return relPath, nil
}
