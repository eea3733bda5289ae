package repository

import (
	"context"
	"fmt"
	"strings"

	"redemption_report/internal/domain/redemption/model"

	"github.com/jmoiron/sqlx"
)

// ReportRepository 兑换报表的只读查询
// 报表 SQL 手写并走独立的 sqlx 连接，不经过 GORM
type ReportRepository interface {
	// PreviewReport 预览查询，整体物化，最多 limit 行
	PreviewReport(ctx context.Context, filter model.ReportFilter, limit int) ([]model.ReportRow, error)

	// StreamReport 游标式逐行读取，最多 limit 行，每行回调一次 fn
	// fn 返回错误时中止并透传该错误
	StreamReport(ctx context.Context, filter model.ReportFilter, limit int, fn func(model.ReportRow) error) error

	// ListDiscountOptions 筛选下拉框候选，按 id 倒序最多 limit 条
	ListDiscountOptions(ctx context.Context, limit int) ([]model.DiscountOption, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

// reportSelect 三表联查：兑换记录必有折扣(INNER JOIN)，用户可空(LEFT JOIN)
const reportSelect = `SELECT r.id, r.discount_id, d.code, d.discount_type, r.user_id, u.email AS user_email,
       r.order_id, r.amount_saved, r.currency, r.redeemed_at
FROM redemptions r
INNER JOIN discounts d ON d.id = r.discount_id
LEFT JOIN users u ON u.id = r.user_id`

const discountOptionsSelect = `SELECT id, code, discount_type, value
FROM discounts
WHERE deleted_at IS NULL
ORDER BY id DESC
LIMIT $1`

// buildReportQuery 组装报表 SQL
// 只追加有值的条件（AND 语义），时间两端闭区间，
// redeemed_at 倒序、id 做二级排序保证同一时间戳下顺序稳定
func buildReportQuery(filter model.ReportFilter, limit int) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(expr string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.DiscountID != nil {
		add("r.discount_id = $%d", *filter.DiscountID)
	}
	if filter.UserID != nil {
		add("r.user_id = $%d", *filter.UserID)
	}
	if filter.From != nil {
		add("r.redeemed_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("r.redeemed_at <= $%d", *filter.To)
	}

	query := reportSelect
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, limit)
	query += fmt.Sprintf("\nORDER BY r.redeemed_at DESC, r.id DESC\nLIMIT $%d", len(args))

	return query, args
}

func (r *reportRepository) PreviewReport(ctx context.Context, filter model.ReportFilter, limit int) ([]model.ReportRow, error) {
	query, args := buildReportQuery(filter, limit)

	rows := make([]model.ReportRow, 0, limit)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("report preview query failed: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) StreamReport(ctx context.Context, filter model.ReportFilter, limit int, fn func(model.ReportRow) error) error {
	query, args := buildReportQuery(filter, limit)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("report stream query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row model.ReportRow
		if err := rows.StructScan(&row); err != nil {
			return fmt.Errorf("report row scan failed: %w", err)
		}
		if err := fn(row); err != nil {
			return err
		}
	}

	// 游标中途断开（连接丢失等）必须浮出去，不能当成正常结束，
	// 否则调用方会把截断的结果当成完整导出
	if err := rows.Err(); err != nil {
		return fmt.Errorf("report stream interrupted: %w", err)
	}
	return nil
}

func (r *reportRepository) ListDiscountOptions(ctx context.Context, limit int) ([]model.DiscountOption, error) {
	options := make([]model.DiscountOption, 0, limit)
	if err := r.db.SelectContext(ctx, &options, discountOptionsSelect, limit); err != nil {
		return nil, fmt.Errorf("discount options query failed: %w", err)
	}
	return options, nil
}
