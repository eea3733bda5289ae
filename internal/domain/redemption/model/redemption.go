package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Redemption 折扣兑换事件
// 由下单流程在订单落库时写入，之后不再变更；报表侧只读
type Redemption struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	DiscountID  uint            `gorm:"index;not null" json:"discountId"`
	UserID      *uint           `gorm:"index" json:"userId,omitempty"` // 游客兑换时为空
	OrderID     uint            `gorm:"not null" json:"orderId"`
	AmountSaved decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amountSaved"`
	Currency    string          `gorm:"type:varchar(3);not null" json:"currency"`
	RedeemedAt  time.Time       `gorm:"index;not null" json:"redeemedAt"`
}

// ReportFilter 报表筛选条件
// 每个字段都是可选的，nil 表示不加该约束；条件之间取 AND，
// From/To 两端都是闭区间
type ReportFilter struct {
	DiscountID *uint
	UserID     *uint
	From       *time.Time
	To         *time.Time
}

// IsZero 是否没有任何筛选条件
func (f ReportFilter) IsZero() bool {
	return f.DiscountID == nil && f.UserID == nil && f.From == nil && f.To == nil
}

// ReportRow 报表行：兑换记录 + 折扣码/类型 + 用户邮箱
// 折扣侧是 INNER JOIN，Code 一定非空；用户侧是 LEFT JOIN，
// 游客兑换的 UserID 和 Email 都是 nil
type ReportRow struct {
	ID           uint            `db:"id" json:"id"`
	DiscountID   uint            `db:"discount_id" json:"discountId"`
	Code         string          `db:"code" json:"code"`
	DiscountType string          `db:"discount_type" json:"discountType"`
	UserID       *uint           `db:"user_id" json:"userId,omitempty"`
	Email        *string         `db:"user_email" json:"email,omitempty"`
	OrderID      uint            `db:"order_id" json:"orderId"`
	AmountSaved  decimal.Decimal `db:"amount_saved" json:"amountSaved"`
	Currency     string          `db:"currency" json:"currency"`
	RedeemedAt   time.Time       `db:"redeemed_at" json:"redeemedAt"`
}

// CSVHeader 导出文件的固定表头
var CSVHeader = []string{"discount_id", "code", "user_id", "email", "order_id", "amount_saved", "currency", "redeemed_at"}

// CSVRecord 按表头顺序输出一行字段
func (r ReportRow) CSVRecord() []string {
	userID := ""
	if r.UserID != nil {
		userID = strconv.FormatUint(uint64(*r.UserID), 10)
	}
	email := ""
	if r.Email != nil {
		email = *r.Email
	}
	return []string{
		strconv.FormatUint(uint64(r.DiscountID), 10),
		r.Code,
		userID,
		email,
		strconv.FormatUint(uint64(r.OrderID), 10),
		r.AmountSaved.StringFixed(2),
		r.Currency,
		r.RedeemedAt.Format("2006-01-02 15:04:05"),
	}
}

// DiscountOption 筛选下拉框的折扣候选项（最小投影）
type DiscountOption struct {
	ID           uint            `db:"id" json:"id"`
	Code         string          `db:"code" json:"code"`
	DiscountType string          `db:"discount_type" json:"discountType"`
	Value        decimal.Decimal `db:"value" json:"value"`
}
