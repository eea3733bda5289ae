package model

import (
	baseModel "redemption_report/pkg/model"

	"github.com/shopspring/decimal"
)

// Discount 促销规则定义
type Discount struct {
	baseModel.BaseModel
	Code         string          `gorm:"uniqueIndex;type:varchar(64);not null" json:"code"`
	DiscountType string          `gorm:"type:varchar(16);not null" json:"discountType"` // percentage, fixed
	Value        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`
}

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)
