package repository

import (
	"redemption_report/internal/domain/discount/model"

	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(discount *model.Discount) error
	GetByID(id uint) (*model.Discount, error)
	GetByCode(code string) (*model.Discount, error)
	ListRecent(limit int) ([]model.Discount, error)
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(discount *model.Discount) error {
	return r.db.Create(discount).Error
}

func (r *discountRepository) GetByID(id uint) (*model.Discount, error) {
	var discount model.Discount
	if err := r.db.First(&discount, id).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) GetByCode(code string) (*model.Discount, error) {
	var discount model.Discount
	if err := r.db.Where("code = ?", code).First(&discount).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

// ListRecent 最近创建的折扣，按 id 倒序
// 只取筛选下拉框需要的最小投影
func (r *discountRepository) ListRecent(limit int) ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.
		Select("id", "code", "discount_type", "value").
		Order("id desc").
		Limit(limit).
		Find(&discounts).Error
	if err != nil {
		return nil, err
	}
	return discounts, nil
}
