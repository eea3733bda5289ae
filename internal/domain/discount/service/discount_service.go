package service

import (
	"context"
	"errors"
	"time"

	"redemption_report/internal/domain/discount/model"
	"redemption_report/internal/domain/discount/repository"
	"redemption_report/pkg/cache"

	"github.com/shopspring/decimal"
)

// 筛选下拉框最多展示最近 200 条折扣
const selectorLimit = 200

// 缓存键常量
const (
	selectorCacheKey = "discount:selector"
	selectorCacheTTL = time.Minute * 10
)

type DiscountService interface {
	Create(code, discountType string, value decimal.Decimal) (*model.Discount, error)
	GetByID(id uint) (*model.Discount, error)
	ListSelector(ctx context.Context) ([]model.Discount, error)
}

type discountService struct {
	repo  repository.DiscountRepository
	cache cache.CacheService
}

func NewDiscountService(repo repository.DiscountRepository, cache cache.CacheService) DiscountService {
	return &discountService{repo: repo, cache: cache}
}

// Create 创建折扣规则
func (s *discountService) Create(code, discountType string, value decimal.Decimal) (*model.Discount, error) {
	if discountType != model.TypePercentage && discountType != model.TypeFixed {
		return nil, errors.New("discount type must be percentage or fixed")
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("discount value must be positive")
	}
	if discountType == model.TypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("percentage discount cannot exceed 100")
	}

	discount := &model.Discount{
		Code:         code,
		DiscountType: discountType,
		Value:        value,
	}
	if err := s.repo.Create(discount); err != nil {
		return nil, err
	}

	// 新折扣要出现在下拉框里，清掉选择器缓存
	_ = s.cache.Delete(context.Background(), selectorCacheKey)

	return discount, nil
}

func (s *discountService) GetByID(id uint) (*model.Discount, error) {
	return s.repo.GetByID(id)
}

// ListSelector 筛选下拉框的折扣候选列表，带缓存
func (s *discountService) ListSelector(ctx context.Context) ([]model.Discount, error) {
	var cached []model.Discount
	if err := s.cache.Get(ctx, selectorCacheKey, &cached); err == nil {
		return cached, nil
	}

	discounts, err := s.repo.ListRecent(selectorLimit)
	if err != nil {
		return nil, err
	}

	// 缓存写失败不影响读路径
	_ = s.cache.Set(ctx, selectorCacheKey, discounts, selectorCacheTTL)

	return discounts, nil
}
