package handler

import (
	"net/http"
	"strconv"

	"redemption_report/internal/domain/discount/service"
	"redemption_report/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DiscountHandler struct {
	service service.DiscountService
}

func NewDiscountHandler(service service.DiscountService) *DiscountHandler {
	return &DiscountHandler{service: service}
}

type CreateDiscountInput struct {
	Code         string          `json:"code" binding:"required"`
	DiscountType string          `json:"discountType" binding:"required"`
	Value        decimal.Decimal `json:"value" binding:"required"`
}

// CreateDiscount 创建折扣规则
func (h *DiscountHandler) CreateDiscount(c *gin.Context) {
	var input CreateDiscountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	discount, err := h.service.Create(input.Code, input.DiscountType, input.Value)
	if err != nil {
		response.Fail(c, response.CodeError, err.Error())
		return
	}

	response.Success(c, discount)
}

// GetDiscount 查询单个折扣
func (h *DiscountHandler) GetDiscount(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid discount id")
		return
	}

	discount, err := h.service.GetByID(uint(id))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrDiscountNotFound, "Discount not found")
		return
	}

	response.Success(c, discount)
}

// ListDiscounts 筛选下拉框的折扣候选列表
func (h *DiscountHandler) ListDiscounts(c *gin.Context) {
	discounts, err := h.service.ListSelector(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to list discounts")
		return
	}

	response.Success(c, discounts)
}
