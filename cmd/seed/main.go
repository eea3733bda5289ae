package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	discountModel "redemption_report/internal/domain/discount/model"
	redemptionModel "redemption_report/internal/domain/redemption/model"
	userModel "redemption_report/internal/domain/user/model"
	"redemption_report/internal/pkg/config"
	"redemption_report/pkg/database"

	"github.com/shopspring/decimal"
)

// 本地开发用的数据填充工具：
// 生成折扣、用户和兑换事件，便于在预览页和导出上做手工验证
func main() {
	discountCount := flag.Int("discounts", 20, "number of discounts to create")
	userCount := flag.Int("users", 50, "number of users to create")
	redemptionCount := flag.Int("redemptions", 1000, "number of redemption events to create")
	flag.Parse()

	config.LoadConfig()
	db := database.InitDatabase()

	// 1. 折扣
	discounts := make([]discountModel.Discount, 0, *discountCount)
	for i := 0; i < *discountCount; i++ {
		dType := discountModel.TypePercentage
		value := decimal.NewFromInt(int64(5 + rand.Intn(45)))
		if i%2 == 0 {
			dType = discountModel.TypeFixed
			value = decimal.NewFromInt(int64(1 + rand.Intn(20)))
		}
		discounts = append(discounts, discountModel.Discount{
			Code:         fmt.Sprintf("SEED-%04d", i),
			DiscountType: dType,
			Value:        value,
		})
	}
	if err := db.Create(&discounts).Error; err != nil {
		log.Fatalf("Failed to seed discounts: %v", err)
	}

	// 2. 用户
	users := make([]userModel.User, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		users = append(users, userModel.User{
			Email:    fmt.Sprintf("seed-user-%04d@example.com", i),
			Nickname: fmt.Sprintf("seed-user-%04d", i),
			Role:     userModel.RoleUser,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	// 3. 兑换事件：约 1/5 是游客兑换（user_id 为空）
	now := time.Now()
	redemptions := make([]redemptionModel.Redemption, 0, *redemptionCount)
	for i := 0; i < *redemptionCount; i++ {
		var userID *uint
		if rand.Intn(5) != 0 {
			id := users[rand.Intn(len(users))].ID
			userID = &id
		}
		amount := decimal.NewFromFloat(float64(rand.Intn(10000)) / 100)
		redemptions = append(redemptions, redemptionModel.Redemption{
			DiscountID:  discounts[rand.Intn(len(discounts))].ID,
			UserID:      userID,
			OrderID:     uint(100000 + i),
			AmountSaved: amount,
			Currency:    "USD",
			RedeemedAt:  now.Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
		})
	}
	if err := db.CreateInBatches(&redemptions, 500).Error; err != nil {
		log.Fatalf("Failed to seed redemptions: %v", err)
	}

	log.Printf("Seeded %d discounts, %d users, %d redemptions",
		len(discounts), len(users), len(redemptions))
}
