package model

import (
	baseModel "redemption_report/pkg/model"
)

// User 账号模型
// 既包括下单的顾客账号（兑换记录通过 user_id 关联到这里），
// 也包括操作报表的管理员账号（通过 Role 区分）
type User struct {
	baseModel.BaseModel
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Nickname string `json:"nickname"`
	Role     int    `gorm:"default:1" json:"role"`
	Status   int    `gorm:"default:1" json:"status"`
}

const (
	RoleUser  = 1
	RoleAdmin = 2

	StatusNormal  = 1
	StatusBanned  = 2
	StatusDeleted = 3
)
