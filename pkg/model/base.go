package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 基础模型，自增整型主键
// 报表查询按 id 做二级排序，自增主键保证同一时间戳下的顺序稳定
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}
