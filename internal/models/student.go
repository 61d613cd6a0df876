package models

import (
	"time"

	"gorm.io/gorm"
)

// Student 队员名册表（下单人校验依据）
type Student struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // 姓名
	Subteam   string         `gorm:"index" json:"subteam"`             // 子队
	CreatedAt time.Time      `json:"created_at"`                       // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Student) TableName() string {
	return "students"
}
