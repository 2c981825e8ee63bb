package model

import (
	"time"

	"gorm.io/datatypes"
)

// ClientIntake 是客户录入弹窗提交的一条记录。
type ClientIntake struct {
	ID           string            `gorm:"primaryKey" json:"id"`
	CompanyName  string            `json:"company_name"`
	ContactName  string            `json:"contact_name"`
	ContactEmail string            `gorm:"index" json:"contact_email"`
	Phone        string            `json:"phone"`
	Website      string            `json:"website"`
	Industry     string            `json:"industry"`
	ClientType   string            `json:"client_type"`
	Notes        string            `json:"notes"`
	Extra        datatypes.JSONMap `json:"extra,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
