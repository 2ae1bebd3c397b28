package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name      string    `gorm:"default:New User" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `json:"-"`
	Avatar    string    `json:"avatar"`
	Role      int       `gorm:"default:0" json:"role"`   // 0: User - 1: Admin - 2: Vendor
	Status    int       `gorm:"default:0" json:"status"` // 0: active - 1: ban
	Places    []Place   `gorm:"foreignKey:UserID" json:"places,omitempty"`
	Reviews   []Review  `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}
