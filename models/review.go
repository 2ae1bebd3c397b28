package models

import (
	"errors"
	"time"
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"userId"`
	PlaceID   uint      `json:"placeId"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Text      string    `json:"text"`
	Cost      *int      `json:"cost"`
	ImageFile string    `json:"imageFile"`
	CreateAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdateAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
}

func (r *Review) ValidateRating() error {
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
