package models

import "time"

// Like and Favorite are (user, place) join rows. The unique index keeps at
// most one row per pair; presence is the whole state.

type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:uq_like" json:"userId"`
	PlaceID   uint      `gorm:"uniqueIndex:uq_like" json:"placeId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:uq_favorite" json:"userId"`
	PlaceID   uint      `gorm:"uniqueIndex:uq_favorite" json:"placeId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
