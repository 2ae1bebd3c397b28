package models

import (
	"errors"
	"time"
)

type Place struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	CuisineTypes string    `json:"cuisineTypes"` // comma separated tags, stored lowercase
	DietOptions  string    `json:"dietOptions"`  // comma separated tags, stored lowercase
	PriceMin     *int      `json:"priceMin"`
	PriceMax     *int      `json:"priceMax"`
	Hours        string    `json:"hours"`
	ContactInfo  string    `json:"contactInfo"`
	MenuURL      string    `json:"menuUrl"`
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	UserID       uint      `json:"userId"` // Owner of the place
	CreateAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdateAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	User      User         `gorm:"foreignKey:UserID" json:"-"`
	Photos    []PlaceImage `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"photos"`
	Reviews   []Review     `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Likes     []Like       `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"-"`
	Favorites []Favorite   `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Place) ValidateCoordinates() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

type PlaceImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaceID    uint      `gorm:"not null" json:"placeId"`
	FileName   string    `gorm:"not null" json:"fileName"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}
