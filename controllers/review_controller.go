package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodhopper/config"
	"foodhopper/models"
	"foodhopper/services"

	"github.com/gin-gonic/gin"
)

type UserInfo struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ReviewResponse struct {
	ID       uint      `json:"id"`
	PlaceID  uint      `json:"placeId"`
	Rating   int       `json:"rating"`
	Text     string    `json:"text"`
	Cost     *int      `json:"cost"`
	ImageURL string    `json:"imageUrl,omitempty"`
	CreateAt time.Time `json:"createdAt"`
	UpdateAt time.Time `json:"updatedAt"`
	User     UserInfo  `json:"user"`
}

func reviewResponse(review models.Review) ReviewResponse {
	response := ReviewResponse{
		ID:       review.ID,
		PlaceID:  review.PlaceID,
		Rating:   review.Rating,
		Text:     review.Text,
		Cost:     review.Cost,
		CreateAt: review.CreateAt,
		UpdateAt: review.UpdateAt,
		User: UserInfo{
			ID:     review.User.ID,
			Name:   review.User.Name,
			Avatar: review.User.Avatar,
		},
	}
	if review.ImageFile != "" {
		response.ImageURL = uploadURL(review.ImageFile)
	}
	return response
}

func reviewsCacheKey(placeIdFilter string) string {
	if placeIdFilter != "" {
		return fmt.Sprintf("reviews:place:%s", placeIdFilter)
	}
	return "reviews:all"
}

func invalidateReviewCaches(placeID uint) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, rdb,
		"reviews:all",
		fmt.Sprintf("reviews:place:%d", placeID),
		placesCacheKey,
	)
}

// GetAllReviews godoc
// @Summary List recent reviews
// @Tags reviews
// @Produce json
// @Param placeId query int false "Restrict to one place"
// @Success 200 {object} gin.H
// @Router /reviews [get]
func GetAllReviews(c *gin.Context) {
	placeIdFilter := c.DefaultQuery("placeId", "")
	cacheKey := reviewsCacheKey(placeIdFilter)

	var reviews []models.Review

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		var cached []ReviewResponse
		if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &cached); err == nil && len(cached) > 0 {
			c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Fetched reviews successfully", "data": cached})
			return
		}
	}

	tx := config.DB.Preload("User").Order("create_at DESC")
	if placeIdFilter != "" {
		if parsedPlaceId, err := strconv.Atoi(placeIdFilter); err == nil {
			tx = tx.Where("place_id = ?", parsedPlaceId)
		}
	}

	if err := tx.Limit(20).Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch reviews", "error": err.Error()})
		return
	}

	reviewResponses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, reviewResponse(review))
	}

	if redisErr == nil {
		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, reviewResponses, time.Hour); err != nil {
			log.Printf("Failed to cache review list: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Fetched reviews successfully", "data": reviewResponses})
}

// CreateReview godoc
// @Summary Review a place
// @Description Creates a review from multipart form data; rating 1-5 is required.
// @Tags reviews
// @Accept mpfd
// @Produce json
// @Param id path int true "Place ID"
// @Success 201 {object} gin.H
// @Failure 400 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /places/{id}/review [post]
func CreateReview(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	placeId := c.Param("id")

	var place models.Place
	if err := config.DB.First(&place, "id = ?", placeId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Place not found"})
		return
	}

	rating, err := strconv.Atoi(c.PostForm("rating"))
	if err != nil || rating < 1 || rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Rating 1-5 required"})
		return
	}

	review := models.Review{
		UserID:  currentUserID,
		PlaceID: place.ID,
		Rating:  rating,
		Text:    strings.TrimSpace(c.PostForm("text")),
		Cost:    parsePriceParam(c.PostForm("cost")),
	}

	if file, fileErr := c.FormFile("image"); fileErr == nil && file != nil && services.AllowedImageFile(file.Filename) {
		fileName, saveErr := services.SaveImage(file, fmt.Sprintf("review_%d_%d", place.ID, currentUserID))
		if saveErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to store review image", "error": saveErr.Error()})
			return
		}
		review.ImageFile = fileName
	}

	if err := config.DB.Create(&review).Error; err != nil {
		if review.ImageFile != "" {
			_ = services.RemoveImage(review.ImageFile)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to create review", "error": err.Error()})
		return
	}

	invalidateReviewCaches(place.ID)

	if err := config.DB.Preload("User").First(&review, review.ID).Error; err != nil {
		log.Printf("Failed to reload review %d: %v", review.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"code": 1, "mess": "Review created successfully", "data": reviewResponse(review)})
}
