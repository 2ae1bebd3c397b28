package controllers

import (
	"log"
	"net/http"
	"sort"

	"foodhopper/config"
	"foodhopper/models"
	"foodhopper/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAllPlacesAdmin lists every place newest-first for the admin dashboard,
// straight from the database so moderation always sees current data.
func GetAllPlacesAdmin(c *gin.Context) {
	var allPlaces []models.Place
	if err := config.DB.Model(&models.Place{}).
		Preload("Photos").
		Preload("Reviews").
		Preload("Likes").
		Preload("Favorites").
		Find(&allPlaces).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch places", "error": err.Error()})
		return
	}

	sort.Slice(allPlaces, func(i, j int) bool {
		return allPlaces[i].CreateAt.After(allPlaces[j].CreateAt)
	})

	placesResponse := make([]PlaceSummaryResponse, 0, len(allPlaces))
	for _, place := range allPlaces {
		placesResponse = append(placesResponse, placeSummary(place))
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Fetched places successfully", "data": placesResponse})
}

func GetAllReviewsAdmin(c *gin.Context) {
	var allReviews []models.Review
	if err := config.DB.Preload("User").Order("create_at DESC").Find(&allReviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch reviews", "error": err.Error()})
		return
	}

	reviewResponses := make([]ReviewResponse, 0, len(allReviews))
	for _, review := range allReviews {
		reviewResponses = append(reviewResponses, reviewResponse(review))
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Fetched reviews successfully", "data": reviewResponses})
}

// DeletePlace godoc
// @Summary Delete a place (admin)
// @Description Removes the place with its photos, reviews, likes, favorites and uploaded files.
// @Tags admin
// @Produce json
// @Param id path int true "Place ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /admin/places/{id} [delete]
func DeletePlace(c *gin.Context) {
	placeId := c.Param("id")

	var place models.Place
	if err := config.DB.Preload("Photos").Preload("Reviews").First(&place, "id = ?", placeId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Place not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("place_id = ?", place.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("place_id = ?", place.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("place_id = ?", place.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("place_id = ?", place.ID).Delete(&models.PlaceImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&place).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to delete place", "error": err.Error()})
		return
	}

	// Files go last; rows are already gone and a leftover file is harmless.
	for _, photo := range place.Photos {
		if err := services.RemoveImage(photo.FileName); err != nil {
			log.Printf("Failed to remove place image %s: %v", photo.FileName, err)
		}
	}
	for _, review := range place.Reviews {
		if err := services.RemoveImage(review.ImageFile); err != nil {
			log.Printf("Failed to remove review image %s: %v", review.ImageFile, err)
		}
	}

	invalidatePlaceCache()
	invalidateReviewCaches(place.ID)

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Place deleted successfully"})
}

func DeleteReview(c *gin.Context) {
	reviewId := c.Param("id")

	var review models.Review
	if err := config.DB.First(&review, "id = ?", reviewId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Review not found"})
		return
	}

	if err := config.DB.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to delete review", "error": err.Error()})
		return
	}

	if err := services.RemoveImage(review.ImageFile); err != nil {
		log.Printf("Failed to remove review image %s: %v", review.ImageFile, err)
	}

	invalidateReviewCaches(review.PlaceID)

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Review deleted successfully"})
}
