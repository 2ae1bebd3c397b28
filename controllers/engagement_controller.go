package controllers

import (
	"net/http"

	"foodhopper/config"
	"foodhopper/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ToggleLike godoc
// @Summary Toggle a like
// @Description Removes the caller's like when present, creates it otherwise, and returns the new count.
// @Tags places
// @Produce json
// @Param id path int true "Place ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /places/{id}/like [post]
func ToggleLike(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	placeId := c.Param("id")

	var place models.Place
	if err := config.DB.First(&place, "id = ?", placeId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Place not found"})
		return
	}

	// Delete-then-create inside one transaction; the unique (user, place)
	// index turns a concurrent double-create into a constraint error instead
	// of a duplicate row.
	status := "liked"
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND place_id = ?", currentUserID, place.ID).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			status = "unliked"
			return nil
		}
		return tx.Create(&models.Like{UserID: currentUserID, PlaceID: place.ID}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to toggle like", "error": err.Error()})
		return
	}

	var likeCount int64
	config.DB.Model(&models.Like{}).Where("place_id = ?", place.ID).Count(&likeCount)

	invalidatePlaceCache()

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Like updated", "data": gin.H{
		"status":    status,
		"likeCount": likeCount,
	}})
}

// FavoritePlace godoc
// @Summary Add or remove a favorite
// @Description action=remove deletes the favorite if present; any other action adds it. Both are no-ops when already in the requested state.
// @Tags places
// @Produce json
// @Param id path int true "Place ID"
// @Param action formData string false "remove to unfavorite"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /places/{id}/favorite [post]
func FavoritePlace(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	placeId := c.Param("id")

	var place models.Place
	if err := config.DB.First(&place, "id = ?", placeId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Place not found"})
		return
	}

	action := c.PostForm("action")
	status := "added"

	if action == "remove" {
		if err := config.DB.Where("user_id = ? AND place_id = ?", currentUserID, place.ID).Delete(&models.Favorite{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to remove favorite", "error": err.Error()})
			return
		}
		status = "removed"
	} else {
		var favorite models.Favorite
		if err := config.DB.Where(models.Favorite{UserID: currentUserID, PlaceID: place.ID}).FirstOrCreate(&favorite).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to add favorite", "error": err.Error()})
			return
		}
	}

	var favoriteCount int64
	config.DB.Model(&models.Favorite{}).Where("place_id = ?", place.ID).Count(&favoriteCount)

	invalidatePlaceCache()

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Favorite updated", "data": gin.H{
		"status":        status,
		"favoriteCount": favoriteCount,
	}})
}
