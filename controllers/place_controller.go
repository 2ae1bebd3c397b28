package controllers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"foodhopper/config"
	"foodhopper/models"
	"foodhopper/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const placesCacheKey = "places:all"

type PlaceSummaryResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	CuisineTypes  string    `json:"cuisineTypes"`
	DietOptions   string    `json:"dietOptions"`
	PriceMin      *int      `json:"priceMin"`
	PriceMax      *int      `json:"priceMax"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	PhotoURLs     []string  `json:"photoUrls"`
	AvgRating     *float64  `json:"avgRating"`
	LikeCount     int       `json:"likeCount"`
	FavoriteCount int       `json:"favoriteCount"`
	CreateAt      time.Time `json:"createdAt"`
}

type PlaceDetailResponse struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	CuisineTypes  string           `json:"cuisineTypes"`
	DietOptions   string           `json:"dietOptions"`
	PriceMin      *int             `json:"priceMin"`
	PriceMax      *int             `json:"priceMax"`
	Hours         string           `json:"hours"`
	ContactInfo   string           `json:"contactInfo"`
	MenuURL       string           `json:"menuUrl"`
	Latitude      float64          `json:"latitude"`
	Longitude     float64          `json:"longitude"`
	CreateAt      time.Time        `json:"createdAt"`
	UpdateAt      time.Time        `json:"updatedAt"`
	PhotoURLs     []string         `json:"photoUrls"`
	AvgRating     *float64         `json:"avgRating"`
	LikeCount     int              `json:"likeCount"`
	FavoriteCount int              `json:"favoriteCount"`
	Owner         UserInfo         `json:"owner"`
	Reviews       []ReviewResponse `json:"reviews"`
}

func uploadURL(fileName string) string {
	return "/uploads/" + fileName
}

func photoURLs(photos []models.PlaceImage) []string {
	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		urls = append(urls, uploadURL(photo.FileName))
	}
	return urls
}

func avgRating(reviews []models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	avg := math.Round(float64(sum)/float64(len(reviews))*100) / 100
	return &avg
}

func placeSummary(place models.Place) PlaceSummaryResponse {
	return PlaceSummaryResponse{
		ID:            place.ID,
		Name:          place.Name,
		CuisineTypes:  place.CuisineTypes,
		DietOptions:   place.DietOptions,
		PriceMin:      place.PriceMin,
		PriceMax:      place.PriceMax,
		Latitude:      place.Latitude,
		Longitude:     place.Longitude,
		PhotoURLs:     photoURLs(place.Photos),
		AvgRating:     avgRating(place.Reviews),
		LikeCount:     len(place.Likes),
		FavoriteCount: len(place.Favorites),
		CreateAt:      place.CreateAt,
	}
}

func placeDetail(place models.Place) PlaceDetailResponse {
	reviews := make([]ReviewResponse, 0, len(place.Reviews))
	for _, review := range place.Reviews {
		reviews = append(reviews, reviewResponse(review))
	}

	return PlaceDetailResponse{
		ID:            place.ID,
		Name:          place.Name,
		Description:   place.Description,
		CuisineTypes:  place.CuisineTypes,
		DietOptions:   place.DietOptions,
		PriceMin:      place.PriceMin,
		PriceMax:      place.PriceMax,
		Hours:         place.Hours,
		ContactInfo:   place.ContactInfo,
		MenuURL:       place.MenuURL,
		Latitude:      place.Latitude,
		Longitude:     place.Longitude,
		CreateAt:      place.CreateAt,
		UpdateAt:      place.UpdateAt,
		PhotoURLs:     photoURLs(place.Photos),
		AvgRating:     avgRating(place.Reviews),
		LikeCount:     len(place.Likes),
		FavoriteCount: len(place.Favorites),
		Owner: UserInfo{
			ID:     place.User.ID,
			Name:   place.User.Name,
			Avatar: place.User.Avatar,
		},
		Reviews: reviews,
	}
}

// parsePriceParam is lenient: a malformed number is treated as an absent
// parameter, matching the filter contract.
func parsePriceParam(raw string) *int {
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

// matchKeywords checks that every comma-separated keyword in filter occurs in
// the tag list, case-insensitively. An empty filter matches everything.
func matchKeywords(tags, filter string) bool {
	if filter == "" {
		return true
	}
	lowered := strings.ToLower(tags)
	for _, keyword := range strings.Split(filter, ",") {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if !strings.Contains(lowered, keyword) {
			return false
		}
	}
	return true
}

// loadAllPlaces returns the summary DTOs for every place. The DTOs are what
// gets cached: the model's relation slices are hidden from JSON, so a cached
// model would come back with zeroed counters.
func loadAllPlaces() ([]PlaceSummaryResponse, error) {
	var summaries []PlaceSummaryResponse

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		if err := services.GetFromRedis(config.Ctx, rdb, placesCacheKey, &summaries); err == nil && len(summaries) > 0 {
			return summaries, nil
		}
	}

	var allPlaces []models.Place
	if err := config.DB.Model(&models.Place{}).
		Preload("Photos").
		Preload("Reviews").
		Preload("Likes").
		Preload("Favorites").
		Find(&allPlaces).Error; err != nil {
		return nil, err
	}

	summaries = make([]PlaceSummaryResponse, 0, len(allPlaces))
	for _, place := range allPlaces {
		summaries = append(summaries, placeSummary(place))
	}

	if redisErr == nil {
		if err := services.SetToRedis(config.Ctx, rdb, placesCacheKey, summaries, time.Hour); err != nil {
			log.Printf("Failed to cache place list: %v", err)
		}
	}

	return summaries, nil
}

func invalidatePlaceCache() {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, rdb, placesCacheKey)
}

// GetAllPlaces godoc
// @Summary List places
// @Description Lists place summaries, optionally filtered by cuisine, diet and price range.
// @Tags places
// @Produce json
// @Param cuisine query string false "Comma separated cuisine keywords, substring match"
// @Param diet query string false "Comma separated diet keywords, substring match"
// @Param price_min query int false "Lower price bound, intersected with the place range"
// @Param price_max query int false "Upper price bound, intersected with the place range"
// @Success 200 {object} gin.H
// @Router /places [get]
func GetAllPlaces(c *gin.Context) {
	cuisineFilter := c.Query("cuisine")
	dietFilter := c.Query("diet")
	priceMinFilter := parsePriceParam(c.Query("price_min"))
	priceMaxFilter := parsePriceParam(c.Query("price_max"))

	allPlaces, err := loadAllPlaces()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch places", "error": err.Error()})
		return
	}

	// A place matches the price filter when its own [min,max] range overlaps
	// the queried interval; open bounds on either side always pass.
	placesResponse := make([]PlaceSummaryResponse, 0)
	for _, place := range allPlaces {
		if !matchKeywords(place.CuisineTypes, cuisineFilter) {
			continue
		}
		if !matchKeywords(place.DietOptions, dietFilter) {
			continue
		}
		if priceMaxFilter != nil && place.PriceMin != nil && *place.PriceMin > *priceMaxFilter {
			continue
		}
		if priceMinFilter != nil && place.PriceMax != nil && *place.PriceMax < *priceMinFilter {
			continue
		}
		placesResponse = append(placesResponse, place)
	}

	sort.Slice(placesResponse, func(i, j int) bool {
		return placesResponse[i].CreateAt.After(placesResponse[j].CreateAt)
	})

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Fetched places successfully", "data": placesResponse})
}

// GetPlaceDetail godoc
// @Summary Place detail
// @Description Returns the full place aggregate: scalar fields, photos, reviews and counters.
// @Tags places
// @Produce json
// @Param id path int true "Place ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /places/{id} [get]
func GetPlaceDetail(c *gin.Context) {
	placeId := c.Param("id")

	var place models.Place
	if err := config.DB.
		Preload("Photos").
		Preload("Reviews.User").
		Preload("Likes").
		Preload("Favorites").
		Preload("User").
		First(&place, "id = ?", placeId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Place not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Fetched place successfully", "data": placeDetail(place)})
}

// CreatePlace godoc
// @Summary Create a place
// @Description Creates a place from multipart form data with optional photo uploads.
// @Tags places
// @Accept mpfd
// @Produce json
// @Success 201 {object} gin.H
// @Failure 400 {object} gin.H
// @Router /places [post]
func CreatePlace(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Name is required"})
		return
	}

	latitude, latErr := strconv.ParseFloat(c.PostForm("latitude"), 64)
	longitude, lngErr := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if latErr != nil || lngErr != nil {
		// No usable coordinates; an address can stand in when geocoding is
		// configured.
		address := strings.TrimSpace(c.PostForm("address"))
		mapboxKey := os.Getenv("MAPBOX_KEY")
		if address == "" || mapboxKey == "" {
			c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Valid latitude and longitude required"})
			return
		}
		var err error
		longitude, latitude, err = services.GetCoordinatesFromAddress(address, mapboxKey)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Could not resolve address to coordinates", "error": err.Error()})
			return
		}
	}

	newPlace := models.Place{
		Name:         name,
		Description:  c.PostForm("description"),
		CuisineTypes: strings.ToLower(c.PostForm("cuisine_types")),
		DietOptions:  strings.ToLower(c.PostForm("diet_options")),
		PriceMin:     parsePriceParam(c.PostForm("price_min")),
		PriceMax:     parsePriceParam(c.PostForm("price_max")),
		Hours:        c.PostForm("hours"),
		ContactInfo:  c.PostForm("contact_info"),
		MenuURL:      c.PostForm("menu_url"),
		Latitude:     latitude,
		Longitude:    longitude,
		UserID:       currentUserID,
	}

	if err := newPlace.ValidateCoordinates(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var savedFiles []string
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newPlace).Error; err != nil {
			return err
		}

		form, formErr := c.MultipartForm()
		if formErr != nil {
			return nil // no uploads attached
		}
		for _, file := range form.File["photos"] {
			if file == nil || file.Filename == "" {
				continue
			}
			if !services.AllowedImageFile(file.Filename) {
				continue
			}
			fileName, err := services.SaveImage(file, fmt.Sprintf("place_%d", newPlace.ID))
			if err != nil {
				return err
			}
			savedFiles = append(savedFiles, fileName)
			if err := tx.Create(&models.PlaceImage{PlaceID: newPlace.ID, FileName: fileName}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, fileName := range savedFiles {
			if removeErr := services.RemoveImage(fileName); removeErr != nil {
				log.Printf("Failed to remove orphaned upload %s: %v", fileName, removeErr)
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to create place", "error": err.Error()})
		return
	}

	invalidatePlaceCache()

	var created models.Place
	if err := config.DB.Preload("Photos").Preload("User").First(&created, newPlace.ID).Error; err != nil {
		created = newPlace
	}

	c.JSON(http.StatusCreated, gin.H{"code": 1, "mess": "Place created successfully", "data": placeDetail(created)})
}

// GetMyPlaces lists the places owned by the caller (vendor portal).
func GetMyPlaces(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var myPlaces []models.Place
	if err := config.DB.Model(&models.Place{}).
		Preload("Photos").
		Preload("Reviews").
		Preload("Likes").
		Preload("Favorites").
		Where("user_id = ?", currentUserID).
		Find(&myPlaces).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch your places", "error": err.Error()})
		return
	}

	sort.Slice(myPlaces, func(i, j int) bool {
		return myPlaces[i].CreateAt.After(myPlaces[j].CreateAt)
	})

	placesResponse := make([]PlaceSummaryResponse, 0, len(myPlaces))
	for _, place := range myPlaces {
		placesResponse = append(placesResponse, placeSummary(place))
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Fetched your places successfully", "data": placesResponse})
}
