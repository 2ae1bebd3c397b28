package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodhopper/config"
	"foodhopper/models"
	"foodhopper/routes"
	"foodhopper/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Code int             `json:"code"`
	Mess string          `json:"mess"`
	Data json.RawMessage `json:"data"`
}

type placeSummary struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	CuisineTypes  string   `json:"cuisineTypes"`
	DietOptions   string   `json:"dietOptions"`
	PriceMin      *int     `json:"priceMin"`
	PriceMax      *int     `json:"priceMax"`
	PhotoURLs     []string `json:"photoUrls"`
	AvgRating     *float64 `json:"avgRating"`
	LikeCount     int      `json:"likeCount"`
	FavoriteCount int      `json:"favoriteCount"`
}

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("UPLOAD_DIR", t.TempDir())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Place{},
		&models.PlaceImage{},
		&models.Review{},
		&models.Like{},
		&models.Favorite{},
	))
	config.DB = db

	mr := miniredis.RunT(t)
	config.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { config.RedisClient = nil })

	router := gin.New()
	routes.SetupRoutes(router, config.DB, config.RedisClient, nil)
	return router
}

func createUser(t *testing.T, email string, role int) (models.User, string) {
	t.Helper()
	user := models.User{Name: "Tester", Email: email, Password: "hash", Role: role}
	require.NoError(t, config.DB.Create(&user).Error)

	token, err := services.GenerateToken(services.UserInfo{UserId: user.ID, Role: user.Role}, 60)
	require.NoError(t, err)
	return user, token
}

func intPtr(v int) *int { return &v }

func createPlace(t *testing.T, place models.Place) models.Place {
	t.Helper()
	if place.Name == "" {
		place.Name = "Test Place"
	}
	require.NoError(t, config.DB.Create(&place).Error)
	return place
}

type formFile struct {
	Field   string
	Name    string
	Content []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (io.Reader, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, file := range files {
		fw, err := writer.CreateFormFile(file.Field, file.Name)
		require.NoError(t, err)
		_, err = fw.Write(file.Content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func doRequest(router *gin.Engine, method, path string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return env
}

func listPlaces(t *testing.T, router *gin.Engine, query string) []placeSummary {
	t.Helper()
	recorder := doRequest(router, http.MethodGet, "/api/v1/places"+query, nil, "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	env := decodeEnvelope(t, recorder)
	var places []placeSummary
	require.NoError(t, json.Unmarshal(env.Data, &places))
	return places
}
