package controllers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"foodhopper/config"
	"foodhopper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type loginData struct {
	AccessToken string `json:"accessToken"`
	UserInfo    struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  int    `json:"role"`
	} `json:"user_info"`
}

func TestRegisterThenLogin(t *testing.T) {
	router := setupTest(t)

	body := `{"name":"Alice","email":"alice@example.com","password":"hunter2","isVendor":true}`
	recorder := doRequest(router, http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(body), "application/json", "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	env := decodeEnvelope(t, recorder)
	var data loginData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.AccessToken)
	assert.Equal(t, "Alice", data.UserInfo.Name)
	assert.Equal(t, 2, data.UserInfo.Role)

	recorder = doRequest(router, http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"hunter2"}`), "application/json", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	env = decodeEnvelope(t, recorder)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.AccessToken)

	// The issued token works against a protected route.
	recorder = doRequest(router, http.MethodGet, "/api/v1/vendor/places", nil, "", data.AccessToken)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := setupTest(t)

	body := `{"name":"Alice","email":"alice@example.com","password":"hunter2"}`
	recorder := doRequest(router, http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(body), "application/json", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(body), "application/json", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	router := setupTest(t)

	for _, body := range []string{
		`{"email":"a@example.com","password":"x"}`,
		`{"name":"A","password":"x"}`,
		`{"name":"A","email":"not-an-email","password":"x"}`,
	} {
		recorder := doRequest(router, http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(body), "application/json", "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupTest(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, config.DB.Create(&models.User{
		Name: "Alice", Email: "alice@example.com", Password: string(hashed),
	}).Error)

	recorder := doRequest(router, http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`), "application/json", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestLoginBannedAccount(t *testing.T) {
	router := setupTest(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, config.DB.Create(&models.User{
		Name: "Banned", Email: "banned@example.com", Password: string(hashed), Status: 1,
	}).Error)

	recorder := doRequest(router, http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"banned@example.com","password":"secret"}`), "application/json", "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
