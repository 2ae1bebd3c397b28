package controllers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"foodhopper/config"
	"foodhopper/models"
	"foodhopper/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

const accessTokenTTLMinutes = 60 * 24 * 3

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	IsVendor bool   `json:"isVendor"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	UserID     uint      `json:"id"`
	UserName   string    `json:"name"`
	UserEmail  string    `json:"email"`
	UserRole   int       `json:"role"`
	UserStatus int       `json:"status"`
	UserAvatar string    `json:"avatar"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func userResponse(user models.User) UserResponse {
	return UserResponse{
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		UserRole:   user.Role,
		UserStatus: user.Status,
		UserAvatar: user.Avatar,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func loginPayload(user models.User) (gin.H, error) {
	accessToken, err := services.GenerateToken(services.UserInfo{
		UserId: user.ID,
		Role:   user.Role,
	}, accessTokenTTLMinutes)
	if err != nil {
		return nil, err
	}

	return gin.H{
		"user_info":   userResponse(user),
		"accessToken": accessToken,
	}, nil
}

// RegisterUser godoc
// @Summary Register
// @Description Creates an account (optionally a vendor one) and logs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerInput body RegisterInput true "Account data"
// @Success 200 {object} gin.H
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	user, err := services.CreateUser(input.Name, input.Email, input.Password, input.IsVendor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	data, err := loginPayload(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Account created", "data": data})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid email or password"})
		return
	}

	if user.Status != 0 {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "Account is banned"})
		return
	}

	data, err := loginPayload(user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Logged in successfully", "data": data})
}

func Logout(c *gin.Context) {
	for _, cookie := range c.Request.Cookies() {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Logged out successfully"})
}

type GoogleUser struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Picture       string `json:"picture"`
}

// AuthGoogle signs a user in with a Google ID token, creating the account on
// first sight.
func AuthGoogle(c *gin.Context) {
	var token struct {
		TokenId string `json:"tokenId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	payload, err := verifyGoogleIDToken(token.TokenId)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid Google token"})
		return
	}

	// Only the email is mandatory; accounts without a name or profile photo
	// exist, so those claims may be absent.
	email, ok := payload.Claims["email"].(string)
	if !ok || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Google token has no email"})
		return
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)

	googleUser := GoogleUser{
		Name:          name,
		Email:         email,
		VerifiedEmail: verified,
		Picture:       picture,
	}

	if !googleUser.VerifiedEmail {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Email has not been verified"})
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", googleUser.Email).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		user, err = services.CreateGoogleUser(googleUser.Name, googleUser.Email, googleUser.Picture)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to create new user"})
			return
		}
	} else if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to query user", "error": result.Error.Error()})
		return
	}

	data, err := loginPayload(user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Logged in successfully", "data": data})
}

var verifyGoogleIDToken = func(tokenId string) (*idtoken.Payload, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	return idtoken.Validate(context.Background(), tokenId, clientID)
}
