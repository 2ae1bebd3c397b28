package services

import (
	"errors"
	"strings"

	"foodhopper/config"
	"foodhopper/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const RoleUser = 0
const RoleAdmin = 1
const RoleVendor = 2

func CreateUser(name, email, password string, vendor bool) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return models.User{}, errors.New("name, email and password are required")
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return models.User{}, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	role := RoleUser
	if vendor {
		role = RoleVendor
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

// CreateGoogleUser registers a user coming from Google sign-in. The random
// password only exists to satisfy the not-null column; it is never usable.
func CreateGoogleUser(name, email, avatar string) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     name,
		Email:    strings.ToLower(email),
		Password: string(hashed),
		Avatar:   avatar,
		Role:     RoleUser,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}
