package handlers

import (
	"net/http"
	"time"

	"restaurant-order-api/config"
	"restaurant-order-api/middleware"
	"restaurant-order-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string   `json:"token,omitempty"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// Login authenticates credentials and issues a bearer token.
// Unknown user, wrong password and inactive account all produce the same 401.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	var user models.User
	if err := config.DB.Preload("Roles").Where("username = ?", req.Username).First(&user).Error; err != nil {
		respond(c, http.StatusUnauthorized, nil, "invalid_credentials")
		return
	}
	if !user.Active {
		respond(c, http.StatusUnauthorized, nil, "invalid_credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond(c, http.StatusUnauthorized, nil, "invalid_credentials")
		return
	}

	ttl := time.Duration(config.App.TokenTTLMinutes) * time.Minute
	token, err := middleware.GenerateToken(user.Username, user.RoleNames(), ttl)
	if err != nil {
		respondInternal(c)
		return
	}

	respondOK(c, LoginResponse{Token: token, Name: user.Username, Roles: user.RoleNames()}, "login_success")
}

// Logout acknowledges the request; tokens are stateless and simply expire
func Logout(c *gin.Context) {
	respondOK(c, "ok", "logout_success")
}

// CurrentUser returns the identity embedded in the presented token
func CurrentUser(c *gin.Context) {
	respondOK(c, LoginResponse{
		Name:  middleware.GetUsername(c),
		Roles: middleware.GetRoles(c),
	}, "ok")
}
