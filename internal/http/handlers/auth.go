package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// GuestUser is the self-asserted guest identity. No verification happens;
// the token just lets the frontend carry name/phone between pages.
type GuestUser struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type guestLoginRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// POST /api/auth/guest
func GuestLogin(c *gin.Context) {
	var req guestLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		RespondError(c, http.StatusBadRequest, "name and phone are required", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name":  name,
		"phone": phone,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})

	signed, err := token.SignedString(getDeps().JWTSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create session token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user":  GuestUser{Name: name, Phone: phone},
	})
}
