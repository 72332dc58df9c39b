package handlers

import (
	"errors"
	"net/http"

	"medrecords-backend/internal/models"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LOGIN
func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput

	// 1. Validate input
	if !bindJSON(c, &input) {
		return
	}

	// 2. Find the user by email
	var user models.User
	if err := h.session(c).Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.APIError(c, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		h.respondError(c, err, userNotFound)
		return
	}

	// 3. Check the password
	ok, err := h.Hasher.Verify(c.Request.Context(), input.Password, user.Password)
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	if !ok {
		utils.APIError(c, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	// 4. Issue the access token
	token, err := h.Tokens.AccessToken(user.ID)
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}

	utils.APIResponse(c, http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}
