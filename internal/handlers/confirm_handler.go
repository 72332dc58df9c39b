package handlers

import (
	"net/http"
	"net/url"

	"medrecords-backend/internal/models"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequestConfirmation emails a 24 hour confirmation link to a registered user
func (h *Handler) RequestConfirmation(c *gin.Context) {
	var input models.ConfirmRequestInput
	if !bindJSON(c, &input) {
		return
	}

	// 1. The email must belong to a user
	var user models.User
	if err := h.session(c).Where("email = ?", input.Email).First(&user).Error; err != nil {
		h.respondError(c, err, userNotFound)
		return
	}

	// 2. Sign the token and build the link
	token, err := h.Tokens.ConfirmationToken(user.Email)
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	link := h.BaseURL + "/user/dependents/confirm?token=" + url.QueryEscape(token)

	body, err := utils.RenderConfirmationEmail(user.FullName, link)
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}

	// 3. Hand it to the mail relay
	if err := h.Mailer.Send(c.Request.Context(), user.Email, utils.ConfirmationSubject, body); err != nil {
		h.Log.Error().Err(err).Str("request_id", c.GetString("request_id")).Str("to", user.Email).Msg("confirmation email failed")
		utils.APIError(c, http.StatusInternalServerError, "Failed to send confirmation email")
		return
	}

	utils.APIResponse(c, http.StatusOK, gin.H{"ok": true})
}

// ConfirmDependent is the target of the emailed link. It confirms every
// pending link in which the token's owner is the dependent.
func (h *Handler) ConfirmDependent(c *gin.Context) {
	email, err := h.Tokens.ParseConfirmationToken(c.Query("token"))
	if err != nil {
		utils.APIError(c, http.StatusBadRequest, "Invalid or expired token")
		return
	}

	var confirmed int64
	err = h.session(c).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Dependent{}).
			Where("dependent_id = ? AND confirmed = ?", user.ID, false).
			Update("confirmed", true)
		confirmed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}

	utils.APIResponse(c, http.StatusOK, gin.H{"ok": true, "confirmed": confirmed})
}
