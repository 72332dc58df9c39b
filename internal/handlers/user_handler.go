package handlers

import (
	"net/http"

	"medrecords-backend/internal/models"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const userNotFound = "User not found"

// CreateUser registers a new user
func (h *Handler) CreateUser(c *gin.Context) {
	var input models.UserCreateInput

	// 1. Validate input
	if !bindJSON(c, &input) {
		return
	}
	db := h.session(c)

	// 2. Email must be unused
	taken, err := exists(db, &models.User{}, "email = ?", input.Email)
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	if taken {
		utils.APIError(c, http.StatusBadRequest, "Email already registered")
		return
	}

	// 3. Protect the password
	protected, err := h.Hasher.Hash(c.Request.Context(), input.Password)
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}

	// 4. Save
	user := models.User{
		FullName:      input.FullName,
		Email:         input.Email,
		Password:      protected,
		BirthDate:     models.MustParseDate(input.BirthDate),
		BiologicalSex: input.BiologicalSex,
	}
	if err := db.Create(&user).Error; err != nil {
		h.respondError(c, err, userNotFound)
		return
	}

	utils.APIResponse(c, http.StatusCreated, user.Response())
}

// GetUsers lists every user
func (h *Handler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.session(c).Order("id").Find(&users).Error; err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, models.UserResponses(users))
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.session(c).First(&user, id).Error; err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, user.Response())
}

// UpdateUser replaces every field of a user
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	var input models.UserUpdateInput
	if !bindJSON(c, &input) {
		return
	}

	var password *string
	if input.Password != "" {
		password = &input.Password
	}
	h.saveUser(c, id, password, input.Apply)
}

// PatchUser changes only the supplied fields
func (h *Handler) PatchUser(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	var input models.UserPatchInput
	if !bindJSON(c, &input) {
		return
	}
	h.saveUser(c, id, input.Password, input.Apply)
}

func (h *Handler) saveUser(c *gin.Context, id uint64, password *string, apply func(*models.User)) {
	db := h.session(c)

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		h.respondError(c, err, userNotFound)
		return
	}

	apply(&user)

	taken, err := exists(db, &models.User{}, "email = ? AND id <> ?", user.Email, user.ID)
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	if taken {
		utils.APIError(c, http.StatusBadRequest, "Email already registered")
		return
	}

	if password != nil {
		protected, err := h.Hasher.Hash(c.Request.Context(), *password)
		if err != nil {
			h.respondError(c, err, userNotFound)
			return
		}
		user.Password = protected
	}

	if err := db.Save(&user).Error; err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, user.Response())
}

// DeleteUser removes a user together with everything that references it:
// derived data of its forms and tests, the forms and tests themselves,
// dependent links on either side and its doctor record.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}

	err := h.session(c).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		formIDs := tx.Model(&models.Form{}).Select("id").Where("user_id = ?", id)
		testIDs := tx.Model(&models.Test{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("form_id IN (?) OR test_id IN (?)", formIDs, testIDs).
			Delete(&models.DerivedHealthData{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Form{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Test{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR dependent_id = ?", id, id).Delete(&models.Dependent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Doctor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}

	utils.DeleteOK(c)
}

// GetUserProfile returns the user behind the bearer token
func (h *Handler) GetUserProfile(c *gin.Context) {
	userID, ok := c.Get("userID")
	if !ok {
		utils.APIError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var user models.User
	if err := h.session(c).First(&user, userID.(uint64)).Error; err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, user.Response())
}
