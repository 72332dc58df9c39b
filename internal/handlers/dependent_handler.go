package handlers

import (
	"net/http"

	"medrecords-backend/internal/models"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dependentNotFound = "Dependent not found"

// CreateDependent links a family member to a holder account
func (h *Handler) CreateDependent(c *gin.Context) {
	var input models.DependentCreateInput
	if !bindJSON(c, &input) {
		return
	}
	if input.UserID == input.DependentID {
		utils.APIError(c, http.StatusBadRequest, "A user cannot be their own dependent")
		return
	}
	db := h.session(c)

	// 1. Both sides must be registered users
	var count int64
	if err := db.Model(&models.User{}).Where("id IN ?", []uint64{input.UserID, input.DependentID}).Count(&count).Error; err != nil {
		h.respondError(c, err, dependentNotFound)
		return
	}
	if count != 2 {
		utils.APIError(c, http.StatusBadRequest, "User or dependent user not found")
		return
	}

	// 2. No duplicate link
	linked, err := exists(db, &models.Dependent{}, "user_id = ? AND dependent_id = ?", input.UserID, input.DependentID)
	if err != nil {
		h.respondError(c, err, dependentNotFound)
		return
	}
	if linked {
		utils.APIError(c, http.StatusBadRequest, "Dependent already registered")
		return
	}

	dependent := models.Dependent{
		UserID:      input.UserID,
		DependentID: input.DependentID,
		Confirmed:   input.Confirmed,
	}
	if err := db.Create(&dependent).Error; err != nil {
		h.respondError(c, err, dependentNotFound)
		return
	}

	utils.APIResponse(c, http.StatusCreated, dependent)
}

func (h *Handler) GetDependents(c *gin.Context) {
	var dependents []models.Dependent
	if err := h.session(c).Order("user_id, dependent_id").Find(&dependents).Error; err != nil {
		h.respondError(c, err, dependentNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, dependents)
}

func (h *Handler) GetDependent(c *gin.Context) {
	dependent, ok := h.findDependent(c, h.session(c))
	if !ok {
		return
	}
	utils.APIResponse(c, http.StatusOK, dependent)
}

// UpdateDependent sets the confirmed flag (the only mutable field)
func (h *Handler) UpdateDependent(c *gin.Context) {
	var input models.DependentUpdateInput
	if !bindJSON(c, &input) {
		return
	}
	h.setConfirmed(c, input.Confirmed)
}

func (h *Handler) PatchDependent(c *gin.Context) {
	var input models.DependentPatchInput
	if !bindJSON(c, &input) {
		return
	}
	h.setConfirmed(c, input.Confirmed)
}

func (h *Handler) setConfirmed(c *gin.Context, confirmed *bool) {
	db := h.session(c)
	dependent, ok := h.findDependent(c, db)
	if !ok {
		return
	}

	if confirmed != nil {
		dependent.Confirmed = *confirmed
		if err := db.Model(&dependent).Update("confirmed", dependent.Confirmed).Error; err != nil {
			h.respondError(c, err, dependentNotFound)
			return
		}
	}
	utils.APIResponse(c, http.StatusOK, dependent)
}

func (h *Handler) DeleteDependent(c *gin.Context) {
	db := h.session(c)
	dependent, ok := h.findDependent(c, db)
	if !ok {
		return
	}
	if err := db.Delete(&dependent).Error; err != nil {
		h.respondError(c, err, dependentNotFound)
		return
	}
	utils.DeleteOK(c)
}

// findDependent loads the link named by :user_id/:dependent_id, replying on failure.
func (h *Handler) findDependent(c *gin.Context, db *gorm.DB) (models.Dependent, bool) {
	var dependent models.Dependent
	userID, ok := utils.PathID(c, "user_id")
	if !ok {
		return dependent, false
	}
	dependentID, ok := utils.PathID(c, "dependent_id")
	if !ok {
		return dependent, false
	}

	if err := db.Where("user_id = ? AND dependent_id = ?", userID, dependentID).First(&dependent).Error; err != nil {
		h.respondError(c, err, dependentNotFound)
		return dependent, false
	}
	return dependent, true
}
