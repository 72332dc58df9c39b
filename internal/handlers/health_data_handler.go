package handlers

import (
	"net/http"

	"medrecords-backend/internal/models"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const healthDataNotFound = "Health data not found"

// checkSource verifies the form or test a record derives from. It replies
// and returns false when the reference cannot be resolved.
func (h *Handler) checkSource(c *gin.Context, db *gorm.DB, d *models.DerivedHealthData) bool {
	if (d.FormID == nil) == (d.TestID == nil) {
		utils.APIError(c, http.StatusUnprocessableEntity, "exactly one of form_id and test_id must be set")
		return false
	}

	model, id, missing := interface{}(&models.Form{}), d.FormID, "Associated form not found"
	if d.TestID != nil {
		model, id, missing = &models.Test{}, d.TestID, "Associated test not found"
	}

	found, err := exists(db, model, "id = ?", *id)
	if err != nil {
		h.respondError(c, err, healthDataNotFound)
		return false
	}
	if !found {
		utils.APIError(c, http.StatusBadRequest, missing)
		return false
	}
	return true
}

func (h *Handler) CreateHealthData(c *gin.Context) {
	var input models.HealthDataCreateInput
	if !bindJSON(c, &input) {
		return
	}
	db := h.session(c)

	data := models.DerivedHealthData{
		FormID: input.FormID,
		TestID: input.TestID,
		Name:   input.Name,
		Value:  input.Value,
	}
	if !h.checkSource(c, db, &data) {
		return
	}
	if err := db.Create(&data).Error; err != nil {
		h.respondError(c, err, healthDataNotFound)
		return
	}

	utils.APIResponse(c, http.StatusCreated, data)
}

func (h *Handler) GetHealthData(c *gin.Context) {
	var data []models.DerivedHealthData
	if err := h.session(c).Order("id").Find(&data).Error; err != nil {
		h.respondError(c, err, healthDataNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, data)
}

func (h *Handler) GetHealthDataByID(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}

	var data models.DerivedHealthData
	if err := h.session(c).First(&data, id).Error; err != nil {
		h.respondError(c, err, healthDataNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, data)
}

func (h *Handler) UpdateHealthData(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	var input models.HealthDataUpdateInput
	if !bindJSON(c, &input) {
		return
	}
	h.saveHealthData(c, id, input.Apply)
}

func (h *Handler) PatchHealthData(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	var input models.HealthDataPatchInput
	if !bindJSON(c, &input) {
		return
	}
	h.saveHealthData(c, id, input.Apply)
}

func (h *Handler) saveHealthData(c *gin.Context, id uint64, apply func(*models.DerivedHealthData)) {
	db := h.session(c)

	var data models.DerivedHealthData
	if err := db.First(&data, id).Error; err != nil {
		h.respondError(c, err, healthDataNotFound)
		return
	}

	apply(&data)

	if !h.checkSource(c, db, &data) {
		return
	}
	if err := db.Save(&data).Error; err != nil {
		h.respondError(c, err, healthDataNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, data)
}

func (h *Handler) DeleteHealthData(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	db := h.session(c)

	var data models.DerivedHealthData
	if err := db.First(&data, id).Error; err != nil {
		h.respondError(c, err, healthDataNotFound)
		return
	}
	if err := db.Delete(&data).Error; err != nil {
		h.respondError(c, err, healthDataNotFound)
		return
	}
	utils.DeleteOK(c)
}
