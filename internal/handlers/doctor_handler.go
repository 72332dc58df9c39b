package handlers

import (
	"net/http"

	"medrecords-backend/internal/models"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const doctorNotFound = "Doctor not found"

// CreateDoctor attaches a doctor record to an existing user
func (h *Handler) CreateDoctor(c *gin.Context) {
	var input models.DoctorCreateInput
	if !bindJSON(c, &input) {
		return
	}
	db := h.session(c)

	// 1. The user must exist
	found, err := exists(db, &models.User{}, "id = ?", input.UserID)
	if err != nil {
		h.respondError(c, err, doctorNotFound)
		return
	}
	if !found {
		utils.APIError(c, http.StatusBadRequest, "Associated user not found")
		return
	}

	// 2. ...and must not be a doctor already
	linked, err := exists(db, &models.Doctor{}, "user_id = ?", input.UserID)
	if err != nil {
		h.respondError(c, err, doctorNotFound)
		return
	}
	if linked {
		utils.APIError(c, http.StatusBadRequest, "Doctor already registered")
		return
	}

	doctor := models.Doctor{
		UserID:    input.UserID,
		CRM:       input.CRM,
		Specialty: input.Specialty,
	}
	if err := db.Create(&doctor).Error; err != nil {
		h.respondError(c, err, doctorNotFound)
		return
	}

	utils.APIResponse(c, http.StatusCreated, doctor)
}

func (h *Handler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.session(c).Order("user_id").Find(&doctors).Error; err != nil {
		h.respondError(c, err, doctorNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := utils.PathID(c, "user_id")
	if !ok {
		return
	}

	var doctor models.Doctor
	if err := h.session(c).Where("user_id = ?", id).First(&doctor).Error; err != nil {
		h.respondError(c, err, doctorNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, doctor)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, ok := utils.PathID(c, "user_id")
	if !ok {
		return
	}
	var input models.DoctorUpdateInput
	if !bindJSON(c, &input) {
		return
	}
	h.saveDoctor(c, id, input.Apply)
}

func (h *Handler) PatchDoctor(c *gin.Context) {
	id, ok := utils.PathID(c, "user_id")
	if !ok {
		return
	}
	var input models.DoctorPatchInput
	if !bindJSON(c, &input) {
		return
	}
	h.saveDoctor(c, id, input.Apply)
}

func (h *Handler) saveDoctor(c *gin.Context, id uint64, apply func(*models.Doctor)) {
	db := h.session(c)

	var doctor models.Doctor
	if err := db.Where("user_id = ?", id).First(&doctor).Error; err != nil {
		h.respondError(c, err, doctorNotFound)
		return
	}

	apply(&doctor)

	if err := db.Model(&doctor).Updates(map[string]interface{}{
		"crm":       doctor.CRM,
		"specialty": doctor.Specialty,
	}).Error; err != nil {
		h.respondError(c, err, doctorNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, doctor)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, ok := utils.PathID(c, "user_id")
	if !ok {
		return
	}
	db := h.session(c)

	var doctor models.Doctor
	if err := db.Where("user_id = ?", id).First(&doctor).Error; err != nil {
		h.respondError(c, err, doctorNotFound)
		return
	}
	if err := db.Delete(&doctor).Error; err != nil {
		h.respondError(c, err, doctorNotFound)
		return
	}
	utils.DeleteOK(c)
}
